package calc

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidModel is returned by Model.Validate.
var ErrInvalidModel = errors.New("invalid model")

// Model holds the constants and input bounds of a projection.
type Model struct {
	CostPerAppointment float64 `mapstructure:"cpa" yaml:"cpa" json:"cpa"`
	MinJobValue        float64 `mapstructure:"min_job_value" yaml:"min_job_value" json:"min_job_value"`
	MaxJobValue        float64 `mapstructure:"max_job_value" yaml:"max_job_value" json:"max_job_value"`
	CurveExponent      float64 `mapstructure:"curve_exponent" yaml:"curve_exponent" json:"curve_exponent"`
	MinAppointments    int     `mapstructure:"min_appointments" yaml:"min_appointments" json:"min_appointments"`
	MaxAppointments    int     `mapstructure:"max_appointments" yaml:"max_appointments" json:"max_appointments"`
	MinClosingRate     float64 `mapstructure:"min_closing_rate" yaml:"min_closing_rate" json:"min_closing_rate"`
	MaxClosingRate     float64 `mapstructure:"max_closing_rate" yaml:"max_closing_rate" json:"max_closing_rate"`
}

// Inputs are the three slider values.
type Inputs struct {
	Appointments int     `mapstructure:"appointments" yaml:"appointments" json:"appointments"`
	ClosingRate  float64 `mapstructure:"closing_rate" yaml:"closing_rate" json:"closing_rate"`
	JobValue     float64 `mapstructure:"job_value" yaml:"job_value" json:"job_value"`
}

// Projection is derived from Inputs and Model; it never carries other state.
type Projection struct {
	ClosedDeals float64 `json:"closed_deals"`
	Revenue     float64 `json:"revenue"`
	Investment  float64 `json:"investment"`
	Profit      float64 `json:"profit"`
	ROIPercent  float64 `json:"roi_percent"`
	Multiplier  float64 `json:"multiplier"`
}

const (
	// SliderMin and SliderMax bound the linear job-value slider.
	SliderMin = 0
	SliderMax = 100

	// Slider steps used when nudging inputs.
	AppointmentStep = 1
	ClosingRateStep = 5
	SliderStep      = 1

	jobValueRounding = 100
)

// DefaultModel is the canonical formula set.
func DefaultModel() Model {
	return Model{
		CostPerAppointment: 70,
		MinJobValue:        500,
		MaxJobValue:        50000,
		CurveExponent:      2.38,
		MinAppointments:    5,
		MaxAppointments:    100,
		MinClosingRate:     10,
		MaxClosingRate:     90,
	}
}

// DefaultInputs is what every fresh session starts from.
func DefaultInputs() Inputs {
	return Inputs{Appointments: 20, ClosingRate: 35, JobValue: 10000}
}

// Validate reports whether the model can produce a projection for every input in bounds.
func (m Model) Validate() error {
	switch {
	case !(m.CostPerAppointment > 0):
		return fmt.Errorf("%w: cpa must be positive, got %v", ErrInvalidModel, m.CostPerAppointment)
	case m.MinAppointments <= 0:
		return fmt.Errorf("%w: min_appointments must be positive, got %d", ErrInvalidModel, m.MinAppointments)
	case m.MinAppointments > m.MaxAppointments:
		return fmt.Errorf("%w: appointments range [%d,%d]", ErrInvalidModel, m.MinAppointments, m.MaxAppointments)
	case m.MinClosingRate < 0 || m.MaxClosingRate > 100 || m.MinClosingRate > m.MaxClosingRate:
		return fmt.Errorf("%w: closing rate range [%v,%v]", ErrInvalidModel, m.MinClosingRate, m.MaxClosingRate)
	case m.MinJobValue < 0 || !(m.MinJobValue < m.MaxJobValue):
		return fmt.Errorf("%w: job value range [%v,%v]", ErrInvalidModel, m.MinJobValue, m.MaxJobValue)
	case !(m.CurveExponent > 0):
		return fmt.Errorf("%w: curve_exponent must be positive, got %v", ErrInvalidModel, m.CurveExponent)
	}
	return nil
}

// Project computes the projection for in. Inputs are clamped first.
func (m Model) Project(in Inputs) Projection {
	in = m.Clamp(in)

	appts := float64(in.Appointments)
	deals := appts * in.ClosingRate / 100
	revenue := deals * in.JobValue
	investment := appts * m.CostPerAppointment
	profit := revenue - investment
	ratio := profit / investment

	return Projection{
		ClosedDeals: deals,
		Revenue:     revenue,
		Investment:  investment,
		Profit:      profit,
		ROIPercent:  math.Floor(ratio * 100),
		Multiplier:  ratio,
	}
}

// Clamp pulls every input into its bound.
func (m Model) Clamp(in Inputs) Inputs {
	return Inputs{
		Appointments: m.ClampAppointments(in.Appointments),
		ClosingRate:  m.ClampClosingRate(in.ClosingRate),
		JobValue:     m.ClampJobValue(in.JobValue),
	}
}

func (m Model) ClampAppointments(n int) int {
	if n < m.MinAppointments {
		return m.MinAppointments
	}
	if n > m.MaxAppointments {
		return m.MaxAppointments
	}
	return n
}

func (m Model) ClampClosingRate(r float64) float64 {
	return clampFloat(r, m.MinClosingRate, m.MaxClosingRate)
}

func (m Model) ClampJobValue(v float64) float64 {
	return clampFloat(v, m.MinJobValue, m.MaxJobValue)
}

// FromSlider maps a linear slider position (0-100) onto the job-value domain
// along the power curve, rounded to the nearest 100.
func (m Model) FromSlider(pos float64) float64 {
	pos = clampFloat(pos, SliderMin, SliderMax)
	span := m.MaxJobValue - m.MinJobValue
	v := m.MinJobValue + span*math.Pow(pos/SliderMax, m.exponent())
	v = math.Round(v/jobValueRounding) * jobValueRounding
	return m.ClampJobValue(v)
}

// ToSlider is the inverse of FromSlider, without the rounding.
func (m Model) ToSlider(value float64) float64 {
	value = m.ClampJobValue(value)
	span := m.MaxJobValue - m.MinJobValue
	pos := math.Pow((value-m.MinJobValue)/span, 1/m.exponent()) * SliderMax
	return clampFloat(pos, SliderMin, SliderMax)
}

func (m Model) exponent() float64 {
	if m.CurveExponent > 0 {
		return m.CurveExponent
	}
	return 1
}

// NaN collapses to lo so a bad value never leaks past a setter.
func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

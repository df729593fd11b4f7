package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_Examples(t *testing.T) {
	t.Run("default inputs at CPA 70", func(t *testing.T) {
		p := DefaultModel().Project(Inputs{Appointments: 20, ClosingRate: 35, JobValue: 10000})

		assert.InDelta(t, 7.0, p.ClosedDeals, 1e-9)
		assert.InDelta(t, 70000, p.Revenue, 1e-6)
		assert.Equal(t, 1400.0, p.Investment)
		assert.InDelta(t, 68600, p.Profit, 1e-6)
		assert.Equal(t, 4900.0, p.ROIPercent)
		assert.InDelta(t, 49.0, p.Multiplier, 1e-9)
	})

	t.Run("high volume at CPA 47", func(t *testing.T) {
		m := DefaultModel()
		m.CostPerAppointment = 47
		m.MinJobValue = 5000
		p := m.Project(Inputs{Appointments: 50, ClosingRate: 80, JobValue: 50000})

		assert.InDelta(t, 40.0, p.ClosedDeals, 1e-9)
		assert.InDelta(t, 2000000, p.Revenue, 1e-6)
		assert.Equal(t, 2350.0, p.Investment)
		assert.InDelta(t, 1997650, p.Profit, 1e-6)
	})
}

func TestProject_Identities(t *testing.T) {
	m := DefaultModel()
	for appts := m.MinAppointments; appts <= m.MaxAppointments; appts += 7 {
		for rate := m.MinClosingRate; rate <= m.MaxClosingRate; rate += 5 {
			for _, job := range []float64{500, 1200, 9900, 25000, 50000} {
				p := m.Project(Inputs{Appointments: appts, ClosingRate: rate, JobValue: job})
				deals := float64(appts) * rate / 100
				require.InDelta(t, deals, p.ClosedDeals, 1e-9)
				require.InDelta(t, deals*job, p.Revenue, 1e-6)
				require.InDelta(t, deals*job-float64(appts)*m.CostPerAppointment, p.Profit, 1e-6)
				require.Greater(t, p.Investment, 0.0)
			}
		}
	}
}

func TestProject_Monotonic(t *testing.T) {
	m := DefaultModel()
	base := Inputs{Appointments: 30, ClosingRate: 40, JobValue: 8000}
	p0 := m.Project(base)

	t.Run("appointments", func(t *testing.T) {
		prev := m.Project(Inputs{Appointments: m.MinAppointments, ClosingRate: base.ClosingRate, JobValue: base.JobValue})
		for n := m.MinAppointments + 1; n <= m.MaxAppointments; n++ {
			p := m.Project(Inputs{Appointments: n, ClosingRate: base.ClosingRate, JobValue: base.JobValue})
			assert.GreaterOrEqual(t, p.Revenue, prev.Revenue)
			prev = p
		}
	})

	t.Run("closing rate", func(t *testing.T) {
		prev := p0
		for r := base.ClosingRate + 1; r <= m.MaxClosingRate; r++ {
			p := m.Project(Inputs{Appointments: base.Appointments, ClosingRate: r, JobValue: base.JobValue})
			assert.GreaterOrEqual(t, p.Revenue, prev.Revenue)
			assert.GreaterOrEqual(t, p.Profit, prev.Profit)
			prev = p
		}
	})

	t.Run("job value", func(t *testing.T) {
		prev := m.Project(Inputs{Appointments: base.Appointments, ClosingRate: base.ClosingRate, JobValue: m.MinJobValue})
		for v := m.MinJobValue + 100; v <= m.MaxJobValue; v += 100 {
			p := m.Project(Inputs{Appointments: base.Appointments, ClosingRate: base.ClosingRate, JobValue: v})
			assert.GreaterOrEqual(t, p.Revenue, prev.Revenue)
			assert.GreaterOrEqual(t, p.Profit, prev.Profit)
			prev = p
		}
	})
}

func TestClamp(t *testing.T) {
	m := DefaultModel()
	tests := []struct {
		name string
		in   Inputs
		want Inputs
	}{
		{"in range", Inputs{20, 35, 10000}, Inputs{20, 35, 10000}},
		{"below", Inputs{0, 1, -5}, Inputs{5, 10, 500}},
		{"above", Inputs{500, 99, 1e9}, Inputs{100, 90, 50000}},
		{"nan", Inputs{20, math.NaN(), math.NaN()}, Inputs{20, 10, 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Clamp(tt.in))
		})
	}
}

func TestSliderCurve(t *testing.T) {
	m := DefaultModel()

	t.Run("ends", func(t *testing.T) {
		assert.Equal(t, 500.0, m.FromSlider(0))
		assert.Equal(t, 50000.0, m.FromSlider(100))
		assert.Equal(t, 500.0, m.FromSlider(-20))
		assert.Equal(t, 50000.0, m.FromSlider(140))
		assert.InDelta(t, 0, m.ToSlider(500), 1e-9)
		assert.InDelta(t, 100, m.ToSlider(50000), 1e-9)
	})

	t.Run("rounds to 100", func(t *testing.T) {
		for pos := 0.0; pos <= 100; pos++ {
			v := m.FromSlider(pos)
			assert.Equal(t, 0.0, math.Mod(v, 100), "pos %v -> %v", pos, v)
		}
	})

	t.Run("finer at low values", func(t *testing.T) {
		low := m.FromSlider(20) - m.FromSlider(10)
		high := m.FromSlider(90) - m.FromSlider(80)
		assert.Less(t, low, high)
	})

	t.Run("round trip", func(t *testing.T) {
		for x := m.MinJobValue; x <= m.MaxJobValue; x += 50 {
			got := m.FromSlider(m.ToSlider(x))
			require.InDelta(t, x, got, 100, "value %v", x)
		}
	})

	t.Run("linear exponent", func(t *testing.T) {
		lin := m
		lin.CurveExponent = 1
		assert.Equal(t, 10400.0, lin.FromSlider(20))
		assert.InDelta(t, 20, lin.ToSlider(10400), 1e-9)
	})
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultModel().Validate())

	broken := []func(*Model){
		func(m *Model) { m.CostPerAppointment = 0 },
		func(m *Model) { m.CostPerAppointment = math.NaN() },
		func(m *Model) { m.MinAppointments = 0 },
		func(m *Model) { m.MaxAppointments = 1 },
		func(m *Model) { m.MaxClosingRate = 120 },
		func(m *Model) { m.MinJobValue = m.MaxJobValue },
		func(m *Model) { m.CurveExponent = 0 },
	}
	for i, mutate := range broken {
		m := DefaultModel()
		mutate(&m)
		err := m.Validate()
		assert.True(t, errors.Is(err, ErrInvalidModel), "case %d: %v", i, err)
	}
}

package calc

// Listener is notified with the new projection after every setter call.
type Listener func(in Inputs, p Projection)

// Calculator holds the current slider inputs of one session.
// It is not safe for concurrent use; callers serialize input events.
type Calculator struct {
	model     Model
	in        Inputs
	proj      Projection
	listeners []Listener
}

// NewCalculator starts a session at the model's default inputs.
func NewCalculator(m Model) *Calculator {
	return NewCalculatorWith(m, DefaultInputs())
}

// NewCalculatorWith starts a session at in, clamped.
func NewCalculatorWith(m Model, in Inputs) *Calculator {
	c := &Calculator{model: m, in: m.Clamp(in)}
	c.proj = m.Project(c.in)
	return c
}

func (c *Calculator) Model() Model           { return c.model }
func (c *Calculator) Inputs() Inputs         { return c.in }
func (c *Calculator) Projection() Projection { return c.proj }

// JobSlider returns the slider position for the current job value.
func (c *Calculator) JobSlider() float64 { return c.model.ToSlider(c.in.JobValue) }

// AtMaxJobValue reports whether the job value sits on the open-ended ceiling.
func (c *Calculator) AtMaxJobValue() bool { return c.in.JobValue >= c.model.MaxJobValue }

// OnChange registers l. Listeners run in registration order.
func (c *Calculator) OnChange(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Calculator) SetAppointments(n int) Projection {
	c.in.Appointments = c.model.ClampAppointments(n)
	return c.recompute()
}

func (c *Calculator) SetClosingRate(r float64) Projection {
	c.in.ClosingRate = c.model.ClampClosingRate(r)
	return c.recompute()
}

func (c *Calculator) SetJobValue(v float64) Projection {
	c.in.JobValue = c.model.ClampJobValue(v)
	return c.recompute()
}

// SetJobSlider sets the job value from a slider position on the power curve.
func (c *Calculator) SetJobSlider(pos float64) Projection {
	c.in.JobValue = c.model.FromSlider(pos)
	return c.recompute()
}

func (c *Calculator) NudgeAppointments(steps int) Projection {
	return c.SetAppointments(c.in.Appointments + steps*AppointmentStep)
}

func (c *Calculator) NudgeClosingRate(steps int) Projection {
	return c.SetClosingRate(c.in.ClosingRate + float64(steps*ClosingRateStep))
}

// NudgeJobSlider moves the slider by whole positions. Rounding to 100 can leave
// the value unchanged for a single step near the bottom of the curve, so the
// slider keeps moving until the value does or it hits an end.
func (c *Calculator) NudgeJobSlider(steps int) Projection {
	if steps == 0 {
		return c.proj
	}
	pos := c.JobSlider()
	start := c.in.JobValue
	for {
		pos += float64(steps * SliderStep)
		v := c.model.FromSlider(pos)
		if v != start || pos <= SliderMin || pos >= SliderMax {
			return c.SetJobValue(v)
		}
	}
}

// Reset returns to the default inputs.
func (c *Calculator) Reset() Projection {
	c.in = c.model.Clamp(DefaultInputs())
	return c.recompute()
}

func (c *Calculator) recompute() Projection {
	c.proj = c.model.Project(c.in)
	for _, l := range c.listeners {
		l(c.in, c.proj)
	}
	return c.proj
}

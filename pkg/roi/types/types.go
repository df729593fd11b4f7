package types

import "github.com/komsit37/roi/pkg/roi/calc"

// ScenarioSet is a named group of scenarios with an optional explicit column order.
type ScenarioSet struct {
	Name      string
	Columns   []string
	Scenarios []Scenario
}

// Scenario is one set of slider inputs.
// Slider, when set, overrides Inputs.JobValue through the power curve.
// Fields keeps any extra YAML keys (notes, owner, ...) for rendering.
type Scenario struct {
	Name   string
	Inputs calc.Inputs
	Slider *float64
	Fields map[string]any
}

// Row is a scenario after projection, ready for rendering.
type Row struct {
	Scenario    Scenario
	Inputs      calc.Inputs // clamped
	Projection  calc.Projection
	Slider      float64
	MaxJobValue float64
	CPA         float64
}

// Table is a projected scenario set.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

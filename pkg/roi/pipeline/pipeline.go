package pipeline

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/columns"
	"github.com/komsit37/roi/pkg/roi/filter"
	"github.com/komsit37/roi/pkg/roi/render"
	"github.com/komsit37/roi/pkg/roi/source"
	"github.com/komsit37/roi/pkg/roi/types"
)

type Runner struct {
	Source   source.Source
	Renderer render.Renderer
	Writer   io.Writer
	Model    calc.Model
	Logger   *zap.Logger
}

type ExecuteOptions struct {
	Columns     []string
	Filter      filter.Filter
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	Width       int
}

func (r *Runner) Execute(ctx context.Context, spec any, opts ExecuteOptions) error {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	sets, err := r.Source.Load(ctx, spec)
	if err != nil {
		return err
	}
	loaded := len(sets)
	sets = filter.Apply(opts.Filter, sets)
	log.Debug("scenario sets loaded", zap.Int("loaded", loaded), zap.Int("kept", len(sets)))

	tables := Project(r.Model, sets, opts.Columns)

	return r.Renderer.Render(r.Writer, tables, render.RenderOptions{
		Color:       opts.Color,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
		Width:       opts.Width,
	})
}

// Project computes every scenario in sets. Column overrides win over the
// set's own columns, which win over the defaults.
func Project(m calc.Model, sets []types.ScenarioSet, override []string) []types.Table {
	tables := make([]types.Table, 0, len(sets))
	for _, s := range sets {
		cols := s.Columns
		if len(override) > 0 {
			cols = override
		}
		t := types.Table{Name: s.Name, Columns: columns.Compute(cols)}
		for _, sc := range s.Scenarios {
			t.Rows = append(t.Rows, ProjectScenario(m, sc))
		}
		tables = append(tables, t)
	}
	return tables
}

// ProjectScenario resolves the slider, clamps, and projects one scenario.
func ProjectScenario(m calc.Model, sc types.Scenario) types.Row {
	in := sc.Inputs
	if sc.Slider != nil {
		in.JobValue = m.FromSlider(*sc.Slider)
	}
	in = m.Clamp(in)
	return types.Row{
		Scenario:    sc,
		Inputs:      in,
		Projection:  m.Project(in),
		Slider:      m.ToSlider(in.JobValue),
		MaxJobValue: m.MaxJobValue,
		CPA:         m.CostPerAppointment,
	}
}

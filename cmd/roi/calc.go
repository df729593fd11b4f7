package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/komsit37/roi/pkg/roi/animate"
	"github.com/komsit37/roi/pkg/roi/api"
	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/columns"
	"github.com/komsit37/roi/pkg/roi/format"
	"github.com/komsit37/roi/pkg/roi/pipeline"
	"github.com/komsit37/roi/pkg/roi/render"
	"github.com/komsit37/roi/pkg/roi/source"
	"github.com/komsit37/roi/pkg/roi/types"
)

type calcOptions struct {
	appointments int
	closingRate  float64
	jobValue     float64
	slider       float64
	format       string
	animate      bool
	color        bool
}

func newCalcCmd(a *app) *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Project one set of inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := a.cfg.Defaults
			f := cmd.Flags()
			if f.Changed("appointments") {
				in.Appointments = opts.appointments
			}
			if f.Changed("closing-rate") {
				in.ClosingRate = opts.closingRate
			}
			if f.Changed("job-value") {
				in.JobValue = opts.jobValue
			}
			if f.Changed("slider") {
				in.JobValue = a.cfg.Model.FromSlider(opts.slider)
			}
			return runCalc(cmd.Context(), cmd.OutOrStdout(), a, in, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.appointments, "appointments", 0, "appointments per month")
	f.Float64Var(&opts.closingRate, "closing-rate", 0, "closing rate in percent")
	f.Float64Var(&opts.jobValue, "job-value", 0, "average job value")
	f.Float64Var(&opts.slider, "slider", 0, "job value slider position (0-100)")
	f.StringVar(&opts.format, "format", "table", "output format: table, json, markdown, csv")
	f.BoolVar(&opts.animate, "animate", false, "count the results up before printing (table only)")
	f.BoolVar(&opts.color, "color", false, "colored table output")
	cmd.MarkFlagsMutuallyExclusive("job-value", "slider")
	return cmd
}

func runCalc(ctx context.Context, out io.Writer, a *app, in calc.Inputs, opts calcOptions) error {
	if opts.animate && opts.format != "" && opts.format != "table" {
		return fmt.Errorf("--animate only applies to table output, not %q", opts.format)
	}
	resp := api.NewProjectionService(a.cfg.Model, nil, a.log).Project(ctx, in)

	switch opts.format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "markdown", "md", "csv":
		return renderInline(ctx, out, a, in, opts)
	case "", "table":
	default:
		return fmt.Errorf("unknown format %q (table, json, markdown, csv)", opts.format)
	}

	if opts.animate {
		if err := animateCounts(ctx, out, a, resp.Projection); err != nil {
			return err
		}
	}

	fm := resp.Formatted
	tw := render.NewWriter(out, render.RenderOptions{Color: opts.color})
	tw.AppendRows([]table.Row{
		{"Appointments / Month", resp.Inputs.Appointments},
		{"Closing Rate", fm.ClosingRate},
		{"Average Job Value", fm.JobValue},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Acquisition Cost", fm.CPALabel},
		{"Investment", fm.Investment},
		{"Closed Deals", fm.DealsLabel},
		{"Revenue", fm.Revenue},
		{"Net Profit", fm.Profit},
		{"ROI", fm.ROIBadge},
		{"Multiplier", fm.Multiplier},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	tw.Render()

	_, err := fmt.Fprintln(out, "\n"+format.Disclaimer)
	return err
}

// renderInline runs the single projection through the scenario pipeline so
// markdown and csv match `roi scenarios` output.
func renderInline(ctx context.Context, out io.Writer, a *app, in calc.Inputs, opts calcOptions) error {
	r, err := render.ForFormat(opts.format)
	if err != nil {
		return err
	}
	runner := &pipeline.Runner{
		Source:   source.InlineSource{Name: "calc", Columns: columns.Sets["all"]},
		Renderer: r,
		Writer:   out,
		Model:    a.cfg.Model,
		Logger:   a.log,
	}
	return runner.Execute(ctx, types.Scenario{Name: "calc", Inputs: in}, pipeline.ExecuteOptions{})
}

// animateCounts redraws one status line per frame until the run settles.
func animateCounts(ctx context.Context, out io.Writer, a *app, p calc.Projection) error {
	d := animate.NewDriver(a.cfg.AnimateConfig(), animate.Metrics{}, func(f animate.Frame) {
		fmt.Fprintf(out, "\r%-14s %-14s %s",
			format.Currency(f.Metrics.Revenue),
			format.Currency(f.Metrics.Profit),
			format.ROILabel(f.Metrics.ROI))
	}, a.log)
	defer d.Stop()

	d.Retarget(animate.Target(p))
	if err := d.Wait(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprint(out, "\n\n")
	return err
}

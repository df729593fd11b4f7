package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/komsit37/roi/pkg/roi/columns"
	"github.com/komsit37/roi/pkg/roi/filter"
	"github.com/komsit37/roi/pkg/roi/pipeline"
	"github.com/komsit37/roi/pkg/roi/render"
	"github.com/komsit37/roi/pkg/roi/source"
)

type scenariosOptions struct {
	filter      string
	columns     []string
	sets        []string
	format      string
	pretty      bool
	color       bool
	maxColWidth int
}

func newScenariosCmd(a *app) *cobra.Command {
	var opts scenariosOptions
	cmd := &cobra.Command{
		Use:   "scenarios <file-or-dir>",
		Short: "Project every scenario in a YAML file or directory",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires exactly 1 YAML file or directory argument")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filter.Parse(opts.filter)
			if err != nil {
				return err
			}

			cols, err := columns.ExpandSets(opts.sets)
			if err != nil {
				return err
			}
			cols = append(cols, opts.columns...)

			r, err := render.ForFormat(opts.format)
			if err != nil {
				return err
			}

			width := 0
			if strings.EqualFold(opts.format, "table") || opts.format == "" {
				width = terminalWidth(os.Stdout)
			}

			runner := &pipeline.Runner{
				Source:   source.YAMLSource{Defaults: a.cfg.Defaults},
				Renderer: r,
				Writer:   cmd.OutOrStdout(),
				Model:    a.cfg.Model,
				Logger:   a.log,
			}
			return runner.Execute(cmd.Context(), args[0], pipeline.ExecuteOptions{
				Columns:     cols,
				Filter:      f,
				Color:       opts.color,
				PrettyJSON:  opts.pretty,
				MaxColWidth: opts.maxColWidth,
				Width:       width,
			})
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&opts.filter, "filter", "", "scenario set filter: name, a,b, glob*, /regex/, !negated")
	fl.StringSliceVar(&opts.columns, "columns", nil, "columns to show, in order")
	fl.StringSliceVar(&opts.sets, "sets", nil, "column sets to show: inputs, outputs, all")
	fl.StringVar(&opts.format, "format", "table", "output format: table, markdown, csv, json, names")
	fl.BoolVar(&opts.pretty, "pretty", false, "indent json output")
	fl.BoolVar(&opts.color, "color", false, "color profit and loss")
	fl.IntVar(&opts.maxColWidth, "max-col-width", 0, "truncate columns wider than this")
	return cmd
}

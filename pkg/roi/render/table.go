package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/roi/pkg/roi/columns"
	"github.com/komsit37/roi/pkg/roi/types"
)

type Mode int

const (
	ModeTable Mode = iota
	ModeMarkdown
	ModeCSV
)

type TableRenderer struct{ Mode Mode }

func NewTableRenderer(mode Mode) *TableRenderer { return &TableRenderer{Mode: mode} }

func (r *TableRenderer) Render(w io.Writer, tables []types.Table, opts RenderOptions) error {
	multi := len(tables) > 1
	for ti, tbl := range tables {
		cols := tbl.Columns

		// Set name on its own line above the table
		if multi && strings.TrimSpace(tbl.Name) != "" {
			title := strings.ToUpper(tbl.Name)
			switch r.Mode {
			case ModeTable:
				if opts.Color {
					title = text.Bold.Sprint(title)
				}
			case ModeMarkdown:
				title = "### " + tbl.Name
			case ModeCSV:
				title = "# " + tbl.Name
			}
			fmt.Fprintln(w, title)
		}

		color := opts.Color && r.Mode == ModeTable
		wopts := opts
		wopts.Color = color
		tw := NewWriter(w, wopts)
		hdr := make(table.Row, len(cols))
		for i, c := range cols {
			hdr[i] = columns.Header(c)
		}
		tw.AppendHeader(hdr)

		maxWidth := opts.MaxColWidth
		if maxWidth <= 0 {
			maxWidth = 40
		}
		cfgs := make([]table.ColumnConfig, 0, len(cols))
		for i, c := range cols {
			cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
			if columns.IsNumeric(c) {
				cfg.Align = text.AlignRight
				cfg.AlignHeader = text.AlignRight
			}
			cfgs = append(cfgs, cfg)
		}
		tw.SetColumnConfigs(cfgs)

		for _, row := range tbl.Rows {
			out := make(table.Row, len(cols))
			for i, c := range cols {
				if r.Mode == ModeCSV {
					out[i] = csvValue(columns.Raw(c, row))
					continue
				}
				v := columns.RenderValue(c, row)
				if color && (c == "profit" || c == "roi" || c == "multiplier") {
					v = colorize(v, row.Projection.Profit)
				}
				out[i] = v
			}
			tw.AppendRow(out)
		}

		switch r.Mode {
		case ModeMarkdown:
			tw.RenderMarkdown()
		case ModeCSV:
			tw.RenderCSV()
		default:
			tw.Render()
		}
		if ti < len(tables)-1 {
			fmt.Fprintln(w)
		}
	}
	return nil
}

// csvValue keeps numbers free of thousands separators, which go-pretty's
// CSV writer would escape.
func csvValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprint(n)
	}
}

// NewWriter returns a table writer in the house style, mirrored to w.
func NewWriter(w io.Writer, opts RenderOptions) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	if !opts.Color {
		tw.SetStyle(table.StyleLight)
	}
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	if opts.Width > 0 {
		tw.SetAllowedRowLength(opts.Width)
	}
	return tw
}

func colorize(v string, profit float64) string {
	switch {
	case profit > 0:
		return text.Colors{text.FgGreen}.Sprint(v)
	case profit < 0:
		return text.Colors{text.FgRed}.Sprint(v)
	default:
		return v
	}
}

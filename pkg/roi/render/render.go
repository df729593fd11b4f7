package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/roi/pkg/roi/types"
)

// Renderer renders projected scenario tables to an output writer.
type Renderer interface {
	Render(w io.Writer, tables []types.Table, opts RenderOptions) error
}

type RenderOptions struct {
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	Width       int // terminal width; 0 means unlimited
}

// ForFormat picks a renderer by name.
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "table":
		return NewTableRenderer(ModeTable), nil
	case "markdown", "md":
		return NewTableRenderer(ModeMarkdown), nil
	case "csv":
		return NewTableRenderer(ModeCSV), nil
	case "json":
		return NewJSONRenderer(), nil
	case "names":
		return NewNamesRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (table, markdown, csv, json, names)", name)
	}
}

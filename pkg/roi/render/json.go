package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/roi/pkg/roi/columns"
	"github.com/komsit37/roi/pkg/roi/types"
)

// jsonModel is the output shape for JSONRenderer.
type jsonModel struct {
	Name    string           `json:"name"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

// Render writes raw, unformatted values keyed by column.
func (r *JSONRenderer) Render(w io.Writer, tables []types.Table, opts RenderOptions) error {
	out := make([]jsonModel, 0, len(tables))
	for _, t := range tables {
		rows := make([]map[string]any, 0, len(t.Rows))
		for _, row := range t.Rows {
			m := make(map[string]any, len(t.Columns))
			for _, c := range t.Columns {
				m[c] = columns.Raw(c, row)
			}
			rows = append(rows, m)
		}
		out = append(out, jsonModel{Name: t.Name, Columns: t.Columns, Rows: rows})
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/komsit37/roi/pkg/roi/types"
)

// namesRenderer prints all scenario names in a single comma-separated line.
type namesRenderer struct{}

func NewNamesRenderer() Renderer {
	return namesRenderer{}
}

func (namesRenderer) Render(w io.Writer, tables []types.Table, _ RenderOptions) error {
	names := make([]string, 0)
	for _, t := range tables {
		for _, row := range t.Rows {
			name := strings.TrimSpace(row.Scenario.Name)
			if name == "" {
				continue
			}
			names = append(names, name)
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(names, ","))
	return err
}

package source

import (
	"context"

	"github.com/komsit37/roi/pkg/roi/types"
)

// Source loads scenario sets from a location (e.g., filepath).
type Source interface {
	Load(ctx context.Context, spec any) ([]types.ScenarioSet, error)
}

package source

import (
	"context"
	"fmt"

	"github.com/komsit37/roi/pkg/roi/types"
)

// InlineSource serves scenarios built in code, e.g. from CLI flags.
// The spec must be a types.Scenario, []types.Scenario or []types.ScenarioSet.
type InlineSource struct {
	Name    string
	Columns []string
}

func (s InlineSource) Load(_ context.Context, spec any) ([]types.ScenarioSet, error) {
	switch v := spec.(type) {
	case types.Scenario:
		return []types.ScenarioSet{s.wrap([]types.Scenario{v})}, nil
	case []types.Scenario:
		return []types.ScenarioSet{s.wrap(v)}, nil
	case []types.ScenarioSet:
		return v, nil
	default:
		return nil, fmt.Errorf("inline source: unsupported spec %T", spec)
	}
}

func (s InlineSource) wrap(sc []types.Scenario) types.ScenarioSet {
	return types.ScenarioSet{
		Name:      s.Name,
		Columns:   append([]string(nil), s.Columns...),
		Scenarios: sc,
	}
}

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/roi/pkg/roi/types"
)

func TestParse(t *testing.T) {
	names := []string{"Roofing", "Roofing/Storm", "HVAC", "trades/plumbing"}

	tests := []struct {
		expr string
		want []string
	}{
		{"", names},
		{"HVAC,Roofing", []string{"Roofing", "HVAC"}},
		{"Roofing/*", []string{"Roofing/Storm"}},
		{"/^trades\\//", []string{"trades/plumbing"}},
		{"storm", []string{"Roofing/Storm"}},
		{"ROOF", []string{"Roofing", "Roofing/Storm"}},
		{"!roof", []string{"HVAC", "trades/plumbing"}},
		{"!", nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := Parse(tt.expr)
			require.NoError(t, err)
			var got []string
			for _, n := range names {
				if f.Match(n) {
					got = append(got, n)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("/([a-/")
	assert.Error(t, err)
	_, err = Parse("Roof[")
	assert.Error(t, err)
	_, err = Parse("!/(/")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	sets := []types.ScenarioSet{{Name: "a"}, {Name: "b"}}
	f, err := Parse("b")
	require.NoError(t, err)

	assert.Equal(t, []types.ScenarioSet{{Name: "b"}}, Apply(f, sets))
	assert.Equal(t, sets, Apply(nil, sets))
}

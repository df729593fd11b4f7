package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/types"
)

const nestedDoc = `
columns: [name, appointments, profit]
scenarios:
  - name: Baseline
    appointments: 20
    closing_rate: 35
    job_value: 10000
  - name: Roofing
    scenarios:
      - name: Small crew
        appointments: 10
        closing_rate: "30%"
        slider: 40
        owner: dana
      - name: Storm
        scenarios:
          - name: Surge
            appointments: 60
            job_value: "$18,500"
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestParse_NestedGroups(t *testing.T) {
	src := YAMLSource{Defaults: calc.DefaultInputs()}
	sets, err := src.Parse([]byte(nestedDoc))
	require.NoError(t, err)
	require.Len(t, sets, 3)

	assert.Equal(t, "", sets[0].Name)
	assert.Equal(t, []string{"name", "appointments", "profit"}, sets[0].Columns)
	require.Len(t, sets[0].Scenarios, 1)
	assert.Equal(t, calc.Inputs{Appointments: 20, ClosingRate: 35, JobValue: 10000}, sets[0].Scenarios[0].Inputs)

	assert.Equal(t, "Roofing", sets[1].Name)
	small := sets[1].Scenarios[0]
	assert.Equal(t, "Small crew", small.Name)
	assert.Equal(t, 30.0, small.Inputs.ClosingRate)
	require.NotNil(t, small.Slider)
	assert.Equal(t, 40.0, *small.Slider)
	assert.Equal(t, "dana", small.Fields["owner"])

	assert.Equal(t, "Roofing/Storm", sets[2].Name)
	surge := sets[2].Scenarios[0]
	assert.Equal(t, 60, surge.Inputs.Appointments)
	assert.Equal(t, 35.0, surge.Inputs.ClosingRate, "missing inputs take defaults")
	assert.Equal(t, 18500.0, surge.Inputs.JobValue)
}

func TestParse_Errors(t *testing.T) {
	src := YAMLSource{}
	tests := map[string]string{
		"no scenarios": "columns: [name]\n",
		"empty":        "",
		"bad number":   "scenarios:\n  - name: x\n    appointments: lots\n",
		"not a list":   "scenarios: 3\n",
		"bad yaml":     "scenarios: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := src.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "plans.yaml", nestedDoc)

	sets, err := YAMLSource{Defaults: calc.DefaultInputs()}.Load(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, sets, 3)
	assert.Equal(t, "plans", sets[0].Name, "unnamed set takes the file name")
	assert.Equal(t, "Roofing", sets[1].Name)
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hvac.yml", "scenarios:\n  - name: a\n    appointments: 12\n")
	writeFile(t, dir, "trades/roofing.yaml", "scenarios:\n  - name: Storm\n    scenarios:\n      - name: b\n")
	writeFile(t, dir, "notes.txt", "ignored")

	sets, err := YAMLSource{Defaults: calc.DefaultInputs()}.Load(context.Background(), dir)
	require.NoError(t, err)

	names := make([]string, 0, len(sets))
	for _, s := range sets {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"hvac", "trades/roofing/Storm"}, names)
}

func TestLoad_BadSpec(t *testing.T) {
	_, err := YAMLSource{}.Load(context.Background(), 42)
	assert.Error(t, err)

	_, err = YAMLSource{}.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInlineSource(t *testing.T) {
	src := InlineSource{Name: "cli", Columns: []string{"profit"}}
	sc := types.Scenario{Name: "x", Inputs: calc.DefaultInputs()}

	sets, err := src.Load(context.Background(), sc)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "cli", sets[0].Name)
	assert.Equal(t, []types.Scenario{sc}, sets[0].Scenarios)

	_, err = src.Load(context.Background(), "nope")
	assert.Error(t, err)
}

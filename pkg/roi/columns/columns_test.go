package columns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/types"
)

func sampleRow() types.Row {
	m := calc.DefaultModel()
	in := calc.DefaultInputs()
	return types.Row{
		Scenario:    types.Scenario{Name: "Baseline", Inputs: in, Fields: map[string]any{"owner": "dana"}},
		Inputs:      in,
		Projection:  m.Project(in),
		Slider:      m.ToSlider(in.JobValue),
		MaxJobValue: m.MaxJobValue,
		CPA:         m.CostPerAppointment,
	}
}

func TestRenderValue(t *testing.T) {
	r := sampleRow()
	want := map[string]string{
		"name":         "Baseline",
		"appointments": "20",
		"closing_rate": "35%",
		"job_value":    "$10,000",
		"closed_deals": "7.0",
		"revenue":      "$70,000",
		"cpa":          "$70",
		"investment":   "$1,400",
		"profit":       "$68,600",
		"roi":          "4,900%",
		"multiplier":   "49.0x",
		"owner":        "dana",
		"missing":      "",
	}
	for key, v := range want {
		assert.Equal(t, v, RenderValue(key, r), key)
	}

	r.Inputs.JobValue = 50000
	assert.Equal(t, "$50,000+", RenderValue("job_value", r))
}

func TestRaw(t *testing.T) {
	r := sampleRow()
	assert.Equal(t, 20, Raw("appointments", r))
	assert.InDelta(t, 68600, Raw("profit", r).(float64), 1e-6)
	assert.Equal(t, "dana", Raw("owner", r))
	assert.Nil(t, Raw("missing", r))
}

func TestCompute(t *testing.T) {
	assert.Equal(t, Default, Compute(nil))
	assert.Equal(t, []string{"profit", "name"}, Compute([]string{"profit", "name", "profit"}))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "NET PROFIT", Header("profit"))
	assert.Equal(t, "OWNER", Header("owner"))
	assert.True(t, IsNumeric("revenue"))
	assert.False(t, IsNumeric("name"))
}

func TestExpandSets(t *testing.T) {
	cols, err := ExpandSets([]string{"inputs", " ", "outputs", "inputs"})
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, Sets["inputs"]...), Sets["outputs"]...), cols)

	_, err = ExpandSets([]string{"bogus"})
	var unknown *UnknownSetError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "bogus", unknown.Name)
	assert.Equal(t, []string{"all", "inputs", "outputs"}, unknown.Available)
}

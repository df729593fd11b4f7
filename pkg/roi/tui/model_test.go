package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/roi/pkg/roi/animate"
	"github.com/komsit37/roi/pkg/roi/calc"
)

func newTestModel() *Model {
	return New(calc.DefaultModel(), calc.DefaultInputs(), animate.DefaultConfig())
}

func press(t *testing.T, m *Model, msg tea.KeyMsg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func settle(m *Model) {
	m.Update(tickMsg{gen: m.gen, at: time.Now().Add(time.Hour)})
}

func TestModel_StartsAtZeroAndSettlesOnTarget(t *testing.T) {
	m := newTestModel()
	require.NotNil(t, m.Init())
	assert.Equal(t, animate.Metrics{}, m.Displayed())

	_, cmd := m.Update(tickMsg{gen: m.gen, at: time.Now().Add(time.Hour)})
	assert.Nil(t, cmd, "a finished run stops ticking")
	assert.Equal(t, animate.Metrics{Revenue: 70000, Profit: 68600, ROI: 4900}, m.Displayed())
}

func TestModel_MidRunKeepsTicking(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tickMsg{gen: m.gen, at: time.Now()})
	assert.NotNil(t, cmd)
	assert.Less(t, m.Displayed().Profit, 68600.0)
}

func TestModel_StaleTickDropped(t *testing.T) {
	m := newTestModel()
	settle(m)
	stale := m.gen

	press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Greater(t, m.gen, stale)

	before := m.Displayed()
	_, cmd := m.Update(tickMsg{gen: stale, at: time.Now().Add(time.Hour)})
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.Displayed())
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel()

	assert.NotNil(t, press(t, m, tea.KeyMsg{Type: tea.KeyRight}))
	assert.Equal(t, 21, m.Inputs().Appointments)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, key("l"))
	assert.Equal(t, 40.0, m.Inputs().ClosingRate)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Less(t, m.Inputs().JobValue, 10000.0)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, fieldAppointments, m.focus, "focus wraps around")

	press(t, m, key("r"))
	assert.Equal(t, calc.DefaultInputs(), m.Inputs())
}

func TestModel_NudgeAtBoundIsNoop(t *testing.T) {
	m := New(calc.DefaultModel(), calc.Inputs{Appointments: 100, ClosingRate: 35, JobValue: 10000}, animate.DefaultConfig())
	gen := m.gen

	assert.Nil(t, press(t, m, tea.KeyMsg{Type: tea.KeyRight}))
	assert.Equal(t, 100, m.Inputs().Appointments)
	assert.Equal(t, gen, m.gen)
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []tea.KeyMsg{key("q"), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		cmd := press(t, newTestModel(), k)
		require.NotNil(t, cmd, k.String())
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_ZeroFramesJumps(t *testing.T) {
	m := New(calc.DefaultModel(), calc.DefaultInputs(), animate.Config{})
	assert.Nil(t, m.Init(), "nothing to animate, no tick loop")
	assert.Equal(t, animate.Metrics{Revenue: 70000, Profit: 68600, ROI: 4900}, m.Displayed())

	assert.Nil(t, press(t, m, tea.KeyMsg{Type: tea.KeyRight}))
	assert.Equal(t, 21, m.Inputs().Appointments)
	assert.InDelta(t, 21*0.35*10000-21*70, m.Displayed().Profit, 1e-6)

	assert.Nil(t, press(t, m, key("r")))
	assert.Equal(t, 68600.0, m.Displayed().Profit)
}

func TestModel_View(t *testing.T) {
	m := New(calc.DefaultModel(), calc.Inputs{Appointments: 20, ClosingRate: 35, JobValue: 50000}, animate.DefaultConfig())
	settle(m)

	v := m.View()
	assert.Contains(t, v, "$70 per Appointment")
	assert.Contains(t, v, "Jobs/Month")
	assert.Contains(t, v, "Projected ROI")
	assert.Contains(t, v, "$50,000+")
	assert.Contains(t, v, "project at the ceiling")
	assert.Contains(t, v, "not guaranteed")

	m = newTestModel()
	settle(m)
	assert.NotContains(t, m.View(), "project at the ceiling")
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	assert.Equal(t, 50, m.bar.Width)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 40})
	assert.Equal(t, 10, m.bar.Width)
}

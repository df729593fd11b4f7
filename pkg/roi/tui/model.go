// Package tui is the interactive slider calculator.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/komsit37/roi/pkg/roi/animate"
	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/format"
)

type field int

const (
	fieldAppointments field = iota
	fieldClosingRate
	fieldJobValue
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldAppointments: "Appointments / Month",
	fieldClosingRate:  "Closing Rate",
	fieldJobValue:     "Average Job Value",
}

const (
	defaultBarWidth = 30
	helpText        = "↑/↓ select  ←/→ adjust  r reset  q quit"
)

// tickMsg advances the animation run tagged gen. Ticks from older runs are
// dropped, so a retarget never has two tick loops feeding it.
type tickMsg struct {
	gen uint64
	at  time.Time
}

// Model shows three sliders and the animated projection.
type Model struct {
	calc  *calc.Calculator
	anim  *animate.Animator
	clock func() time.Time

	gen   uint64
	shown animate.Metrics
	focus field
	bar   progress.Model
	st    styles
}

// New starts at in and counts the results up from zero.
func New(m calc.Model, in calc.Inputs, cfg animate.Config) *Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = defaultBarWidth

	t := &Model{
		calc:  calc.NewCalculatorWith(m, in),
		anim:  animate.NewAnimator(cfg, animate.Metrics{}),
		clock: time.Now,
		bar:   bar,
		st:    defaultStyles(),
	}
	t.calc.OnChange(func(_ calc.Inputs, p calc.Projection) {
		t.retarget(p)
	})
	t.retarget(t.calc.Projection())
	t.gen = 1
	return t
}

// animated is false when the config has no frames to play; results then
// show at once and no tick loop runs.
func (m *Model) animated() bool {
	cfg := m.anim.Config()
	return cfg.Frames >= 1 && cfg.Tick > 0
}

func (m *Model) retarget(p calc.Projection) {
	if !m.animated() {
		m.anim.Jump(animate.Target(p))
		m.shown = m.anim.Target()
		return
	}
	m.anim.Retarget(animate.Target(p), m.clock())
}

// Run blocks until the user quits.
func Run(m calc.Model, in calc.Inputs, cfg animate.Config) error {
	_, err := tea.NewProgram(New(m, in, cfg), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Inputs() calc.Inputs { return m.calc.Inputs() }

// Displayed is what the result panel shows right now.
func (m *Model) Displayed() animate.Metrics { return m.shown }

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if !m.animated() {
		return nil
	}
	gen := m.gen
	return tea.Tick(m.anim.Config().Tick, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// restart begins a new tick loop; the previous loop dies at its next tick.
func (m *Model) restart() tea.Cmd {
	m.gen++
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 44
		if w > 50 {
			w = 50
		}
		if w < 10 {
			w = 10
		}
		m.bar.Width = w
		return m, nil

	case tickMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.shown = m.anim.Displayed(msg.at)
		if m.anim.Done(msg.at) {
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k", "shift+tab":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
		case "down", "j", "tab":
			m.focus = (m.focus + 1) % fieldCount
		case "left", "h", "-":
			return m, m.nudge(-1)
		case "right", "l", "+", "=":
			return m, m.nudge(1)
		case "r":
			m.calc.Reset()
			return m, m.restart()
		}
	}
	return m, nil
}

func (m *Model) nudge(steps int) tea.Cmd {
	before := m.calc.Inputs()
	switch m.focus {
	case fieldAppointments:
		m.calc.NudgeAppointments(steps)
	case fieldClosingRate:
		m.calc.NudgeClosingRate(steps)
	case fieldJobValue:
		m.calc.NudgeJobSlider(steps)
	}
	if m.calc.Inputs() == before {
		return nil
	}
	return m.restart()
}

func (m *Model) View() string {
	var b strings.Builder
	cm := m.calc.Model()
	in := m.calc.Inputs()
	p := m.calc.Projection()

	b.WriteString(m.st.Title.Render("ROI Calculator") + "\n\n")

	for f := field(0); f < fieldCount; f++ {
		label, cursor := m.st.Label, m.st.NoCursor
		if f == m.focus {
			label, cursor = m.st.Focused, m.st.Cursor
		}
		b.WriteString(cursor + label.Render(fieldLabels[f]) +
			m.st.Value.Render(m.fieldValue(f, in)) + "  " +
			m.bar.ViewAs(m.fraction(f, in)) + "\n")
	}
	if m.calc.AtMaxJobValue() {
		b.WriteString(m.st.Muted.Render(fmt.Sprintf("Jobs above %s project at the ceiling.", format.Currency(cm.MaxJobValue))) + "\n")
	}
	b.WriteString("\n")

	shown := m.shown
	profit := m.st.Profit
	if shown.Profit < 0 {
		profit = m.st.Loss
	}

	rows := []string{
		row("Acquisition Cost", format.CPALabel(cm.CostPerAppointment)),
		row("Investment", format.Currency(p.Investment)),
		row("Closed Deals", format.DealsLabel(p.ClosedDeals)),
		row("Revenue", format.Currency(shown.Revenue)),
		row("Net Profit", profit.Render(format.Currency(shown.Profit))),
		"",
		m.st.Badge.Render(format.ROILabel(shown.ROI)),
	}
	b.WriteString(m.st.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n\n")

	b.WriteString(m.st.Muted.Render(format.Disclaimer) + "\n")
	b.WriteString(m.st.Muted.Render(helpText) + "\n")
	return b.String()
}

func (m *Model) fieldValue(f field, in calc.Inputs) string {
	switch f {
	case fieldAppointments:
		return fmt.Sprintf("%d", in.Appointments)
	case fieldClosingRate:
		return format.Rate(in.ClosingRate)
	default:
		return format.JobValue(in.JobValue, m.calc.Model().MaxJobValue)
	}
}

func (m *Model) fraction(f field, in calc.Inputs) float64 {
	cm := m.calc.Model()
	switch f {
	case fieldAppointments:
		return ratio(float64(in.Appointments-cm.MinAppointments), float64(cm.MaxAppointments-cm.MinAppointments))
	case fieldClosingRate:
		return ratio(in.ClosingRate-cm.MinClosingRate, cm.MaxClosingRate-cm.MinClosingRate)
	default:
		return cm.ToSlider(in.JobValue) / calc.SliderMax
	}
}

func ratio(n, d float64) float64 {
	if d <= 0 {
		return 0
	}
	return n / d
}

func row(label, value string) string {
	return fmt.Sprintf("%-18s %s", label, value)
}

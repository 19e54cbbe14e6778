package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rkstep/internal/dynamo"
)

const historyCapacity = 600

type TickMsg time.Time

// LiveModel steps a simulator one step per tick and charts the solution
// against the exact one.
type LiveModel struct {
	sim      *dynamo.Simulator
	exact    func(x float64) float64
	title    string
	x0, y0   float64
	h        float64
	maxSteps int
	interval time.Duration

	x, y    float64
	step    int
	running bool
	ys      []float64
	exactYs []float64
	errs    []float64
}

// NewLiveModel prepares a live view starting at (x0, y0). maxSteps <= 0
// steps until quit.
func NewLiveModel(sim *dynamo.Simulator, exact func(float64) float64, title string, x0, y0, h float64, maxSteps int) LiveModel {
	m := LiveModel{
		sim:      sim,
		exact:    exact,
		title:    title,
		x0:       x0,
		y0:       y0,
		h:        h,
		maxSteps: maxSteps,
		interval: time.Second / 30,
		running:  true,
	}
	m.reset()
	return m
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.advance()
			}
		case "r":
			m.reset()
		case "t":
			SetTheme(nextTheme(CurrentTheme.Name))
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *LiveModel) done() bool {
	return m.maxSteps > 0 && m.step >= m.maxSteps
}

// advance takes one step unless the run is finished or has diverged.
func (m *LiveModel) advance() {
	if m.done() || math.IsNaN(m.y) || math.IsInf(m.y, 0) {
		return
	}
	m.y = m.sim.Step(m.x, m.y, m.h)
	m.step++
	m.x = m.x0 + float64(m.step)*m.h
	m.record()
}

func (m *LiveModel) record() {
	want := m.exact(m.x)
	m.ys = appendCapped(m.ys, m.y)
	m.exactYs = appendCapped(m.exactYs, want)
	m.errs = appendCapped(m.errs, math.Abs(m.y-want))
}

func (m *LiveModel) reset() {
	m.x, m.y = m.x0, m.y0
	m.step = 0
	m.ys = make([]float64, 0, historyCapacity)
	m.exactYs = make([]float64, 0, historyCapacity)
	m.errs = make([]float64, 0, historyCapacity)
	m.record()
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m LiveModel) View() string {
	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")

	status := lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Success).Render("RUNNING")
	switch {
	case math.IsNaN(m.y) || math.IsInf(m.y, 0):
		status = lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Error).Render("DIVERGED")
	case m.done():
		status = lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary).Render("DONE")
	case !m.running:
		status = lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Warning).Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.ys) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.ys, m.exactYs},
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.SeriesColors(asciigraph.Green, asciigraph.Default),
			asciigraph.Caption("y (green) vs exact"))
		s.WriteString(chart + "\n\n")
	}

	want := m.exact(m.x)
	s.WriteString(labelStyle().Render("step") + valueStyle().Render(fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(labelStyle().Render("x") + valueStyle().Render(fmt.Sprintf("%.4f", m.x)) + "\n")
	s.WriteString(labelStyle().Render("y") + valueStyle().Render(fmt.Sprintf("%.10g", m.y)) + "\n")
	s.WriteString(labelStyle().Render("exact") + valueStyle().Render(fmt.Sprintf("%.10g", want)) + "\n")
	s.WriteString(labelStyle().Render("abs error") + valueStyle().Render(fmt.Sprintf("%.3e", math.Abs(m.y-want))) + "\n")
	s.WriteString(labelStyle().Render("error") + valueStyle().Render(SparklineChart(m.errs, 40)) + "\n")

	s.WriteString(helpStyle().Render("SP:Pause N:Step R:Reset T:Theme Q:Quit"))
	return panelStyle().Render(s.String())
}

// Point returns the current solution point.
func (m LiveModel) Point() (step int, x, y float64) {
	return m.step, m.x, m.y
}

// RunLive starts the live view on the terminal.
func RunLive(m LiveModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

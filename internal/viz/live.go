package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/anchors"
	"github.com/san-kum/clothsim/internal/cloth"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// param is one tunable entry of the live view.
type param struct {
	name string
	get  func(*cloth.Config) float64
	set  func(*cloth.Config, float64)
	step float64
}

var params = []param{
	{"gravity", func(c *cloth.Config) float64 { return c.Gravity },
		func(c *cloth.Config, v float64) { c.Gravity = v }, 1},
	{"wind", func(c *cloth.Config) float64 { return c.WindStrength },
		func(c *cloth.Config, v float64) { c.WindStrength = v }, 0.5},
	{"stiffness", func(c *cloth.Config) float64 { return c.Stiffness },
		func(c *cloth.Config, v float64) { c.Stiffness = v }, 0.05},
	{"damping", func(c *cloth.Config) float64 { return c.Damping },
		func(c *cloth.Config, v float64) { c.Damping = v }, 0.005},
	{"iterations", func(c *cloth.Config) float64 { return float64(c.Iterations) },
		func(c *cloth.Config, v float64) {
			if v < 0 {
				v = 0
			}
			c.Iterations = int(v + 0.5)
		}, 1},
}

// Model is the live terminal view: it owns a cloth, an anchor driver,
// and the per-step config the user tunes at runtime.
type Model struct {
	cloth      *cloth.Cloth
	substeps   int
	gridParams cloth.GridParams
	driver     anchors.Driver
	cfg        cloth.Config
	initialCfg cloth.Config

	canvas   *Canvas
	t, dt    float64
	fps      int
	running  bool
	selected int
	strains  []float64
}

func NewModel(c *cloth.Cloth, gp cloth.GridParams, driver anchors.Driver, cfg cloth.Config, dt float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		cloth:      c,
		substeps:   c.Substeps,
		gridParams: gp,
		driver:     driver,
		cfg:        cfg,
		initialCfg: cfg,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		dt:         dt,
		fps:        fps,
		running:    true,
		strains:    make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "tab":
			m.selected = (m.selected + 1) % len(params)
		case "up", "k":
			p := params[m.selected]
			p.set(&m.cfg, p.get(&m.cfg)+p.step)
		case "down", "j":
			p := params[m.selected]
			p.set(&m.cfg, p.get(&m.cfg)-p.step)
		case "p":
			m.cfg.ShowParticles = !m.cfg.ShowParticles
		case "c":
			m.cfg.ShowConstraints = !m.cfg.ShowConstraints
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	a0, a1 := m.driver.At(m.t)
	m.cloth.Step(cloth.StepInput{
		Dt:      m.dt,
		Elapsed: m.t,
		Anchors: [2]cloth.Vec3{a0, a1},
		Config:  m.cfg,
	})
	m.t += m.dt

	m.strains = append(m.strains, m.cloth.ResidualStrain())
	if len(m.strains) > historyCapacity {
		m.strains = m.strains[1:]
	}
}

func (m *Model) reset() {
	m.cloth = cloth.New(m.gridParams)
	if m.substeps > 0 {
		m.cloth.Substeps = m.substeps
	}
	m.cfg = m.initialCfg
	m.t = 0
	m.strains = m.strains[:0]
}

func (m Model) View() string {
	m.canvas.Clear()
	DrawCloth(m.canvas, m.cloth, m.cfg)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("CLOTH") + "\n")
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.strains) > 1 {
		chart := asciigraph.Plot(m.strains,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("residual strain"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.cloth.Grid.NumParticles())) + "\n")
	s.WriteString(labelStyle.Render("Constraints") + valueStyle.Render(fmt.Sprintf("%d", len(m.cloth.Constraints))) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, p := range params {
		line := fmt.Sprintf("%-10s %8.3f", p.name, p.get(&m.cfg))
		if i == m.selected {
			s.WriteString(activeStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n──────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune\nP:Particles C:Constraints"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

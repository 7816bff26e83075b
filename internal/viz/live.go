package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

const (
	canvasWidth     = 60
	canvasHeight    = 24
	historyCapacity = 600
	trailCapacity   = 200
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(42)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// paramKeys is the slider order; it matches pendulum.System parameters.
var paramKeys = []string{"gravity", "mass1", "mass2", "length1", "length2"}

// Model drives the live terminal view: one long-lived Dynamics plus the
// current State, advanced once per frame by the elapsed wall-clock time.
type Model struct {
	dyn          *pendulum.Dynamics
	state        pendulum.State
	initialState pendulum.State
	initialDyn   pendulum.Dynamics

	t        float64
	fps      int
	lastTick time.Time
	running  bool

	canvas        *Canvas
	trail         []pendulum.Point
	energyHistory []float64

	selected int
	showHelp bool
}

func NewModel(dyn *pendulum.Dynamics, initState pendulum.State, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		dyn:           dyn,
		state:         initState,
		initialState:  initState,
		initialDyn:    *dyn,
		fps:           fps,
		running:       true,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		trail:         make([]pendulum.Point, 0, trailCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
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
			m.selected = (m.selected + 1) % len(paramKeys)
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		if m.running && !m.lastTick.IsZero() {
			m.step(now.Sub(m.lastTick).Seconds())
		}
		m.lastTick = now
		return m, m.tick()
	}
	return m, nil
}

// step advances the simulation by the elapsed frame time. The state is
// replaced wholesale; a long frame hitch means one big step, matching
// the step contract rather than subdividing.
func (m *Model) step(dt float64) {
	m.state = m.dyn.Step(m.state, dt)
	m.t += dt

	_, bottom := m.dyn.Joints(m.state, 1)
	m.trail = append(m.trail, bottom)
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}

	m.energyHistory = append(m.energyHistory, m.dyn.Energy(m.state))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) adjustParam(factor float64) {
	sys := pendulum.NewSystem(m.dyn)
	key := paramKeys[m.selected]
	sys.SetParam(key, sys.GetParams()[key]*factor)
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.initialState
	*m.dyn = m.initialDyn
	m.trail = m.trail[:0]
	m.energyHistory = m.energyHistory[:0]
	m.lastTick = time.Time{}
}

// draw renders rods and bobs through the joint projection, plus a trail
// of the outer bob.
func (m *Model) draw() {
	m.canvas.Clear()

	cw, ch := canvasWidth*2, canvasHeight*4
	cx, cy := cw/2, ch/3

	reach := m.dyn.L1 + m.dyn.L2
	if reach <= 0 {
		return
	}
	scale := float64(ch) * 0.6 / reach

	top, bottom := m.dyn.Joints(m.state, scale)

	b1x, b1y := cx+int(top.X), cy+int(top.Y)
	b2x, b2y := cx+int(bottom.X), cy+int(bottom.Y)

	for _, pt := range m.trail {
		m.canvas.Set(cx+int(pt.X*scale), cy+int(pt.Y*scale))
	}

	m.canvas.Set(cx, cy)
	m.canvas.DrawLine(cx, cy, b1x, b1y)
	m.canvas.DrawLine(b1x, b1y, b2x, b2y)
	m.canvas.DrawCircle(b1x, b1y, 2)
	m.canvas.DrawCircle(b2x, b2y, 2)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("DOUBLE PENDULUM") + "\n")
	if m.running {
		s.WriteString("RUNNING\n\n")
	} else {
		s.WriteString("PAUSED\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Theta1") + valueStyle.Render(fmt.Sprintf("%7.3f rad", m.state.Theta1)) + "\n")
	s.WriteString(labelStyle.Render("Theta2") + valueStyle.Render(fmt.Sprintf("%7.3f rad", m.state.Theta2)) + "\n")
	s.WriteString(labelStyle.Render("Omega1") + valueStyle.Render(fmt.Sprintf("%7.3f rad/s", m.state.Omega1)) + "\n")
	s.WriteString(labelStyle.Render("Omega2") + valueStyle.Render(fmt.Sprintf("%7.3f rad/s", m.state.Omega2)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%7.3f J", m.dyn.Energy(m.state))) + "\n")

	s.WriteString("\nPARAMETERS\n")
	sys := pendulum.NewSystem(m.dyn)
	params := sys.GetParams()
	initSys := pendulum.NewSystem(&m.initialDyn)
	initial := initSys.GetParams()
	for i, k := range paramKeys {
		val := params[k]
		ref := initial[k]
		if ref == 0 {
			ref = 1e-6
		}
		barWidth := 10
		ratio := val / (2.0 * ref)
		if ratio > 1 {
			ratio = 1
		} else if ratio < 0 {
			ratio = 0
		}
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-10s %s %.3f", k, bar, val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return helpScreen + "\n\n" + mainView
	}
	return mainView
}

const helpScreen = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  R        - Reset state and params   ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the live view and blocks until the user quits.
func Run(dyn *pendulum.Dynamics, initState pendulum.State, fps int) error {
	p := tea.NewProgram(NewModel(dyn, initState, fps))
	_, err := p.Run()
	return err
}

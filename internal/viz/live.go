package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/splashsim/internal/sim"
)

const (
	width          = 80
	height         = 24
	frameInterval  = time.Second / 60
	heightCapacity = 300
)

// paramKnob is the keypress step and bar maximum of one parameter.
type paramKnob struct {
	step, max float64
	unit      string
}

var knobs = map[string]paramKnob{
	sim.ParamMass:          {5, 500, "kg"},
	sim.ParamRadius:        {0.02, 1, "m"},
	sim.ParamAngle:         {1, 90, "°"},
	sim.ParamSpeed:         {0.5, 40, "m/s"},
	sim.ParamInitHeight:    {0.1, 10, "m"},
	sim.ParamDragScale:     {0.05, 3, ""},
	sim.ParamBuoyancyScale: {0.05, 3, ""},
}

type TickMsg time.Time

// Model drives a Simulation from the bubbletea event loop. Key presses only
// enqueue commands; the simulation applies them on the next tick.
type Model struct {
	sim      *sim.Simulation
	canvas   *Canvas
	names    []string
	target   sim.Params
	selected int
	span     float64
	paused   bool
	showHelp bool
	last     time.Time
	heights  []float64
	title    string
}

func NewModel(s *sim.Simulation, title string) Model {
	return Model{
		sim:     s,
		canvas:  NewCanvas(width, height),
		names:   sim.ParamNames(),
		target:  s.Params(),
		span:    minSpan,
		heights: make([]float64, 0, heightCapacity),
		title:   title,
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "enter":
			m.sim.Enqueue(sim.Throw{})
		case "r":
			m.sim.Enqueue(sim.Reset{})
		case "p":
			m.paused = !m.paused
		case "tab":
			m.selected = (m.selected + 1) % len(m.names)
		case "shift+tab":
			m.selected = (m.selected + len(m.names) - 1) % len(m.names)
		case "up", "k", "right", "l":
			m.adjust(1)
		case "down", "j", "left", "h":
			m.adjust(-1)
		case "0", "backspace":
			m.sim.Enqueue(sim.ResetParam{Name: m.names[m.selected]})
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.step(time.Time(msg))
		return m, tick()
	}
	return m, nil
}

// adjust nudges the selected parameter by one step. Repeated presses within
// a frame accumulate on the locally tracked target.
func (m *Model) adjust(dir float64) {
	name := m.names[m.selected]
	cur, _ := m.target.Get(name)
	next := cur + dir*knobs[name].step
	if err := m.target.Set(name, next); err != nil {
		return
	}
	m.sim.Enqueue(sim.SetParam{Name: name, Value: next})
}

func (m *Model) step(now time.Time) {
	delta := frameInterval.Seconds()
	if !m.last.IsZero() {
		delta = now.Sub(m.last).Seconds()
	}
	m.last = now
	if m.paused {
		delta = 0
	}

	snap := m.sim.Tick(delta)
	m.target = m.sim.Params()

	if pred := m.sim.Prediction(); pred != nil {
		m.span = math.Max(minSpan, pred.Range+6)
	}
	if !m.sim.State().Thrown {
		m.heights = m.heights[:0]
	} else if snap.Dt > 0 {
		m.heights = append(m.heights, snap.Body.Position[1])
		if len(m.heights) > heightCapacity {
			m.heights = m.heights[1:]
		}
	}
}

func (m Model) View() string {
	w, h := m.canvas.Dots()
	DrawScene(m.canvas, m.sim, Frame(m.sim, w, h, m.span), CurrentTheme)
	canvasView := canvasStyle.Render(m.canvas.Render())

	r := m.sim.Readouts()
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := StatusActive.Render(strings.ToUpper(r.Status))
	switch {
	case m.paused:
		status = StatusPaused.Render("PAUSED") + " " + status
	case r.Status == "idle":
		status = StatusIdle.Render("IDLE")
	}
	s.WriteString(status + "\n\n")

	if len(m.heights) > 1 {
		chart := asciigraph.Plot(m.heights, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("height (m)"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", r.Time))
	row("Speed", fmt.Sprintf("%.2f m/s", r.Speed))
	row("Density", fmt.Sprintf("%.0f kg/m³", r.Density))
	s.WriteString(labelStyle.Render("Class") + ClassStyle(r.Class).Render(r.Class.String()) + "\n")
	row("Ballistic", fmt.Sprintf("%.1f kg/m²", r.BallisticCoefficient))
	row("Submerged", fmt.Sprintf("%.0f%%", m.sim.Forces().Submersion.Fraction*100))
	row("Particles", fmt.Sprintf("%d", m.sim.Effects().Particles()))
	if pred := m.sim.Prediction(); pred != nil {
		row("Range", fmt.Sprintf("%.1f m", pred.Range))
	}

	if vals := m.sim.Metrics(); len(vals) > 0 {
		names := make([]string, 0, len(vals))
		for k := range vals {
			names = append(names, k)
		}
		sort.Strings(names)
		s.WriteString("\nMETRICS\n")
		for _, k := range names {
			row(k, fmt.Sprintf("%.2f", vals[k]))
		}
	}

	s.WriteString("\nPARAMETERS\n")
	for i, name := range m.names {
		v, _ := m.target.Get(name)
		k := knobs[name]
		line := fmt.Sprintf("%-14s %s %.2f%s", name, ParamBar(v, k.max, 10), v, k.unit)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Throw R:Reset P:Pause Q:Quit\nTab:Select ↑↓:Tune 0:Default ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Throw                    ║
║  R        - Reset body and effects   ║
║  P        - Pause/Resume             ║
║  Q        - Quit                     ║
║  Tab      - Next parameter           ║
║  Up/K     - Increase parameter       ║
║  Down/J   - Decrease parameter       ║
║  0        - Restore default          ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

package viz

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/sim"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, "#ffffff")
	c.Set(3, 3, "#ffffff")
	c.Set(-1, 0, "#ffffff")
	c.Set(4, 0, "#ffffff")

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 in first cell, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8 in second cell, got %U", c.Grid[0][1])
	}

	c.Clear()
	if c.Grid[0][0] != blank || c.Colors[0][0] != "" {
		t.Error("expected blank canvas after clear")
	}
}

func TestCanvasDashedLine(t *testing.T) {
	c := NewCanvas(5, 1)
	c.DrawLine(0, 0, 9, 0, "#ffffff", 2, 0)

	want := []rune{0x2809, blank, 0x2809, blank, 0x2809}
	for i, r := range want {
		if c.Grid[0][i] != r {
			t.Errorf("cell %d: expected %U, got %U", i, r, c.Grid[0][i])
		}
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(4, 3)
	c.DrawDisc(3, 5, 1, "#ff0000")

	plain := c.String()
	if strings.Count(plain, "\n") != 3 {
		t.Errorf("expected 3 rows, got %q", plain)
	}
	if !strings.Contains(c.Render(), string(c.Grid[1][1])) {
		t.Error("expected rendered output to contain the drawn cell")
	}
}

func TestViewportProject(t *testing.T) {
	v := Viewport{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10, W: 11, H: 11}
	if p := v.Project(dynamo.Vec3{5, 5, 0}); p != (Point{5, 5}) {
		t.Errorf("expected centre, got %v", p)
	}
	if p := v.Project(dynamo.Vec3{0, 10, 0}); p != (Point{0, 0}) {
		t.Errorf("expected top left, got %v", p)
	}
	if v.DotsPerMetre() != 1 {
		t.Errorf("expected 1 dot per metre, got %f", v.DotsPerMetre())
	}
}

func newSim(t *testing.T) *sim.Simulation {
	t.Helper()
	s, err := sim.New(sim.DefaultParams(), sim.WithSeed(1))
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	return s
}

func TestDrawScene(t *testing.T) {
	s := newSim(t)
	s.Tick(1.0 / 60)

	c := NewCanvas(width, height)
	w, h := c.Dots()
	v := Frame(s, w, h, minSpan)
	if v.MaxY <= s.Params().InitHeight || v.MinY >= s.Environment().FloorHeight {
		t.Errorf("expected launch point and floor in view, got %+v", v)
	}

	DrawScene(c, s, v, ThemeOcean)
	body := classColor(dynamo.ClassNeutral)
	found := false
	for _, row := range c.Colors {
		for _, col := range row {
			if col == body {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected the body drawn in its class colour")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelThrowAndReset(t *testing.T) {
	s := newSim(t)
	m := NewModel(s, "splashsim")
	start := time.Unix(0, 0)

	m = send(m, key(" "))
	for i := 0; i < 10; i++ {
		m = send(m, TickMsg(start.Add(time.Duration(i)*frameInterval)))
	}
	if !s.State().Thrown {
		t.Fatal("expected the body to be thrown")
	}
	if len(m.heights) != 10 {
		t.Errorf("expected 10 height samples, got %d", len(m.heights))
	}

	m = send(m, key("r"), TickMsg(start.Add(11*frameInterval)))
	if s.State().Thrown || len(m.heights) != 0 {
		t.Error("expected reset to idle with an empty plot")
	}
}

func TestModelAdjustAccumulates(t *testing.T) {
	s := newSim(t)
	m := NewModel(s, "splashsim")

	m = send(m, key("up"), key("up"), TickMsg(time.Unix(0, 0)))
	if got := s.Params().Mass; math.Abs(got-123.1) > 1e-9 {
		t.Errorf("expected mass 123.1, got %f", got)
	}
	if s.Body().Mass != s.Params().Mass {
		t.Error("expected the live body to follow the mass change")
	}

	m = send(m, key("0"), TickMsg(time.Unix(1, 0)))
	if s.Params().Mass != sim.DefaultParams().Mass {
		t.Errorf("expected default mass restored, got %f", s.Params().Mass)
	}
}

func TestModelSelection(t *testing.T) {
	m := NewModel(newSim(t), "splashsim")
	m = send(m, key("shift+tab"))
	if m.selected != len(m.names)-1 {
		t.Errorf("expected wrap to last parameter, got %d", m.selected)
	}
	m = send(m, key("tab"), key("tab"))
	if m.selected != 1 {
		t.Errorf("expected second parameter, got %d", m.selected)
	}
}

func TestModelPause(t *testing.T) {
	s := newSim(t)
	m := NewModel(s, "splashsim")
	start := time.Unix(0, 0)

	m = send(m, key(" "), key("p"), TickMsg(start), TickMsg(start.Add(frameInterval)))
	if !s.State().Thrown {
		t.Fatal("expected commands to apply while paused")
	}
	if s.State().Time != 0 {
		t.Errorf("expected the clock to hold while paused, got %f", s.State().Time)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("expected paused status in view")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(newSim(t), "splashsim")
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(newSim(t), "splashsim")
	m = send(m, TickMsg(time.Unix(0, 0)))
	view := m.View()
	for _, want := range []string{"SPLASHSIM", "IDLE", "PARAMETERS", "Range"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	defer SetTheme(ThemeOcean.Name)
	SetTheme(ThemeOcean.Name)
	NextTheme()
	if CurrentTheme.Name != ThemeRetroGreen.Name {
		t.Errorf("expected retro after ocean, got %s", CurrentTheme.Name)
	}
	if GetTheme("missing").Name != ThemeOcean.Name {
		t.Error("expected ocean fallback")
	}
}

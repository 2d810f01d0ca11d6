package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// PhasePoint is one (height, vertical velocity) sample.
type PhasePoint struct {
	Y, Vy float64
}

// PhaseTrace records the body's vertical phase space while it is thrown and
// counts upward crossings of its rest height.
type PhaseTrace struct {
	Times  []float64
	Points []PhasePoint

	level     float64
	prev      float64
	crossings int
}

// NewPhaseTrace tracks crossings of the given height.
func NewPhaseTrace(level float64) *PhaseTrace {
	return &PhaseTrace{level: level, prev: math.NaN()}
}

func (p *PhaseTrace) OnTick(s dynamo.Snapshot) {
	if s.Dt <= 0 {
		return
	}
	y := s.Body.Position[1]
	if !math.IsNaN(p.prev) && p.prev < p.level && y >= p.level {
		p.crossings++
	}
	p.prev = y
	p.Times = append(p.Times, s.Time)
	p.Points = append(p.Points, PhasePoint{Y: y, Vy: s.Body.Velocity[1]})
}

// Heights returns the recorded heights in tick order.
func (p *PhaseTrace) Heights() []float64 {
	out := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Y
	}
	return out
}

// Crossings is the number of upward crossings of the tracked level.
func (p *PhaseTrace) Crossings() int { return p.crossings }

// Since returns the samples recorded at or after t.
func (p *PhaseTrace) Since(t float64) []PhasePoint {
	for i, tm := range p.Times {
		if tm >= t {
			return p.Points[i:]
		}
	}
	return nil
}

// PhasePortraitToASCII plots height against vertical velocity.
func PhasePortraitToASCII(points []PhasePoint, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].Y, points[0].Y
	minY, maxY := points[0].Vy, points[0].Vy
	for _, p := range points {
		minX, maxX = math.Min(minX, p.Y), math.Max(maxX, p.Y)
		minY, maxY = math.Min(minY, p.Vy), math.Max(maxY, p.Vy)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.Y - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Vy-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// zero velocity axis
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

package viz

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/effects"
	"github.com/san-kum/splashsim/internal/sim"
)

const (
	// RingRadius is the world radius of a splash ring at scale 1.
	RingRadius = 0.4
	// ringTilt flattens rings into the ellipse seen from the side.
	ringTilt    = 0.25
	ringSamples = 48

	minSpan     = 24.0
	panMargin   = 0.2
	predictDash = 3
)

type Point struct{ X, Y int }

// Viewport maps the world x/y plane onto canvas dots.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	W, H       int
}

func (v Viewport) Project(p dynamo.Vec3) Point {
	x := (p[0] - v.MinX) / (v.MaxX - v.MinX) * float64(v.W-1)
	y := (v.MaxY - p[1]) / (v.MaxY - v.MinY) * float64(v.H-1)
	return Point{int(math.Round(x)), int(math.Round(y))}
}

// DotsPerMetre is the horizontal scale.
func (v Viewport) DotsPerMetre() float64 {
	return float64(v.W-1) / (v.MaxX - v.MinX)
}

// Frame picks a viewport that holds the launch point, the floor, the preview
// arc and the body. span is the horizontal extent to keep between frames;
// the view pans when the body leaves it.
func Frame(s *sim.Simulation, w, h int, span float64) Viewport {
	env := s.Environment()
	p := s.Params()
	b := s.Body()

	top := math.Max(p.InitHeight, 0) + 2
	if pred := s.Prediction(); pred != nil {
		top = math.Max(top, pred.Apex+1)
	}
	top = math.Max(top, b.Position[1]+b.Radius+1)
	span = math.Max(span, minSpan)

	v := Viewport{
		MinX: -2,
		MaxX: span - 2,
		MinY: env.FloorHeight - 0.5,
		MaxY: top,
		W:    w,
		H:    h,
	}
	if x := b.Position[0]; x > v.MaxX-span*panMargin {
		shift := x - (v.MaxX - span*panMargin)
		v.MinX += shift
		v.MaxX += shift
	}
	return v
}

// DrawScene renders one frame of the simulation. Layers are painted back to
// front so the body stays visible over water and effects.
func DrawScene(c *Canvas, s *sim.Simulation, v Viewport, th Theme) {
	c.Clear()
	t := s.State().Time
	env := s.Environment()

	floor := v.Project(dynamo.Vec3{0, env.FloorHeight, 0}).Y
	c.DrawLine(0, floor, v.W-1, floor, th.Floor, 0, 0)

	waves := s.Waves()
	line := make([]Point, 0, v.W)
	for px := 0; px < v.W; px++ {
		x := v.MinX + float64(px)/v.DotsPerMetre()
		p := v.Project(dynamo.Vec3{x, waves.HeightAt(x, 0, t), 0})
		line = append(line, Point{px, p.Y})
	}
	c.DrawPolyline(line, th.Water, 0)

	if pred := s.Prediction(); pred != nil {
		c.DrawPolyline(project(v, pred.Points), th.Prediction, predictDash)
	}
	if h := s.History(); h.Len() > 0 {
		c.DrawPolyline(project(v, h.Points()), th.Path, 0)
	}

	for _, e := range s.Effects().Emitters() {
		drawEmitter(c, v, e, th)
	}

	b := s.Body()
	class := dynamo.ClassifyDensity(b.Density(), env.WaterDensity)
	centre := v.Project(b.Position)
	r := int(math.Round(b.Radius * v.DotsPerMetre()))
	c.DrawDisc(centre.X, centre.Y, r, classColor(class))
}

func drawEmitter(c *Canvas, v Viewport, e *effects.Emitter, th Theme) {
	if e.Opacity() <= 0.05 {
		return
	}
	switch e.Kind {
	case effects.KindRing:
		r := RingRadius * e.Scale()
		for i := 0; i < ringSamples; i++ {
			a := 2 * math.Pi * float64(i) / ringSamples
			p := e.Center.Add(dynamo.Vec3{r * math.Cos(a), ringTilt * r * math.Sin(a), 0})
			q := v.Project(p)
			c.Set(q.X, q.Y, th.Ring)
		}
	case effects.KindDroplets, effects.KindSand:
		col := th.Droplet
		if e.Kind == effects.KindSand {
			col = th.Sand
		}
		for i := range e.Particles {
			if !e.Particles[i].Alive {
				continue
			}
			q := v.Project(e.Particles[i].Position)
			c.Set(q.X, q.Y, col)
		}
	}
}

func project(v Viewport, pts []dynamo.Vec3) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = v.Project(p)
	}
	return out
}

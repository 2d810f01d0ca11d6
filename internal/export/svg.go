package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/physics"
)

const surfaceSamples = 96

// Scene is a side view (x/y plane) of one moment of a throw.
type Scene struct {
	Prediction []dynamo.Vec3
	History    []dynamo.Vec3
	Body       *dynamo.Body
	Waves      *physics.WaveField
	Time       float64
	Floor      float64

	// WaterDensity picks the body colour; zero means fresh water.
	WaterDensity float64
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (sc Scene) bounds() bounds {
	b := bounds{minX: 0, maxX: 1, minY: sc.Floor, maxY: 0}
	for _, p := range sc.Prediction {
		b.add(p[0], p[1])
	}
	for _, p := range sc.History {
		b.add(p[0], p[1])
	}
	if sc.Body != nil {
		b.add(sc.Body.Position[0]-sc.Body.Radius, sc.Body.Position[1]-sc.Body.Radius)
		b.add(sc.Body.Position[0]+sc.Body.Radius, sc.Body.Position[1]+sc.Body.Radius)
	}
	a := sc.Waves.MaxAmplitude()
	b.add(b.minX, a)

	rx, ry := b.maxX-b.minX, b.maxY-b.minY
	b.minX -= rx * 0.05
	b.maxX += rx * 0.05
	b.minY -= ry * 0.05
	b.maxY += ry * 0.05
	return b
}

// SceneToSVG draws the water line, floor, predicted arc, recorded path and
// body. The y axis keeps world proportions only when width and height match
// the scene's aspect ratio.
func SceneToSVG(sc Scene, width, height int) string {
	b := sc.bounds()
	w, h := float64(width), float64(height)
	px := func(x float64) float64 { return (x - b.minX) / (b.maxX - b.minX) * w }
	py := func(y float64) float64 { return h - (y-b.minY)/(b.maxY-b.minY)*h }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	// Water body below the surface line.
	sb.WriteString(`<path fill="#0b2d4a" stroke="#4aa3df" stroke-width="1.5" d="`)
	for i := 0; i <= surfaceSamples; i++ {
		x := b.minX + (b.maxX-b.minX)*float64(i)/surfaceSamples
		y := sc.Waves.HeightAt(x, 0, sc.Time)
		cmd := " L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, px(x), py(y))
	}
	fmt.Fprintf(&sb, " L%.1f,%.1f L0,%.1f Z\"/>\n", w, py(sc.Floor), py(sc.Floor))

	fmt.Fprintf(&sb, `<rect x="0" y="%.1f" width="%d" height="%.1f" fill="#5c4a2e"/>
`, py(sc.Floor), width, math.Max(0, h-py(sc.Floor)))

	writePath(&sb, sc.Prediction, px, py, `stroke="#ffffff" stroke-opacity="0.6" stroke-dasharray="6 4"`)
	writePath(&sb, sc.History, px, py, `stroke="#ffb347"`)

	if sc.Body != nil {
		r := sc.Body.Radius / (b.maxX - b.minX) * w
		rho := sc.WaterDensity
		if rho <= 0 {
			rho = dynamo.DefaultWaterDensity
		}
		class := dynamo.ClassifyDensity(sc.Body.Density(), rho)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, px(sc.Body.Position[0]), py(sc.Body.Position[1]), math.Max(r, 2), class.Color())
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePath(sb *strings.Builder, pts []dynamo.Vec3, px, py func(float64) float64, style string) {
	if len(pts) < 2 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke-width="1.5" %s d="`, style)
	for i, p := range pts {
		if i == 0 {
			fmt.Fprintf(sb, "M%.1f,%.1f", px(p[0]), py(p[1]))
		} else {
			fmt.Fprintf(sb, " L%.1f,%.1f", px(p[0]), py(p[1]))
		}
	}
	sb.WriteString("\"/>\n")
}

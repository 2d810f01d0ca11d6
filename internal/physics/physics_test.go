package physics

import (
	"math"
	"testing"

	"github.com/san-kum/splashsim/internal/dynamo"
)

func TestWaveFieldHeight(t *testing.T) {
	f := NewWaveField(NewWave(0.5, dynamo.Vec2{2, 0}, 4.0, 1.0))

	if h := f.HeightAt(0, 0, 0); math.Abs(h) > 1e-12 {
		t.Errorf("expected zero height at origin, got %f", h)
	}

	// quarter wavelength along the (normalised) direction is the crest
	if h := f.HeightAt(1.0, 0, 0); math.Abs(h-0.5) > 1e-12 {
		t.Errorf("expected crest 0.5, got %f", h)
	}

	// the crest travels at the phase speed
	if h := f.HeightAt(2.0, 0, 1.0); math.Abs(h-0.5) > 1e-12 {
		t.Errorf("expected crest to move to x=2 after 1s, got %f", h)
	}
}

func TestWaveFieldBounded(t *testing.T) {
	f := DefaultWaveField()
	bound := f.MaxAmplitude()
	if math.Abs(bound-0.19) > 1e-12 {
		t.Errorf("expected amplitude bound 0.19, got %f", bound)
	}
	for i := 0; i < 200; i++ {
		x, z, tm := float64(i)*0.37, float64(i)*-0.11, float64(i)*0.05
		if h := f.HeightAt(x, z, tm); math.Abs(h) > bound+1e-12 {
			t.Fatalf("height %f exceeds bound %f", h, bound)
		}
	}
}

func TestWaveFieldNilAndDegenerate(t *testing.T) {
	var f *WaveField
	if f.HeightAt(1, 2, 3) != 0 {
		t.Error("nil field should be flat")
	}
	g := NewWaveField(Wave{Amplitude: 1, Direction: dynamo.Vec2{1, 0}})
	if g.HeightAt(1, 0, 0) != 0 {
		t.Error("zero wavelength should contribute nothing")
	}
	w := NewWave(1, dynamo.Vec2{}, 1, 1)
	if w.Direction != (dynamo.Vec2{1, 0}) {
		t.Errorf("expected fallback direction, got %v", w.Direction)
	}
}

func TestSubmergeEnds(t *testing.T) {
	r := 0.3

	above := Submerge(r, 1.0+r, 1.0)
	if above.Fraction != 0 || above.Volume != 0 {
		t.Errorf("expected dry sphere, got %+v", above)
	}

	below := Submerge(r, 1.0-r, 1.0)
	if below.Fraction != 1 {
		t.Errorf("expected fully submerged, got %f", below.Fraction)
	}
	if math.Abs(below.Volume-dynamo.SphereVolume(r)) > 1e-12 {
		t.Errorf("expected full volume, got %f", below.Volume)
	}

	half := Submerge(r, 1.0, 1.0)
	if math.Abs(half.Fraction-0.5) > 1e-12 {
		t.Errorf("expected half submerged, got %f", half.Fraction)
	}
}

func TestSubmergeExactlyFull(t *testing.T) {
	for _, r := range []float64{0.3, 0.5, 0.7, 1.0} {
		for _, y := range []float64{1 - r, -10} {
			s := Submerge(r, y, 1)
			if s.Fraction != 1 || s.Air() != 0 {
				t.Errorf("r=%g y=%g: expected fraction exactly 1, got %.17g", r, y, s.Fraction)
			}
		}
		if dry := Submerge(r, 1+r, 1); dry.Fraction != 0 || dry.Air() != 1 {
			t.Errorf("r=%g: expected fraction exactly 0, got %.17g", r, dry.Fraction)
		}
	}
}

func TestForceModelNoAirTermsUnderwater(t *testing.T) {
	m := NewForceModel(dynamo.DefaultEnvironment())
	m.BuoyancyScale = 1
	b := dynamo.NewBody(10, 0.3, dynamo.Vec3{0, -2, 0})
	b.Velocity = dynamo.Vec3{0, -3, 0}

	f := m.Net(b, 0)
	if f.AirDrag != (dynamo.Vec3{}) || f.AirBuoyancy != (dynamo.Vec3{}) {
		t.Errorf("expected no air terms when fully submerged, got drag %v lift %v", f.AirDrag, f.AirBuoyancy)
	}
}

func TestSubmergeMonotonic(t *testing.T) {
	r := 0.4
	prev := -1.0
	for i := 0; i <= 200; i++ {
		y := 1.0 - float64(i)*0.01
		f := Submerge(r, y, 0).Fraction
		if f < prev {
			t.Fatalf("fraction decreased at y=%f: %f < %f", y, f, prev)
		}
		if f < 0 || f > 1 {
			t.Fatalf("fraction out of range: %f", f)
		}
		prev = f
	}
}

func TestSubmergeZeroRadius(t *testing.T) {
	s := Submerge(0, -1, 0)
	if math.IsNaN(s.Fraction) {
		t.Error("expected finite fraction for zero radius")
	}
}

func TestBuoyantForce(t *testing.T) {
	v := dynamo.SphereVolume(0.3)
	got := BuoyantForce(1000, v, -9.81)
	if math.Abs(got-1000*v*9.81) > 1e-9 {
		t.Errorf("expected %f, got %f", 1000*v*9.81, got)
	}
}

func TestForceModelFreeFall(t *testing.T) {
	m := NewForceModel(dynamo.DefaultEnvironment())
	b := dynamo.NewBody(10, 0.2, dynamo.Vec3{0, 5, 0})

	f := m.Net(b, 0)
	g := dynamo.DefaultGravity
	if f.Total[0] != 0 || f.Total[2] != 0 || math.Abs(f.Total[1]-10*g) > 1e-9 {
		t.Errorf("expected gravity only at rest in air, got %v", f.Total)
	}
	if f.AirDrag != (dynamo.Vec3{}) || f.WaterDrag != (dynamo.Vec3{}) {
		t.Error("expected no drag below the speed threshold")
	}
}

func TestForceModelAirDragOpposesVelocity(t *testing.T) {
	m := NewForceModel(dynamo.DefaultEnvironment())
	b := dynamo.NewBody(10, 0.2, dynamo.Vec3{0, 5, 0})
	b.Velocity = dynamo.Vec3{10, 0, 0}

	f := m.Net(b, 0)
	area := math.Pi * 0.04
	want := 0.5 * dynamo.DefaultAirDensity * dynamo.DefaultDragCoefficient * area * 100
	if math.Abs(f.AirDrag[0]+want) > 1e-9 {
		t.Errorf("expected air drag %f, got %f", -want, f.AirDrag[0])
	}
	if f.WaterDrag != (dynamo.Vec3{}) {
		t.Error("expected no water drag in air")
	}

	m.DragScale = 0
	if f := m.Net(b, 0); f.AirDrag != (dynamo.Vec3{}) {
		t.Error("expected zero air drag with zero drag scale")
	}
}

func TestForceModelAirBuoyancy(t *testing.T) {
	env := dynamo.DefaultEnvironment()
	m := NewForceModel(env)
	m.BuoyancyScale = 2
	b := dynamo.NewBody(1, 0.5, dynamo.Vec3{0, 10, 0})

	f := m.Net(b, 0)
	want := env.AirDensity * b.Volume() * 9.81 * 2
	if math.Abs(f.AirBuoyancy[1]-want) > 1e-9 {
		t.Errorf("expected air buoyancy %f, got %f", want, f.AirBuoyancy[1])
	}
}

func TestForceModelSubmergedBuoyancy(t *testing.T) {
	env := dynamo.DefaultEnvironment()
	m := NewForceModel(env)
	b := dynamo.NewBody(50, 0.3, dynamo.Vec3{0, -2, 0})

	f := m.Net(b, 0)
	want := env.WaterDensity * b.Volume() * 9.81
	if math.Abs(f.WaterBuoyancy[1]-want) > 1e-9 {
		t.Errorf("expected buoyancy %f, got %f", want, f.WaterBuoyancy[1])
	}
	if f.Total[1] <= 0 {
		t.Errorf("expected net upward force for a light body, got %f", f.Total[1])
	}
}

func TestForceModelWaterDragUsesCurrent(t *testing.T) {
	env := dynamo.DefaultEnvironment()
	m := NewForceModel(env)
	b := dynamo.NewBody(50, 0.3, dynamo.Vec3{0, -2, 0})

	// moving with the current: no relative velocity along x
	b.Velocity = dynamo.Vec3{env.Current[0], 0, 0}
	f := m.Net(b, 0)
	if f.WaterDrag.Len() > 1e-12 {
		t.Errorf("expected no water drag when drifting with the current, got %v", f.WaterDrag)
	}

	b.Velocity = dynamo.Vec3{0, -1, 0}
	f = m.Net(b, 0)
	if f.WaterDrag[1] <= 0 {
		t.Errorf("expected upward drag when sinking, got %v", f.WaterDrag)
	}
	if f.WaterDrag[0] <= 0 {
		t.Errorf("expected the current to push along +x, got %v", f.WaterDrag)
	}
}

func TestForceModelContinuousAtSurface(t *testing.T) {
	m := NewForceModel(dynamo.DefaultEnvironment())
	b := dynamo.NewBody(50, 0.3, dynamo.Vec3{0, 0.3 + 1e-7, 0})
	b.Velocity = dynamo.Vec3{1, -2, 0}
	above := m.Net(b, 0).Total
	b.Position[1] = 0.3 - 1e-7
	below := m.Net(b, 0).Total
	if above.Sub(below).Len() > 1e-2 {
		t.Errorf("expected continuous force across the surface, got %v vs %v", above, below)
	}
}

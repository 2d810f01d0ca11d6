package effects

import (
	"math"
	"math/rand"

	"github.com/san-kum/splashsim/internal/dynamo"
)

const (
	RingDuration    = 1.2
	RingOpacity     = 0.9
	RingSurfaceLift = 0.01

	DropletDuration     = 1.6
	DropletOpacity      = 0.95
	DropletGravityScale = 0.7
	MinDroplets         = 30
	MaxDroplets         = 400

	SandDuration = 2.5
	SandOpacity  = 0.8
	SandDrag     = 0.9
	SandLift     = 0.3
	MinSand      = 20
	MaxSand      = 200

	MinIntensity = 0.3
	MaxIntensity = 5.0
)

// SplashIntensity grows with impact kinetic energy and body size.
func SplashIntensity(mass, impactSpeed, radius float64) float64 {
	ke := 0.5 * mass * impactSpeed * impactSpeed
	return dynamo.Clamp(math.Sqrt(ke)/8+radius*1.5, MinIntensity, MaxIntensity)
}

func DropletCount(mass, impactSpeed, radius float64) int {
	ke := 0.5 * mass * impactSpeed * impactSpeed
	n := math.Floor(20 + 0.02*ke + radius*120)
	return int(dynamo.Clamp(n, MinDroplets, MaxDroplets))
}

func SandCount(impactSpeed float64) int {
	return int(dynamo.Clamp(math.Floor(15+10*impactSpeed), MinSand, MaxSand))
}

// Manager owns every live emitter. All methods run on the tick goroutine.
type Manager struct {
	emitters []*Emitter
	surface  Surface
	gravity  float64
	floor    float64
	rnd      *rand.Rand
}

func NewManager(surface Surface, env dynamo.Environment, seed int64) *Manager {
	return &Manager{
		emitters: make([]*Emitter, 0, 8),
		surface:  surface,
		gravity:  env.Gravity,
		floor:    env.FloorHeight,
		rnd:      rand.New(rand.NewSource(seed)),
	}
}

// SpawnSplash creates the ring and droplet burst for one water entry at pos,
// which should sit on the surface.
func (m *Manager) SpawnSplash(pos dynamo.Vec3, impactSpeed, radius, mass float64) (ring, drops *Emitter) {
	intensity := SplashIntensity(mass, impactSpeed, radius)

	ring = &Emitter{
		Kind:       KindRing,
		Center:     pos.Add(dynamo.Vec3{0, RingSurfaceLift, 0}),
		Duration:   RingDuration,
		StartScale: 1,
		EndScale:   5 * intensity,
		Intensity:  intensity,
		rule:       ringRule{},
	}

	n := DropletCount(mass, impactSpeed, radius)
	drops = &Emitter{
		Kind:       KindDroplets,
		Center:     pos,
		Particles:  make([]Particle, n),
		Duration:   DropletDuration,
		StartScale: 1,
		EndScale:   1,
		Intensity:  intensity,
		PointSize:  0.05 + radius*0.06,
		rule:       dropletRule{surface: m.surface, gravity: m.gravity},
	}

	baseSpeed := 1.0 + impactSpeed*0.5 + intensity*0.2
	spread := 0.15 + radius*0.2
	for i := range drops.Particles {
		angle := m.rnd.Float64() * 2 * math.Pi
		rad := m.rnd.Float64() * spread
		cos, sin := math.Cos(angle), math.Sin(angle)

		dir := dynamo.Vec3{cos, 0.8 + m.rnd.Float64()*0.4, sin}.Normalize()
		speed := baseSpeed * (0.6 + m.rnd.Float64()*0.7)

		drops.Particles[i] = Particle{
			Position: dynamo.Vec3{pos[0] + cos*rad, pos[1] + 0.02, pos[2] + sin*rad},
			Velocity: dir.Mul(speed),
			Alive:    true,
		}
	}

	m.emitters = append(m.emitters, ring, drops)
	return ring, drops
}

// SpawnSandCloud creates the impact cloud for a hard floor hit at pos.
func (m *Manager) SpawnSandCloud(pos dynamo.Vec3, impactSpeed, radius float64) *Emitter {
	n := SandCount(impactSpeed)
	cloud := &Emitter{
		Kind:       KindSand,
		Center:     pos,
		Particles:  make([]Particle, n),
		Duration:   SandDuration,
		StartScale: 1,
		EndScale:   1,
		Intensity:  impactSpeed,
		PointSize:  0.04 + radius*0.05,
		rule:       sandRule{floor: m.floor},
	}

	baseSpeed := 0.4 + impactSpeed*0.15
	for i := range cloud.Particles {
		angle := m.rnd.Float64() * 2 * math.Pi
		cos, sin := math.Cos(angle), math.Sin(angle)
		dir := dynamo.Vec3{cos, 0.3 + m.rnd.Float64()*0.5, sin}.Normalize()
		speed := baseSpeed * (0.5 + m.rnd.Float64())

		cloud.Particles[i] = Particle{
			Position: dynamo.Vec3{pos[0] + cos*radius, pos[1] + 0.02, pos[2] + sin*radius},
			Velocity: dir.Mul(speed),
			Alive:    true,
		}
	}

	m.emitters = append(m.emitters, cloud)
	return cloud
}

// Advance moves every emitter forward by dt at simulated time t. Emitters that
// reach their duration are removed before they are updated again.
func (m *Manager) Advance(dt, t float64) {
	for i := 0; i < len(m.emitters); {
		e := m.emitters[i]
		e.Elapsed += dt
		if e.Expired() {
			last := len(m.emitters) - 1
			m.emitters[i] = m.emitters[last]
			m.emitters[last] = nil
			m.emitters = m.emitters[:last]
			continue
		}
		e.rule.Advance(e, dt, t)
		i++
	}
}

func (m *Manager) Clear() {
	for i := range m.emitters {
		m.emitters[i] = nil
	}
	m.emitters = m.emitters[:0]
}

// Emitters returns the live emitters. Callers must not retain or mutate them.
func (m *Manager) Emitters() []*Emitter { return m.emitters }

func (m *Manager) Len() int { return len(m.emitters) }

func (m *Manager) Count(kind Kind) int {
	n := 0
	for _, e := range m.emitters {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Particles returns the total number of live particles across every emitter.
func (m *Manager) Particles() int {
	n := 0
	for _, e := range m.emitters {
		n += e.Live()
	}
	return n
}

package physics

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

// Wave is one travelling sinusoidal surface component.
type Wave struct {
	Amplitude  float64
	Direction  dynamo.Vec2
	Wavelength float64
	Speed      float64
}

// NewWave normalises dir. A zero direction falls back to +x.
func NewWave(amplitude float64, dir dynamo.Vec2, wavelength, speed float64) Wave {
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	} else {
		dir = dynamo.Vec2{1, 0}
	}
	return Wave{Amplitude: amplitude, Direction: dir, Wavelength: wavelength, Speed: speed}
}

// WaveField is the superposition of travelling waves that defines the water
// surface. Every consumer of surface height must go through HeightAt.
type WaveField struct {
	Waves []Wave
}

func NewWaveField(waves ...Wave) *WaveField {
	return &WaveField{Waves: waves}
}

func DefaultWaveField() *WaveField {
	return NewWaveField(
		NewWave(0.12, dynamo.Vec2{1, 0}, 6.0, 1.2),
		NewWave(0.07, dynamo.Vec2{0.3, 0.7}, 3.5, 0.8),
	)
}

// HeightAt returns the surface height at (x, z) and simulated time t.
func (f *WaveField) HeightAt(x, z, t float64) float64 {
	if f == nil {
		return 0
	}
	h := 0.0
	for _, w := range f.Waves {
		if w.Wavelength <= 0 {
			continue
		}
		k := 2 * math.Pi / w.Wavelength
		phase := k*w.Direction.Dot(dynamo.Vec2{x, z}) - w.Speed*k*t
		h += w.Amplitude * math.Sin(phase)
	}
	return h
}

// MaxAmplitude bounds |HeightAt| over all x, z, t.
func (f *WaveField) MaxAmplitude() float64 {
	if f == nil {
		return 0
	}
	sum := 0.0
	for _, w := range f.Waves {
		sum += math.Abs(w.Amplitude)
	}
	return sum
}

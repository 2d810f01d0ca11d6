package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/splashsim/internal/dynamo"
)

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		hz   float64
		n    int
		dt   float64
	}{
		{"half hertz", 0.5, 800, 0.05},
		{"power of two", 2.0, 1024, 1.0 / 64},
		{"slow bob", 0.25, 1200, 1.0 / 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]float64, tt.n)
			for i := range samples {
				samples[i] = 0.3 + 0.1*math.Sin(2*math.Pi*tt.hz*float64(i)*tt.dt)
			}
			got, err := DominantFrequency(samples, tt.dt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			resolution := 1 / (float64(tt.n) * tt.dt)
			if math.Abs(got-tt.hz) > resolution {
				t.Errorf("expected %.3f Hz, got %.3f", tt.hz, got)
			}
		})
	}
}

func TestDominantFrequencyErrors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2}, 0.1); !errors.Is(err, ErrShortTrace) {
		t.Errorf("expected ErrShortTrace, got %v", err)
	}
	if _, err := DominantFrequency(make([]float64, 16), 0); err == nil {
		t.Error("expected error for zero step")
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum([]float64{5, 5, 5, 5, 5, 5, 5, 5})
	for k, v := range ps {
		if v > 1e-9 {
			t.Errorf("expected flat trace to have no energy, bin %d = %f", k, v)
		}
	}
}

func TestPhaseTraceCrossings(t *testing.T) {
	p := NewPhaseTrace(0)
	dt := 0.05
	for i := 0; i < 200; i++ {
		tm := float64(i) * dt
		p.OnTick(dynamo.Snapshot{
			Time: tm,
			Dt:   dt,
			Body: dynamo.Body{
				Position: dynamo.Vec3{0, math.Sin(2*math.Pi*0.5*tm + 0.1), 0},
				Velocity: dynamo.Vec3{0, math.Cos(2*math.Pi*0.5*tm + 0.1), 0},
			},
		})
	}
	// 10 s at 0.5 Hz
	if c := p.Crossings(); c < 4 || c > 5 {
		t.Errorf("expected 4-5 upward crossings, got %d", c)
	}
	if len(p.Heights()) != 200 {
		t.Errorf("expected 200 samples, got %d", len(p.Heights()))
	}
	if got := len(p.Since(5)); got != 100 {
		t.Errorf("expected 100 samples after t=5, got %d", got)
	}
}

func TestPhaseTraceSkipsIdle(t *testing.T) {
	p := NewPhaseTrace(0)
	p.OnTick(dynamo.Snapshot{})
	if len(p.Points) != 0 {
		t.Error("expected idle ticks ignored")
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	pts := []PhasePoint{{-1, -1}, {0, 1}, {1, 0}}
	out := PhasePortraitToASCII(pts, 20, 10)
	if lines := strings.Count(out, "\n"); lines != 10 {
		t.Errorf("expected 10 rows, got %d", lines)
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("expected 3 plotted points, got\n%s", out)
	}
	if PhasePortraitToASCII(nil, 20, 10) != "" {
		t.Error("expected empty plot for no points")
	}
}

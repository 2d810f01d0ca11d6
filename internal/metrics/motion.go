package metrics

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
)

type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed"}
}

func (p *PeakSpeed) Name() string { return p.name }

func (p *PeakSpeed) Observe(s dynamo.Snapshot) {
	p.peak = math.Max(p.peak, s.Body.Speed())
}

func (p *PeakSpeed) Value() float64 { return p.peak }
func (p *PeakSpeed) Reset()         { p.peak = 0 }

// MaxDepth is the deepest the body centre has been below the local surface.
type MaxDepth struct {
	name  string
	depth float64
}

func NewMaxDepth() *MaxDepth {
	return &MaxDepth{name: "max_depth"}
}

func (m *MaxDepth) Name() string { return m.name }

func (m *MaxDepth) Observe(s dynamo.Snapshot) {
	if s.Dt <= 0 {
		return
	}
	m.depth = math.Max(m.depth, s.Surface-s.Body.Position[1])
}

func (m *MaxDepth) Value() float64 { return m.depth }
func (m *MaxDepth) Reset()         { m.depth = 0 }

type SplashCount struct {
	name  string
	count int
}

func NewSplashCount() *SplashCount {
	return &SplashCount{name: "splash_count"}
}

func (c *SplashCount) Name() string { return c.name }

func (c *SplashCount) Observe(s dynamo.Snapshot) {
	if s.Splash {
		c.count++
	}
}

func (c *SplashCount) Value() float64 { return float64(c.count) }
func (c *SplashCount) Reset()         { c.count = 0 }

// EntryRange is the horizontal distance from launch to the first water entry.
type EntryRange struct {
	name    string
	x       float64
	entered bool
}

func NewEntryRange() *EntryRange {
	return &EntryRange{name: "entry_range"}
}

func (e *EntryRange) Name() string { return e.name }

func (e *EntryRange) Observe(s dynamo.Snapshot) {
	if s.Splash && !e.entered {
		e.x = s.Body.Position[0]
		e.entered = true
	}
}

func (e *EntryRange) Value() float64 { return e.x }

func (e *EntryRange) Reset() {
	e.x = 0
	e.entered = false
}

// Standard returns the metrics reported by headless runs.
func Standard(env dynamo.Environment) []dynamo.Metric {
	return []dynamo.Metric{
		NewPeakSpeed(),
		NewMaxDepth(),
		NewSettleTime(DefaultSettleSpeed),
		NewSplashCount(),
		NewEntryRange(),
		NewEnergyLoss(env),
	}
}

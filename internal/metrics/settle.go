package metrics

import "github.com/san-kum/splashsim/internal/dynamo"

// DefaultSettleSpeed is the speed below which an in-water body counts as still.
const DefaultSettleSpeed = 0.05

// SettleTime reports the earliest time after which the body stayed in water
// or on the floor below the threshold speed, or -1 if it never settled.
type SettleTime struct {
	name      string
	threshold float64
	since     float64
	settled   bool
}

func NewSettleTime(threshold float64) *SettleTime {
	if threshold <= 0 {
		threshold = DefaultSettleSpeed
	}
	return &SettleTime{
		name:      "settle_time",
		threshold: threshold,
	}
}

func (s *SettleTime) Name() string {
	return s.name
}

func (s *SettleTime) Observe(snap dynamo.Snapshot) {
	if snap.Dt <= 0 {
		return
	}
	still := snap.Body.Speed() < s.threshold &&
		(snap.Phase == dynamo.PhaseInWater || snap.Phase == dynamo.PhaseResting)
	switch {
	case still && !s.settled:
		s.settled = true
		s.since = snap.Time
	case !still:
		s.settled = false
	}
}

func (s *SettleTime) Value() float64 {
	if !s.settled {
		return -1
	}
	return s.since
}

func (s *SettleTime) Reset() {
	s.settled = false
	s.since = 0
}

package trajectory

import "github.com/san-kum/splashsim/internal/dynamo"

const (
	DefaultHistoryCap = 500
	MinRecordDistance = 0.1
	MinRecordSpeed    = 0.1
)

// History is the bounded, sparsified trace of the thrown body.
type History struct {
	cap    int
	points []dynamo.Vec3
	last   dynamo.Vec3
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &History{cap: capacity, points: make([]dynamo.Vec3, 0, capacity)}
}

// Record appends pos when the body moved far enough since the last sample and
// is still moving. It reports whether a sample was taken.
func (h *History) Record(pos, vel dynamo.Vec3) bool {
	if vel.Len() <= MinRecordSpeed {
		return false
	}
	if pos.Sub(h.last).Len() <= MinRecordDistance {
		return false
	}
	h.points = append(h.points, pos)
	h.last = pos
	if len(h.points) > h.cap {
		h.points = h.points[1:]
	}
	return true
}

// Reset drops every sample and anchors the distance test at origin.
func (h *History) Reset(origin dynamo.Vec3) {
	h.points = h.points[:0]
	h.last = origin
}

func (h *History) Points() []dynamo.Vec3 { return h.points }
func (h *History) Len() int              { return len(h.points) }
func (h *History) Cap() int              { return h.cap }
func (h *History) Last() dynamo.Vec3     { return h.last }

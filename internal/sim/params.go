package sim

import (
	"math"

	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/trajectory"
)

// Parameter names accepted by SetParam and ResetParam.
const (
	ParamMass          = "mass"
	ParamRadius        = "radius"
	ParamAngle         = "angle"
	ParamSpeed         = "speed"
	ParamInitHeight    = "init_height"
	ParamDragScale     = "drag_scale"
	ParamBuoyancyScale = "buoyancy_scale"
)

// Params are the user-adjustable launch settings.
type Params struct {
	Mass          float64
	Radius        float64
	AngleDeg      float64
	Speed         float64
	InitHeight    float64
	DragScale     float64
	BuoyancyScale float64
}

func DefaultParams() Params {
	return Params{
		Mass:          113.1,
		Radius:        0.3,
		AngleDeg:      45,
		Speed:         20,
		InitHeight:    2.0,
		DragScale:     1.0,
		BuoyancyScale: 0.0,
	}
}

// ParamNames lists every adjustable parameter in display order.
func ParamNames() []string {
	return []string{
		ParamMass, ParamRadius, ParamAngle, ParamSpeed,
		ParamInitHeight, ParamDragScale, ParamBuoyancyScale,
	}
}

func (p Params) Get(name string) (float64, bool) {
	switch name {
	case ParamMass:
		return p.Mass, true
	case ParamRadius:
		return p.Radius, true
	case ParamAngle:
		return p.AngleDeg, true
	case ParamSpeed:
		return p.Speed, true
	case ParamInitHeight:
		return p.InitHeight, true
	case ParamDragScale:
		return p.DragScale, true
	case ParamBuoyancyScale:
		return p.BuoyancyScale, true
	}
	return 0, false
}

// Set assigns a validated value. The receiver is unchanged on error.
func (p *Params) Set(name string, v float64) error {
	if err := ValidateParam(name, v); err != nil {
		return err
	}
	switch name {
	case ParamMass:
		p.Mass = v
	case ParamRadius:
		p.Radius = v
	case ParamAngle:
		p.AngleDeg = v
	case ParamSpeed:
		p.Speed = v
	case ParamInitHeight:
		p.InitHeight = v
	case ParamDragScale:
		p.DragScale = v
	case ParamBuoyancyScale:
		p.BuoyancyScale = v
	}
	return nil
}

func (p Params) Validate() error {
	for _, name := range ParamNames() {
		v, _ := p.Get(name)
		if err := ValidateParam(name, v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateParam checks a single value against its bounds.
func ValidateParam(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &dynamo.ParamError{Name: name, Value: v, Limit: "finite"}
	}
	switch name {
	case ParamMass, ParamRadius:
		if v <= 0 {
			return &dynamo.ParamError{Name: name, Value: v, Limit: "> 0"}
		}
	case ParamAngle:
		if v < 0 || v > 90 {
			return &dynamo.ParamError{Name: name, Value: v, Limit: "0..90"}
		}
	case ParamSpeed, ParamDragScale, ParamBuoyancyScale:
		if v < 0 {
			return &dynamo.ParamError{Name: name, Value: v, Limit: ">= 0"}
		}
	case ParamInitHeight:
	default:
		return &dynamo.ParamError{Name: name, Value: v, Limit: "unknown parameter"}
	}
	return nil
}

func (p Params) Density() float64 { return dynamo.Density(p.Mass, p.Radius) }

// Launch converts the settings into predictor input.
func (p Params) Launch() trajectory.Launch {
	return trajectory.Launch{
		Mass:          p.Mass,
		Radius:        p.Radius,
		Height:        p.InitHeight,
		AngleDeg:      p.AngleDeg,
		Speed:         p.Speed,
		DragScale:     p.DragScale,
		BuoyancyScale: p.BuoyancyScale,
	}
}

// State is the per-run bookkeeping of the tick loop.
type State struct {
	Time         float64
	Thrown       bool
	WasInWater   bool
	LastRecorded dynamo.Vec3
	Phase        dynamo.Phase
	Regime       dynamo.Regime
	Steps        int
	Splashes     int
}

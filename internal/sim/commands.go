package sim

// Command is a discrete input applied at the start of the next tick.
type Command interface {
	apply(s *Simulation)
}

// SetParam changes one launch parameter. Out-of-range values are dropped.
type SetParam struct {
	Name  string
	Value float64
}

// ResetParam restores one parameter to its default.
type ResetParam struct {
	Name string
}

// Throw launches the body from the initial height with the current angle and
// speed.
type Throw struct{}

// Reset returns the body to idle and clears the path and every effect.
type Reset struct{}

func SetMass(v float64) Command          { return SetParam{Name: ParamMass, Value: v} }
func SetRadius(v float64) Command        { return SetParam{Name: ParamRadius, Value: v} }
func SetAngle(v float64) Command         { return SetParam{Name: ParamAngle, Value: v} }
func SetSpeed(v float64) Command         { return SetParam{Name: ParamSpeed, Value: v} }
func SetInitHeight(v float64) Command    { return SetParam{Name: ParamInitHeight, Value: v} }
func SetDragScale(v float64) Command     { return SetParam{Name: ParamDragScale, Value: v} }
func SetBuoyancyScale(v float64) Command { return SetParam{Name: ParamBuoyancyScale, Value: v} }

func (c SetParam) apply(s *Simulation) {
	if err := s.params.Set(c.Name, c.Value); err != nil {
		s.log.Debug("command ignored", "param", c.Name, "value", c.Value, "err", err)
		return
	}
	s.paramChanged(c.Name)
}

func (c ResetParam) apply(s *Simulation) {
	v, ok := s.defaults.Get(c.Name)
	if !ok {
		s.log.Debug("command ignored", "param", c.Name, "err", "unknown parameter")
		return
	}
	SetParam{Name: c.Name, Value: v}.apply(s)
}

func (Throw) apply(s *Simulation) { s.throw() }

func (Reset) apply(s *Simulation) { s.reset() }

package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation setup.
var (
	// ErrInvalidState indicates a body state containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrUnknownIntegrator indicates an integrator name that is not registered.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownStabilizer indicates a stabilizer name that is not registered.
	ErrUnknownStabilizer = errors.New("dynamo: unknown stabilizer")
)

// ParamError wraps ErrParameterBounds with the offending parameter.
type ParamError struct {
	Name  string
	Value float64
	Limit string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("dynamo: parameter %s=%g out of valid bounds (%s)", e.Name, e.Value, e.Limit)
}

func (e *ParamError) Unwrap() error {
	return ErrParameterBounds
}

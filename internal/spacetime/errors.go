package spacetime

import (
	"errors"
	"fmt"
)

// Domain errors for geodesic computations. All of them are input-validation
// or physical-consistency failures; none are transient.
var (
	// ErrParticleKind indicates a particle tag outside {massive, photon}.
	ErrParticleKind = errors.New("spacetime: unknown particle kind")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("spacetime: parameter out of valid bounds")

	// ErrSubHorizonStart indicates a start radius at or inside the horizon.
	ErrSubHorizonStart = errors.New("spacetime: start radius at or inside the horizon")

	// ErrForbiddenParameters indicates that no real orbit exists for the
	// given conserved quantities at the requested radius.
	ErrForbiddenParameters = errors.New("spacetime: no real orbit for these parameters")
)

// ParamError wraps a domain error with the offending field and value.
type ParamError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%g", e.Wrapped, e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}

// NewParamError reports a single out-of-range parameter.
func NewParamError(field string, value float64, wrapped error) *ParamError {
	return &ParamError{Field: field, Value: value, Wrapped: wrapped}
}

// ForbiddenError carries the context of a negative radicand in the initial
// condition solver: the energy is below the effective potential at r0.
type ForbiddenError struct {
	R0    float64
	E2    float64
	Veff2 float64
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%v: at r0=%.6g, E^2=%.6g < Veff^2(r0)=%.6g; adjust E/L or pick another r0",
		ErrForbiddenParameters, e.R0, e.E2, e.Veff2)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbiddenParameters
}

// Package spacetime provides the shared primitives of the geodesic engine.
//
// The package defines the value types every layer agrees on:
//
//   - [Particle]: the kind of test particle following the geodesic
//   - [RadialSign]: direction of the initial radial motion
//   - domain error variables and the [ParamError] wrapper
//
// # Thread Safety
//
// Everything here is an immutable value type; all of it is safe for
// concurrent use.
package spacetime

// Package components defines the ECS components backing the particle field.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Particle is a detached copy of one particle's components.
// Field.Particles hands these out; mutating one has no effect on the field.
type Particle struct {
	Pos r2.Vec
	Vel r2.Vec
}

// Speed returns the velocity magnitude.
func (p Particle) Speed() float64 {
	return r2.Norm(p.Vel)
}

package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents a particle's position in surface pixels.
type Position r2.Vec

// Velocity represents a particle's velocity in pixels per frame.
type Velocity r2.Vec

// Vec returns the position as an r2 vector.
func (p Position) Vec() r2.Vec { return r2.Vec(p) }

// Vec returns the velocity as an r2 vector.
func (v Velocity) Vec() r2.Vec { return r2.Vec(v) }

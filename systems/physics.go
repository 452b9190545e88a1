package systems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/components"
)

// Boundary selects what happens when a particle reaches the edge of the field.
type Boundary uint8

const (
	BoundaryWrap   Boundary = iota // Teleport to the opposite edge
	BoundaryBounce                 // Clamp to the margin and reflect with damping
)

// BounceDamping scales the reflected velocity component on a bounce.
const BounceDamping = -0.5

// ParseBoundary maps a config name to a Boundary.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "wrap", "":
		return BoundaryWrap, nil
	case "bounce":
		return BoundaryBounce, nil
	}
	return 0, fmt.Errorf("unknown boundary policy %q", s)
}

// String returns the config name of the policy.
func (b Boundary) String() string {
	switch b {
	case BoundaryWrap:
		return "wrap"
	case BoundaryBounce:
		return "bounce"
	}
	return "unknown"
}

// Step advances every particle by one frame.
// Per particle, in order: drift, speed clamp, integration, boundary policy.
func (f *Field) Step() {
	f.positions = f.positions[:0]

	query := f.filter.Query()
	for query.Next() {
		pos, vel := query.Get()

		v := vel.Vec()
		if f.params.Drift > 0 {
			v.X += (f.rng.Float64() - 0.5) * f.params.Drift
			v.Y += (f.rng.Float64() - 0.5) * f.params.Drift
		}
		v = clampSpeed(v, f.params.MaxSpeed)

		p := r2.Add(pos.Vec(), v)
		switch f.params.Boundary {
		case BoundaryBounce:
			p, v = f.bounce(p, v)
		default:
			p = f.wrap(p)
		}

		*pos = components.Position(p)
		*vel = components.Velocity(v)
		f.positions = append(f.positions, p)
	}
}

// bounce clamps p into [m, dim-m] per axis and reflects the crossing component.
func (f *Field) bounce(p, v r2.Vec) (r2.Vec, r2.Vec) {
	mx := insetMargin(f.params.Margin, f.bounds.Width)
	my := insetMargin(f.params.Margin, f.bounds.Height)

	if p.X < mx {
		p.X = mx
		v.X *= BounceDamping
	}
	if p.X > f.bounds.Width-mx {
		p.X = f.bounds.Width - mx
		v.X *= BounceDamping
	}
	if p.Y < my {
		p.Y = my
		v.Y *= BounceDamping
	}
	if p.Y > f.bounds.Height-my {
		p.Y = f.bounds.Height - my
		v.Y *= BounceDamping
	}
	return p, v
}

// wrap teleports p to the opposite edge on each axis it left.
func (f *Field) wrap(p r2.Vec) r2.Vec {
	p.X = wrapCoord(p.X, f.bounds.Width)
	p.Y = wrapCoord(p.Y, f.bounds.Height)
	return p
}

// clampSpeed rescales v so that |v| <= maxSpeed. maxSpeed <= 0 disables the clamp.
func clampSpeed(v r2.Vec, maxSpeed float64) r2.Vec {
	if maxSpeed <= 0 {
		return v
	}
	speed := r2.Norm(v)
	if speed > maxSpeed {
		return r2.Scale(maxSpeed/speed, v)
	}
	return v
}

// wrapCoord maps x into [0, dim).
func wrapCoord(x, dim float64) float64 {
	if dim <= 0 {
		return 0
	}
	if x >= 0 && x < dim {
		return x
	}
	x = math.Mod(x, dim)
	if x < 0 {
		x += dim
	}
	// -tiny + dim rounds to dim
	if x >= dim {
		x = 0
	}
	return x
}

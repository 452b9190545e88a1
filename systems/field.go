// Package systems contains the particle field and the connection graph that
// drive the animated background.
package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/components"
)

// Bounds represents the drawable area in surface pixels.
type Bounds struct {
	Width, Height float64
}

// Area returns Width*Height.
func (b Bounds) Area() float64 {
	return b.Width * b.Height
}

// FieldParams configures population size and motion.
type FieldParams struct {
	Density         float64  // Area per particle
	Margin          float64  // Inset margin for spawning and bouncing
	Boundary        Boundary // Edge policy
	InitialVelocity float64  // Velocity components drawn from [-v, v]
	MaxSpeed        float64  // 0 = unlimited
	Drift           float64  // Span of the per-frame velocity perturbation, 0 = off
}

// ParticleCount returns floor(area / density), or 0 for degenerate input.
func ParticleCount(b Bounds, density float64) int {
	if density <= 0 || b.Width <= 0 || b.Height <= 0 {
		return 0
	}
	return int(math.Floor(b.Area() / density))
}

// Field owns a population of moving particles inside bounds.
// Particles live in an ECS world; a resize throws the world away and builds
// a new one, so no particle identity survives it.
type Field struct {
	params FieldParams
	bounds Bounds
	rng    *rand.Rand

	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Velocity]
	filter *ecs.Filter2[components.Position, components.Velocity]
	count  int

	// Positions in query order, refreshed by populate and Step.
	positions []r2.Vec
}

// NewField creates a field and populates it for the given bounds.
func NewField(params FieldParams, bounds Bounds, rng *rand.Rand) *Field {
	f := &Field{
		params: params,
		rng:    rng,
	}
	f.Resize(bounds)
	return f
}

// Resize discards every particle and repopulates for the new bounds.
func (f *Field) Resize(bounds Bounds) {
	f.bounds = bounds
	f.populate()
}

// populate builds a fresh world with ParticleCount particles.
func (f *Field) populate() {
	f.world = ecs.NewWorld()
	f.mapper = ecs.NewMap2[components.Position, components.Velocity](f.world)
	f.filter = ecs.NewFilter2[components.Position, components.Velocity](f.world)

	f.count = ParticleCount(f.bounds, f.params.Density)
	f.positions = make([]r2.Vec, 0, f.count)

	mx := insetMargin(f.params.Margin, f.bounds.Width)
	my := insetMargin(f.params.Margin, f.bounds.Height)
	spanX := f.bounds.Width - 2*mx
	spanY := f.bounds.Height - 2*my
	iv := f.params.InitialVelocity

	for i := 0; i < f.count; i++ {
		pos := components.Position{
			X: mx + f.rng.Float64()*spanX,
			Y: my + f.rng.Float64()*spanY,
		}
		vel := components.Velocity{
			X: (f.rng.Float64()*2 - 1) * iv,
			Y: (f.rng.Float64()*2 - 1) * iv,
		}
		f.mapper.NewEntity(&pos, &vel)
		f.positions = append(f.positions, pos.Vec())
	}
}

// Bounds returns the current bounds.
func (f *Field) Bounds() Bounds {
	return f.bounds
}

// Params returns the field parameters.
func (f *Field) Params() FieldParams {
	return f.params
}

// Count returns the number of particles.
func (f *Field) Count() int {
	return f.count
}

// Positions returns the particle positions in field order.
// The slice is owned by the field and is overwritten by the next Step or Resize.
func (f *Field) Positions() []r2.Vec {
	return f.positions
}

// Snapshot returns a fresh copy of the current positions.
func (f *Field) Snapshot() []r2.Vec {
	out := make([]r2.Vec, len(f.positions))
	copy(out, f.positions)
	return out
}

// Particles returns detached copies of every particle in field order.
func (f *Field) Particles() []components.Particle {
	out := make([]components.Particle, 0, f.count)
	query := f.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		out = append(out, components.Particle{Pos: pos.Vec(), Vel: vel.Vec()})
	}
	return out
}

// insetMargin shrinks the margin so that [m, dim-m] is never empty.
func insetMargin(margin, dim float64) float64 {
	if margin < 0 {
		return 0
	}
	if half := dim / 2; margin > half {
		return half
	}
	return margin
}

package systems

import "gonum.org/v1/gonum/spatial/r2"

// Proximity tracks the latest pointer position and maps distance to opacity.
// Inside Radius the opacity falls linearly from Near (at the pointer) to Far
// (at the radius); outside it, and before any pointer was seen, Far applies.
type Proximity struct {
	Radius float64
	Near   float64
	Far    float64

	pointer r2.Vec
	active  bool
}

// NewProximity creates a proximity tracker with no pointer yet.
func NewProximity(radius, near, far float64) *Proximity {
	return &Proximity{Radius: radius, Near: near, Far: far}
}

// Set records the pointer position in surface coordinates.
func (p *Proximity) Set(pt r2.Vec) {
	p.pointer = pt
	p.active = true
}

// Clear forgets the pointer, e.g. when it leaves the surface.
func (p *Proximity) Clear() {
	p.active = false
}

// Pointer returns the last pointer position and whether one is known.
func (p *Proximity) Pointer() (r2.Vec, bool) {
	return p.pointer, p.active
}

// Distance returns the distance from pt to the pointer, or +Inf without a pointer.
func (p *Proximity) Distance(pt r2.Vec) float64 {
	if !p.active {
		return inf
	}
	return r2.Norm(r2.Sub(pt, p.pointer))
}

// Opacity returns the render opacity for a point at pt.
func (p *Proximity) Opacity(pt r2.Vec) float64 {
	return p.OpacityAt(p.Distance(pt))
}

// OpacityAt returns the render opacity for a point d pixels from the pointer.
func (p *Proximity) OpacityAt(d float64) float64 {
	if p.Radius <= 0 || d >= p.Radius {
		return p.Far
	}
	return p.Far + (p.Near-p.Far)*(1-d/p.Radius)
}

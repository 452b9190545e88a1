package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestProximityOpacity(t *testing.T) {
	prox := NewProximity(200, 0.8, 0.2)

	// No pointer seen yet
	if got := prox.Opacity(r2.Vec{X: 0, Y: 0}); got != 0.2 {
		t.Errorf("opacity without pointer = %v, want 0.2", got)
	}

	prox.Set(r2.Vec{X: 100, Y: 100})

	tests := []struct {
		name string
		pt   r2.Vec
		want float64
	}{
		{"on pointer", r2.Vec{X: 100, Y: 100}, 0.8},
		{"half radius", r2.Vec{X: 200, Y: 100}, 0.5},
		{"at radius", r2.Vec{X: 300, Y: 100}, 0.2},
		{"outside", r2.Vec{X: 600, Y: 600}, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prox.Opacity(tt.pt); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Opacity(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}

	prox.Clear()
	if _, ok := prox.Pointer(); ok {
		t.Error("Clear should forget the pointer")
	}
	if got := prox.Opacity(r2.Vec{X: 100, Y: 100}); got != 0.2 {
		t.Errorf("opacity after Clear = %v, want 0.2", got)
	}
}

func TestProximityMonotonic(t *testing.T) {
	prox := NewProximity(150, 0.9, 0.1)
	prox.Set(r2.Vec{})

	prev := math.Inf(1)
	for d := 0.0; d <= 200; d += 5 {
		got := prox.OpacityAt(d)
		if got > prev {
			t.Fatalf("opacity increased with distance at d=%v: %v > %v", d, got, prev)
		}
		if got < 0.1 || got > 0.9 {
			t.Fatalf("opacity %v outside [far, near] at d=%v", got, d)
		}
		prev = got
	}
}

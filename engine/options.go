package engine

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/renderer"
	"github.com/catyyy/hp-catyyy/systems"
	"github.com/catyyy/hp-catyyy/telemetry"
)

// PointerOptions configures pointer-proximity highlighting.
type PointerOptions struct {
	Enabled bool
	Radius  float64
	Near    float64 // Opacity at the pointer
	Far     float64 // Opacity at and beyond Radius
}

// Options configures an Engine.
type Options struct {
	Field   systems.FieldParams
	Graph   systems.GraphParams
	Pointer PointerOptions
	Style   renderer.Style

	// Snapshot enables per-frame position publishing to OnSnapshot.
	// The slice handed over is a fresh copy owned by the receiver.
	Snapshot   bool
	OnSnapshot func(points []r2.Vec)

	// Rand seeds particle placement and drift. Defaults to a time-seeded source.
	Rand *rand.Rand

	// Optional telemetry. OnStats runs whenever the collector flushes a window.
	Collector *telemetry.Collector
	Perf      *telemetry.PerfCollector
	OnStats   func(telemetry.WindowStats, telemetry.PerfStats)
}

// OptionsFromConfig builds engine options from a variant.
func OptionsFromConfig(v config.VariantConfig) (Options, error) {
	boundary, err := systems.ParseBoundary(v.Field.Boundary)
	if err != nil {
		return Options{}, fmt.Errorf("field: %w", err)
	}
	topology, err := systems.ParseTopology(v.Graph.Topology)
	if err != nil {
		return Options{}, fmt.Errorf("graph: %w", err)
	}
	style, err := renderer.StyleFromConfig(v)
	if err != nil {
		return Options{}, err
	}
	if v.Field.Density <= 0 {
		return Options{}, fmt.Errorf("field: density must be positive, got %v", v.Field.Density)
	}
	if v.Graph.MaxDistance <= 0 {
		return Options{}, fmt.Errorf("graph: max_distance must be positive, got %v", v.Graph.MaxDistance)
	}

	return Options{
		Field: systems.FieldParams{
			Density:         v.Field.Density,
			Margin:          v.Field.Margin,
			Boundary:        boundary,
			InitialVelocity: v.Field.InitialVelocity,
			MaxSpeed:        v.Field.MaxSpeed,
			Drift:           v.Field.Drift,
		},
		Graph: systems.GraphParams{
			Topology:    topology,
			MaxDistance: v.Graph.MaxDistance,
			K:           v.Graph.K,
			BaseOpacity: v.Graph.BaseOpacity,
			MinOpacity:  v.Graph.MinOpacity,
			MaxOpacity:  v.Graph.MaxOpacity,
		},
		Pointer: PointerOptions{
			Enabled: v.Pointer.Enabled,
			Radius:  v.Pointer.Radius,
			Near:    v.Pointer.NearOpacity,
			Far:     v.Pointer.FarOpacity,
		},
		Style:    style,
		Snapshot: v.Snapshot.Enabled,
	}, nil
}

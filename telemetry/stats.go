// Package telemetry aggregates per-frame engine statistics into windows and
// writes them out as logs and CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStart uint64 `csv:"-"`
	WindowEnd   uint64 `csv:"window_end"`
	Frames      int    `csv:"frames"`

	// Population at window end
	Particles int `csv:"particles"`

	// Connections per frame
	ConnectionsMean float64 `csv:"connections_mean"`
	ConnectionsP10  float64 `csv:"connections_p10"`
	ConnectionsP50  float64 `csv:"connections_p50"`
	ConnectionsP90  float64 `csv:"connections_p90"`

	MeanSpeed   float64 `csv:"mean_speed"`
	MeanOpacity float64 `csv:"mean_opacity"`

	// Host events during window
	Resizes       int `csv:"resizes"`
	PointerEvents int `csv:"pointer_events"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeStats calculates mean and percentiles.
func ComputeStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStart),
		slog.Uint64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("connections_mean", s.ConnectionsMean),
		slog.Float64("connections_p10", s.ConnectionsP10),
		slog.Float64("connections_p50", s.ConnectionsP50),
		slog.Float64("connections_p90", s.ConnectionsP90),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("mean_opacity", s.MeanOpacity),
		slog.Int("resizes", s.Resizes),
		slog.Int("pointer_events", s.PointerEvents),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEnd,
		"frames", s.Frames,
		"particles", s.Particles,
		"connections_mean", s.ConnectionsMean,
		"connections_p50", s.ConnectionsP50,
		"mean_speed", s.MeanSpeed,
		"mean_opacity", s.MeanOpacity,
		"resizes", s.Resizes,
		"pointer_events", s.PointerEvents,
	)
}

package engine

import (
	"gonum.org/v1/gonum/stat"

	"github.com/catyyy/hp-catyyy/telemetry"
)

// recordTelemetry samples the frame and flushes the stats window when due.
func (e *Engine) recordTelemetry() {
	c := e.opts.Collector
	if c == nil {
		return
	}
	c.Record(e.sample())
	if !c.ShouldFlush(e.frames) {
		return
	}

	stats := c.Flush(e.frames)
	var perf telemetry.PerfStats
	if e.opts.Perf != nil {
		perf = e.opts.Perf.Stats()
	}
	if e.opts.OnStats != nil {
		e.opts.OnStats(stats, perf)
	}
}

func (e *Engine) sample() telemetry.FrameSample {
	particles := e.field.Particles()
	speeds := make([]float64, len(particles))
	for i, p := range particles {
		speeds[i] = p.Speed()
	}

	opacities := make([]float64, 0, e.graph.Len())
	for _, edge := range e.graph.Edges {
		opacities = append(opacities, edge.Opacity)
	}
	for _, path := range e.graph.Paths {
		opacities = append(opacities, path.Opacity)
	}

	s := telemetry.FrameSample{
		Particles:   len(particles),
		Connections: e.graph.Len(),
	}
	if len(speeds) > 0 {
		s.MeanSpeed = stat.Mean(speeds, nil)
	}
	if len(opacities) > 0 {
		s.MeanOpacity = stat.Mean(opacities, nil)
	}
	return s
}

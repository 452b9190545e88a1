package telemetry

// FrameSample is what the engine measures for one rendered frame.
type FrameSample struct {
	Particles   int
	Connections int     // Edges or paths, depending on topology
	MeanSpeed   float64 // Mean particle speed in pixels per frame
	MeanOpacity float64 // Mean connection opacity, 0 without connections
}

// Collector accumulates frame samples within fixed-size windows and produces
// WindowStats.
type Collector struct {
	windowFrames uint64

	// Current window tracking
	windowStart uint64

	connections []float64
	speeds      []float64
	opacities   []float64
	particles   int

	resizes       int
	pointerEvents int
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{
		windowFrames: uint64(windowFrames),
		connections:  make([]float64, 0, windowFrames),
		speeds:       make([]float64, 0, windowFrames),
		opacities:    make([]float64, 0, windowFrames),
	}
}

// Record adds one frame sample to the current window.
func (c *Collector) Record(s FrameSample) {
	c.particles = s.Particles
	c.connections = append(c.connections, float64(s.Connections))
	c.speeds = append(c.speeds, s.MeanSpeed)
	c.opacities = append(c.opacities, s.MeanOpacity)
}

// RecordResize records a viewport resize (a full repopulation).
func (c *Collector) RecordResize() {
	c.resizes++
}

// RecordPointer records a pointer notification.
func (c *Collector) RecordPointer() {
	c.pointerEvents++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame uint64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(frame uint64) WindowStats {
	connMean, connP10, connP50, connP90 := ComputeStats(c.connections)
	speedMean, _, _, _ := ComputeStats(c.speeds)
	opacityMean, _, _, _ := ComputeStats(c.opacities)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   frame,
		Frames:      len(c.connections),

		Particles: c.particles,

		ConnectionsMean: connMean,
		ConnectionsP10:  connP10,
		ConnectionsP50:  connP50,
		ConnectionsP90:  connP90,

		MeanSpeed:   speedMean,
		MeanOpacity: opacityMean,

		Resizes:       c.resizes,
		PointerEvents: c.pointerEvents,
	}

	// Reset for next window
	c.windowStart = frame
	c.connections = c.connections[:0]
	c.speeds = c.speeds[:0]
	c.opacities = c.opacities[:0]
	c.resizes = 0
	c.pointerEvents = 0

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() uint64 {
	return c.windowFrames
}

package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of an animation frame.
type Phase uint8

const (
	PhaseClear Phase = iota
	PhaseStep
	PhaseGraph
	PhaseDraw
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{"clear", "step", "graph", "draw", "telemetry"}

// String returns the phase name used in logs and CSV columns.
func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// PhaseDurations holds one duration per phase.
type PhaseDurations [phaseCount]time.Duration

// PerfSample is the timing of one frame.
type PerfSample struct {
	Work   time.Duration
	Phases PhaseDurations
}

// PerfCollector times frame phases over a ring of the last windowSize frames.
type PerfCollector struct {
	now func() time.Time

	ring  []PerfSample
	next  int
	count int

	cur        PerfSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Wall time between consecutive BeginFrame calls
	lastBegin time.Time
	interval  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollector(windowSize, time.Now)
}

func newPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{now: now, ring: make([]PerfSample, windowSize)}
}

// BeginFrame starts timing a frame.
func (p *PerfCollector) BeginFrame() {
	now := p.now()
	if !p.lastBegin.IsZero() {
		p.interval = now.Sub(p.lastBegin)
	}
	p.lastBegin = now
	p.frameStart = now
	p.cur = PerfSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndFrame closes the last phase and stores the sample.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	p.closePhase(now)
	p.cur.Work = now.Sub(p.frameStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase < phaseCount {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// PerfStats aggregates the samples in the window.
type PerfStats struct {
	AvgWork time.Duration
	P90Work time.Duration
	MaxWork time.Duration

	PhaseAvg PhaseDurations
	PhasePct [phaseCount]float64 // Share of AvgWork, in percent

	// Frames per second the work alone would allow
	Capacity float64

	// Measured frame cadence
	FrameInterval time.Duration
	FPS           float64
}

// Stats computes statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{FrameInterval: p.interval}
	if p.interval > 0 {
		stats.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.count == 0 {
		return stats
	}

	work := make([]float64, p.count)
	var total time.Duration
	var phaseSum PhaseDurations
	for i, s := range p.ring[:p.count] {
		work[i] = float64(s.Work)
		total += s.Work
		if s.Work > stats.MaxWork {
			stats.MaxWork = s.Work
		}
		for ph, d := range s.Phases {
			phaseSum[ph] += d
		}
	}
	n := time.Duration(p.count)
	stats.AvgWork = total / n

	_, _, _, p90 := ComputeStats(work)
	stats.P90Work = time.Duration(p90)

	for ph, sum := range phaseSum {
		stats.PhaseAvg[ph] = sum / n
		if stats.AvgWork > 0 {
			stats.PhasePct[ph] = float64(stats.PhaseAvg[ph]) / float64(stats.AvgWork) * 100
		}
	}
	if stats.AvgWork > 0 {
		stats.Capacity = float64(time.Second) / float64(stats.AvgWork)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_work_us", s.AvgWork.Microseconds()),
		slog.Int64("p90_work_us", s.P90Work.Microseconds()),
		slog.Int64("max_work_us", s.MaxWork.Microseconds()),
		slog.Int("capacity_fps", int(s.Capacity)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph, pct := range s.PhasePct {
		// Skip phases below 0.1% of the frame
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgWorkUS    int64   `csv:"avg_work_us"`
	P90WorkUS    int64   `csv:"p90_work_us"`
	MaxWorkUS    int64   `csv:"max_work_us"`
	Capacity     float64 `csv:"capacity_fps"`
	FPS          float64 `csv:"fps"`
	ClearPct     float64 `csv:"clear_pct"`
	StepPct      float64 `csv:"step_pct"`
	GraphPct     float64 `csv:"graph_pct"`
	DrawPct      float64 `csv:"draw_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgWorkUS:    s.AvgWork.Microseconds(),
		P90WorkUS:    s.P90Work.Microseconds(),
		MaxWorkUS:    s.MaxWork.Microseconds(),
		Capacity:     s.Capacity,
		FPS:          s.FPS,
		ClearPct:     s.PhasePct[PhaseClear],
		StepPct:      s.PhasePct[PhaseStep],
		GraphPct:     s.PhasePct[PhaseGraph],
		DrawPct:      s.PhasePct[PhaseDraw],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}

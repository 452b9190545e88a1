package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/headless"
	"github.com/catyyy/hp-catyyy/loop"
	"github.com/catyyy/hp-catyyy/telemetry"
	"github.com/catyyy/hp-catyyy/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Engine variant to start with (empty = use config)")
	headlessMode := flag.Bool("headless", false, "Render frames in software without a window")
	maxFrames := flag.Uint64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in frames (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	frameDir := flag.String("frame-dir", "", "Headless: directory for PNG frames")
	frameEvery := flag.Int("frame-every", 60, "Headless: save every Nth frame")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for position snapshot files")
	snapshotEvery := flag.Int("snapshot-every", 60, "Save every Nth position snapshot")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *variant != "" {
		if _, ok := cfg.Variants[*variant]; !ok {
			slog.Error("unknown variant", "variant", *variant)
			os.Exit(1)
		}
		cfg.Variant = *variant
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	window := cfg.Telemetry.WindowFrames
	if *statsWindow > 0 {
		window = *statsWindow
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	var collector *telemetry.Collector
	var perf *telemetry.PerfCollector
	if *logStats || output != nil {
		collector = telemetry.NewCollector(window)
		perf = telemetry.NewPerfCollector(window)
	}
	onStats := func(stats telemetry.WindowStats, p telemetry.PerfStats) {
		if *logStats {
			stats.LogStats()
			p.LogStats()
		}
		if err := output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := output.WritePerf(p, stats.WindowEnd); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	snapshots := telemetry.NewSnapshotWriter(*snapshotDir, *snapshotEvery, cfg.Variant, rngSeed)

	if *headlessMode {
		runHeadless(cfg, headless.Options{
			Seed:       rngSeed,
			FrameDir:   *frameDir,
			FrameEvery: *frameEvery,
			Collector:  collector,
			Perf:       perf,
			OnStats:    onStats,
		}, snapshots, *maxFrames)
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	l := loop.New(time.Now())
	pageOpts := ui.PageOptions{
		Seed:      rngSeed,
		Collector: collector,
		Perf:      perf,
		OnStats:   onStats,
	}
	if snapshots != nil {
		pageOpts.OnSnapshot = func(points []r2.Vec) {
			w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
			if err := snapshots.Publish(w, h, points); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			}
		}
	}
	page, err := ui.NewPage(cfg, l, pageOpts)
	if err != nil {
		slog.Error("failed to start page", "error", err)
		os.Exit(1)
	}
	defer page.Close()

	slog.Info("starting", "variant", cfg.Variant, "seed", rngSeed)
	for !rl.WindowShouldClose() {
		l.Advance(time.Duration(rl.GetFrameTime() * float32(time.Second)))
		page.Update()
		page.Draw()

		if *maxFrames > 0 && page.Engine().Frames() >= *maxFrames {
			break
		}
	}
}

func runHeadless(cfg *config.Config, opts headless.Options, snapshots *telemetry.SnapshotWriter, maxFrames uint64) {
	if snapshots != nil {
		opts.OnSnapshot = func(points []r2.Vec) {
			if err := snapshots.Publish(float64(cfg.Screen.Width), float64(cfg.Screen.Height), points); err != nil {
				slog.Error("failed to save snapshot", "error", err)
			}
		}
	}

	r, err := headless.New(cfg, opts)
	if err != nil {
		slog.Error("failed to start headless run", "error", err)
		os.Exit(1)
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless run",
		"variant", cfg.Variant,
		"seed", opts.Seed,
		"max_frames", maxFrames,
		"frame_dir", opts.FrameDir,
		"particles", r.Engine().Field().Count(),
	)
	if err := r.Run(ctx, maxFrames); err != nil && err != context.Canceled {
		slog.Error("headless run failed", "error", err)
		return
	}
	slog.Info("headless run finished", "frames", r.Engine().Frames(), "png_frames", r.Saved(), "snapshots", snapshots.Saved())
}

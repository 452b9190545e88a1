// Variant tuning tool - runs the background engine with sliders for its
// parameters.
//
// Usage: go run ./cmd/tune [-variant constellation]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/engine"
	"github.com/catyyy/hp-catyyy/loop"
	"github.com/catyyy/hp-catyyy/ui"
)

const (
	windowWidth  = 1280
	windowHeight = 800
	panelWidth   = 320
)

// slider is one tunable float field of the variant.
type slider struct {
	label    string
	min, max float32
	format   string
	value    func(v *config.VariantConfig) *float64
}

var sliders = []slider{
	{"Density (area per particle)", 2000, 60000, "%.0f", func(v *config.VariantConfig) *float64 { return &v.Field.Density }},
	{"Max distance", 50, 600, "%.0f", func(v *config.VariantConfig) *float64 { return &v.Graph.MaxDistance }},
	{"Initial velocity", 0, 3, "%.2f", func(v *config.VariantConfig) *float64 { return &v.Field.InitialVelocity }},
	{"Max speed (0 = off)", 0, 3, "%.2f", func(v *config.VariantConfig) *float64 { return &v.Field.MaxSpeed }},
	{"Drift", 0, 0.05, "%.3f", func(v *config.VariantConfig) *float64 { return &v.Field.Drift }},
	{"Margin", 0, 200, "%.0f", func(v *config.VariantConfig) *float64 { return &v.Field.Margin }},
	{"Line width", 0.5, 4, "%.1f", func(v *config.VariantConfig) *float64 { return &v.Graph.LineWidth }},
	{"Pointer radius", 50, 400, "%.0f", func(v *config.VariantConfig) *float64 { return &v.Pointer.Radius }},
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	variant := flag.String("variant", "", "Variant to tune (empty = use config)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	name := cfg.Variant
	if *variant != "" {
		name = *variant
	}
	defaults, ok := cfg.Variants[name]
	if !ok {
		slog.Error("unknown variant", "variant", name)
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(windowWidth, windowHeight, "Variant Tuning: "+name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	l := loop.New(time.Now())
	input := ui.NewInput(rl.GetScreenWidth(), rl.GetScreenHeight())
	params := defaults
	seed := int64(1)

	e, err := start(l, params, seed)
	if err != nil {
		slog.Error("failed to start engine", "error", err)
		os.Exit(1)
	}
	defer func() { e.Dispose() }()

	for !rl.WindowShouldClose() {
		l.Advance(time.Duration(rl.GetFrameTime() * float32(time.Second)))
		input.Poll(l)

		rl.BeginDrawing()
		l.Frame()

		panelX := float32(rl.GetScreenWidth() - panelWidth)
		rl.DrawRectangle(int32(panelX), 0, panelWidth, int32(rl.GetScreenHeight()), rl.Fade(rl.RayWhite, 0.92))
		panelX += 15
		panelY := float32(10)

		rl.DrawText("Variant: "+name, int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 30
		rl.DrawText(fmt.Sprintf("Particles: %d  Connections: %d  FPS: %d",
			e.Field().Count(), e.Graph().Len(), rl.GetFPS()), int32(panelX), int32(panelY), 12, rl.Gray)
		panelY += 25

		changed := false
		for _, s := range sliders {
			p := s.value(&params)
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			next := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 100, Height: 20},
				"", "",
				float32(*p), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf(s.format, *p), int32(panelX+panelWidth-90), int32(panelY+2), 16, rl.DarkGray)
			if float64(next) != float64(float32(*p)) {
				*p = float64(next)
				changed = true
			}
			panelY += 35
		}

		// K neighbours
		rl.DrawText("K neighbours (top_k)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		k := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 100, Height: 20},
			"", "",
			float32(params.Graph.K), 1, 10,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Graph.K), int32(panelX+panelWidth-90), int32(panelY+2), 16, rl.DarkGray)
		if int(k) != params.Graph.K {
			params.Graph.K = int(k)
			changed = true
		}
		panelY += 40

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, "Topology: "+params.Graph.Topology) {
			params.Graph.Topology = toggle(params.Graph.Topology, "all_pairs", "top_k")
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: panelY, Width: 140, Height: 30}, "Boundary: "+params.Field.Boundary) {
			params.Field.Boundary = toggle(params.Field.Boundary, "wrap", "bounce")
			changed = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, "Reseed") {
			seed = rand.Int63()
			changed = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: panelY, Width: 140, Height: 30}, "Reset All") {
			params = defaults
			changed = true
		}
		panelY += 50

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(panelY), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			copyYAML(name, params)
		}

		rl.EndDrawing()

		if changed {
			next, err := start(l, params, seed)
			if err != nil {
				slog.Warn("rejected parameters", "error", err)
				continue
			}
			e.Dispose()
			e = next
		}
	}
}

// start builds a fresh engine. The caller disposes the previous one.
func start(l *loop.Loop, v config.VariantConfig, seed int64) (*engine.Engine, error) {
	opts, err := engine.OptionsFromConfig(v)
	if err != nil {
		return nil, err
	}
	opts.Rand = rand.New(rand.NewSource(seed))
	return engine.New(ui.WindowCanvas{}, l, opts)
}

func toggle(cur, a, b string) string {
	if cur == a {
		return b
	}
	return a
}

func copyYAML(name string, v config.VariantConfig) {
	data, err := yaml.Marshal(map[string]map[string]config.VariantConfig{
		"variants": {name: v},
	})
	if err != nil {
		slog.Error("failed to marshal variant", "error", err)
		return
	}
	rl.SetClipboardText(string(data))
	slog.Info("variant copied to clipboard", "variant", name)
}

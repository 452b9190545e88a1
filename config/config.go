// Package config provides configuration loading and access for the background
// engine and the text scrambler.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig             `yaml:"screen"`
	Variant   string                   `yaml:"variant"`
	Variants  map[string]VariantConfig `yaml:"variants"`
	Scrambler ScramblerConfig          `yaml:"scrambler"`
	Titles    TitlesConfig             `yaml:"titles"`
	Nav       NavConfig                `yaml:"nav"`
	Cards     []CardConfig             `yaml:"cards"`
	Telemetry TelemetryConfig          `yaml:"telemetry"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// VariantConfig describes one parameterisation of the background engine.
// "web" is the dense primary page look, "constellation" the sparse about page.
type VariantConfig struct {
	Background string         `yaml:"background"` // hex colour used to clear the surface
	Field      FieldConfig    `yaml:"field"`
	Graph      GraphConfig    `yaml:"graph"`
	Pointer    PointerConfig  `yaml:"pointer"`
	Points     PointsConfig   `yaml:"points"`
	Snapshot   SnapshotConfig `yaml:"snapshot"`

	// Page overlays drawn above the background
	ShowTitle bool `yaml:"show_title"` // Rotating headline
	ShowCards bool `yaml:"show_cards"` // Floating cards
}

// FieldConfig holds particle population and motion parameters.
type FieldConfig struct {
	Density         float64 `yaml:"density"`          // Area per particle: count = floor(w*h / density)
	Margin          float64 `yaml:"margin"`           // Inset margin for spawning and bouncing
	Boundary        string  `yaml:"boundary"`         // "wrap" or "bounce"
	InitialVelocity float64 `yaml:"initial_velocity"` // Velocity components drawn from [-v, v]
	MaxSpeed        float64 `yaml:"max_speed"`        // 0 = unlimited
	Drift           float64 `yaml:"drift"`            // Per-frame random velocity perturbation span, 0 = off
}

// GraphConfig holds connection topology parameters.
type GraphConfig struct {
	Topology    string  `yaml:"topology"`     // "all_pairs" or "top_k"
	MaxDistance float64 `yaml:"max_distance"` // Connection threshold in pixels
	K           int     `yaml:"k"`            // Neighbours per particle for top_k
	BaseOpacity float64 `yaml:"base_opacity"` // all_pairs opacity without pointer
	MinOpacity  float64 `yaml:"min_opacity"`
	MaxOpacity  float64 `yaml:"max_opacity"`
	LineWidth   float64 `yaml:"line_width"`
	Color       string  `yaml:"color"`
}

// PointerConfig holds pointer-proximity highlighting parameters.
type PointerConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Radius      float64 `yaml:"radius"`
	NearOpacity float64 `yaml:"near_opacity"`
	FarOpacity  float64 `yaml:"far_opacity"`
}

// PointsConfig holds particle dot rendering parameters.
type PointsConfig struct {
	Color       string  `yaml:"color"`
	Radius      float64 `yaml:"radius"`
	Opacity     float64 `yaml:"opacity"`
	HaloRadius  float64 `yaml:"halo_radius"`
	HaloOpacity float64 `yaml:"halo_opacity"`
}

// SnapshotConfig controls per-frame position publishing.
type SnapshotConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ScramblerConfig holds text scrambler timing.
type ScramblerConfig struct {
	HoverMs     int `yaml:"hover_ms"`      // Navigation link hover scramble
	CardMs      int `yaml:"card_ms"`       // Floating card title scramble
	IntroStepMs int `yaml:"intro_step_ms"` // Stagger between navigation intro scrambles
}

// TitlesConfig holds the rotating headline.
type TitlesConfig struct {
	Items      []string `yaml:"items"`
	IntervalMs int      `yaml:"interval_ms"`
	DurationMs int      `yaml:"duration_ms"`
}

// NavConfig holds the navigation labels.
type NavConfig struct {
	Links []NavLink `yaml:"links"`
}

// NavLink is one navigation entry. Selecting it switches to Variant; an
// empty Variant makes the link decorative.
type NavLink struct {
	Label   string `yaml:"label"`
	Variant string `yaml:"variant"`
}

// CardConfig places a floating card with a scrambled title.
// Position is a fraction of the viewport.
type CardConfig struct {
	Title string   `yaml:"title"`
	Lines []string `yaml:"lines"`
	Top   float64  `yaml:"top"`
	Left  float64  `yaml:"left"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowFrames int `yaml:"window_frames"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Variants are merged per key so a user file can override a single field
		// of one variant without restating the rest.
		defaults := make(map[string]VariantConfig, len(cfg.Variants))
		for name, v := range cfg.Variants {
			defaults[name] = v
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		cfg.Variants = mergeVariants(defaults, data)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeVariants re-decodes each user variant on top of its default.
func mergeVariants(defaults map[string]VariantConfig, data []byte) map[string]VariantConfig {
	var raw struct {
		Variants map[string]yaml.Node `yaml:"variants"`
	}
	merged := defaults
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return merged
	}
	for name, node := range raw.Variants {
		v := merged[name]
		if err := node.Decode(&v); err == nil {
			merged[name] = v
		}
	}
	return merged
}

// Validate checks values that would otherwise break the engine invariants.
func (c *Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if _, ok := c.Variants[c.Variant]; !ok {
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	for _, link := range c.Nav.Links {
		if link.Variant == "" {
			continue
		}
		if _, ok := c.Variants[link.Variant]; !ok {
			return fmt.Errorf("nav link %q: unknown variant %q", link.Label, link.Variant)
		}
	}
	for name, v := range c.Variants {
		if v.Field.Density <= 0 {
			return fmt.Errorf("variant %s: density must be positive, got %v", name, v.Field.Density)
		}
		if v.Graph.MaxDistance <= 0 {
			return fmt.Errorf("variant %s: max_distance must be positive, got %v", name, v.Graph.MaxDistance)
		}
		if v.Graph.MinOpacity > v.Graph.MaxOpacity {
			return fmt.Errorf("variant %s: min_opacity %v exceeds max_opacity %v", name, v.Graph.MinOpacity, v.Graph.MaxOpacity)
		}
	}
	return nil
}

// Active returns the selected variant.
func (c *Config) Active() VariantConfig {
	return c.Variants[c.Variant]
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

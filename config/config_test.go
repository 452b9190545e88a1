package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Variant != "web" {
		t.Errorf("default variant = %q, want web", cfg.Variant)
	}

	web := cfg.Variants["web"]
	if web.Field.Density != 20000 {
		t.Errorf("web density = %v, want 20000", web.Field.Density)
	}
	if web.Graph.Topology != "all_pairs" || web.Field.Boundary != "wrap" {
		t.Errorf("web = %s/%s, want all_pairs/wrap", web.Graph.Topology, web.Field.Boundary)
	}

	con := cfg.Variants["constellation"]
	if con.Field.Density != 25000 || con.Field.Margin != 50 {
		t.Errorf("constellation density/margin = %v/%v, want 25000/50", con.Field.Density, con.Field.Margin)
	}
	if con.Graph.K != 4 || con.Graph.MaxDistance != 400 {
		t.Errorf("constellation k/max_distance = %d/%v, want 4/400", con.Graph.K, con.Graph.MaxDistance)
	}
	if !con.Snapshot.Enabled {
		t.Error("constellation should publish snapshots")
	}

	if len(cfg.Nav.Links) != 3 || cfg.Nav.Links[1].Variant != "constellation" {
		t.Errorf("nav links = %+v", cfg.Nav.Links)
	}
	if !cfg.Variants["web"].ShowTitle || !cfg.Variants["constellation"].ShowCards {
		t.Error("expected title on web and cards on constellation")
	}
	if len(cfg.Titles.Items) != 3 {
		t.Errorf("titles = %d, want 3", len(cfg.Titles.Items))
	}
}

func TestLoadOverridesSingleVariantField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("variant: constellation\nvariants:\n  constellation:\n    graph:\n      max_distance: 300\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	active := cfg.Active()
	if active.Graph.MaxDistance != 300 {
		t.Errorf("max_distance = %v, want 300", active.Graph.MaxDistance)
	}
	// Untouched fields keep their defaults
	if active.Graph.Topology != "top_k" {
		t.Errorf("topology = %q, want top_k", active.Graph.Topology)
	}
	if active.Field.Density != 25000 {
		t.Errorf("density = %v, want 25000", active.Field.Density)
	}
	if cfg.Variants["web"].Graph.MaxDistance != 200 {
		t.Errorf("web variant should be untouched, got max_distance %v", cfg.Variants["web"].Graph.MaxDistance)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown variant", "variant: nope\n"},
		{"zero density", "variants:\n  web:\n    field:\n      density: 0\n"},
		{"inverted opacity", "variants:\n  web:\n    graph:\n      min_opacity: 0.9\n      max_opacity: 0.1\n"},
		{"bad screen", "screen:\n  width: 0\n"},
		{"nav to unknown variant", "nav:\n  links:\n    - label: Blog\n      variant: blog\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if back.Active().Graph.MaxDistance != cfg.Active().Graph.MaxDistance {
		t.Errorf("max_distance changed across roundtrip: %v vs %v",
			back.Active().Graph.MaxDistance, cfg.Active().Graph.MaxDistance)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Error("Cfg() should panic before Init()")
		}
	}()
	Cfg()
}

package renderer

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/catyyy/hp-catyyy/config"
	"github.com/catyyy/hp-catyyy/systems"
)

type stroke struct {
	pts   []r2.Vec
	color color.NRGBA
	width float64
}

type disc struct {
	center r2.Vec
	radius float64
	color  color.NRGBA
}

// recorder is a Surface that records draw calls in order.
type recorder struct {
	w, h    int
	clears  []color.NRGBA
	strokes []stroke
	discs   []disc
	order   []string
}

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Resize(w, h int) error {
	r.w, r.h = w, h
	return nil
}

func (r *recorder) Clear(c color.NRGBA) {
	r.clears = append(r.clears, c)
	r.order = append(r.order, "clear")
}

func (r *recorder) StrokePolyline(pts []r2.Vec, _ bool, c color.NRGBA, width float64) {
	r.strokes = append(r.strokes, stroke{append([]r2.Vec(nil), pts...), c, width})
	r.order = append(r.order, "stroke")
}

func (r *recorder) FillCircle(center r2.Vec, radius float64, c color.NRGBA) {
	r.discs = append(r.discs, disc{center, radius, c})
	r.order = append(r.order, "disc")
}

func testStyle() Style {
	return Style{
		Background:  color.NRGBA{255, 255, 255, 255},
		LineColor:   color.NRGBA{229, 229, 229, 255},
		LineWidth:   2,
		PointColor:  color.NRGBA{0, 0, 0, 255},
		PointRadius: 1.5,
		PointAlpha:  0.6,
		HaloRadius:  3,
		HaloAlpha:   0.1,
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#e5e5e5", color.NRGBA{0xe5, 0xe5, 0xe5, 0xff}, false},
		{"#000", color.NRGBA{0, 0, 0, 0xff}, false},
		{"ffffff80", color.NRGBA{0xff, 0xff, 0xff, 0x80}, false},
		{"#12345", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithOpacity(t *testing.T) {
	c := color.NRGBA{10, 20, 30, 255}
	if got := WithOpacity(c, 0.2).A; got != 51 {
		t.Errorf("alpha at 0.2 = %d, want 51", got)
	}
	if got := WithOpacity(c, 2).A; got != 255 {
		t.Errorf("alpha clamps high: %d", got)
	}
	if got := WithOpacity(c, -1).A; got != 0 {
		t.Errorf("alpha clamps low: %d", got)
	}
}

func TestStyleFromDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for name, v := range cfg.Variants {
		t.Run(name, func(t *testing.T) {
			if _, err := StyleFromConfig(v); err != nil {
				t.Errorf("StyleFromConfig: %v", err)
			}
		})
	}

	v := cfg.Variants["web"]
	v.Graph.Color = "nope"
	if _, err := StyleFromConfig(v); err == nil {
		t.Error("expected error for bad colour")
	}
}

func TestDrawEdgesBeforeDots(t *testing.T) {
	points := []r2.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 300, Y: 0}}
	g := systems.ComputeEdges(points, systems.GraphParams{
		MaxDistance: 50,
		BaseOpacity: 0.2,
		MinOpacity:  0.2,
		MaxOpacity:  0.8,
	}, nil)

	rec := &recorder{w: 400, h: 100}
	r := NewGraphRenderer(testStyle())
	r.Clear(rec)
	r.Draw(rec, points, g, nil)

	want := []string{"clear", "stroke", "disc", "disc", "disc", "disc", "disc", "disc"}
	if len(rec.order) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.order, want)
	}
	for i := range want {
		if rec.order[i] != want[i] {
			t.Fatalf("calls = %v, want %v", rec.order, want)
		}
	}

	s := rec.strokes[0]
	if s.pts[0] != points[0] || s.pts[1] != points[1] {
		t.Errorf("edge drawn between %v, want first two particles", s.pts)
	}
	if s.color.A != 51 || s.width != 2 {
		t.Errorf("edge colour %v width %v", s.color, s.width)
	}
	// halo, then core
	if rec.discs[0].radius != 3 || rec.discs[1].radius != 1.5 {
		t.Errorf("disc radii %v, %v", rec.discs[0].radius, rec.discs[1].radius)
	}
	if rec.discs[1].color.A != 153 {
		t.Errorf("core alpha = %d, want 153", rec.discs[1].color.A)
	}
}

func TestDrawPathVertices(t *testing.T) {
	points := []r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0}}
	g := systems.ComputeEdges(points, systems.GraphParams{
		Topology:    systems.TopologyTopK,
		MaxDistance: 400,
		MinOpacity:  0.2,
		MaxOpacity:  0.35,
	}, nil)

	rec := &recorder{}
	NewGraphRenderer(testStyle()).Draw(rec, points, g, nil)

	if len(rec.strokes) != len(g.Paths) {
		t.Fatalf("strokes = %d, want %d", len(rec.strokes), len(g.Paths))
	}
	first := rec.strokes[0].pts
	// origin, both neighbours, back to the nearest neighbour
	want := []r2.Vec{points[0], points[1], points[2], points[1]}
	if len(first) != len(want) {
		t.Fatalf("path = %v, want %v", first, want)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("path = %v, want %v", first, want)
		}
	}
}

func TestDotsFollowPointer(t *testing.T) {
	style := testStyle()
	style.HaloRadius = 0
	points := []r2.Vec{{X: 0, Y: 0}, {X: 500, Y: 0}}
	prox := systems.NewProximity(200, 0.8, 0.2)
	prox.Set(r2.Vec{})

	rec := &recorder{}
	NewDotRenderer(style).Draw(rec, points, prox)

	if len(rec.discs) != 2 {
		t.Fatalf("discs = %d, want 2 (no halo)", len(rec.discs))
	}
	if got := rec.discs[0].color.A; got != 204 {
		t.Errorf("near alpha = %d, want 204", got)
	}
	if got := rec.discs[1].color.A; got != 51 {
		t.Errorf("far alpha = %d, want 51", got)
	}
}

func TestRasterSurface(t *testing.T) {
	s, err := NewRasterSurface(64, 48)
	if err != nil {
		t.Fatalf("NewRasterSurface: %v", err)
	}
	defer s.Close()

	s.Clear(color.NRGBA{0, 0, 0, 255})
	s.FillCircle(r2.Vec{X: 32, Y: 24}, 10, color.NRGBA{255, 255, 255, 255})
	s.StrokePolyline([]r2.Vec{{X: 0, Y: 2}, {X: 64, Y: 2}}, false, color.NRGBA{255, 0, 0, 255}, 2)
	if err := s.Err(); err != nil {
		t.Fatalf("draw error: %v", err)
	}

	center := color.NRGBAModel.Convert(s.Image().At(32, 24)).(color.NRGBA)
	if center.R < 200 {
		t.Errorf("disc centre = %v, want white", center)
	}
	corner := color.NRGBAModel.Convert(s.Image().At(60, 44)).(color.NRGBA)
	if corner.R > 10 || corner.G > 10 || corner.B > 10 {
		t.Errorf("background = %v, want black", corner)
	}

	if err := s.Resize(32, 32); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := s.Size(); w != 32 || h != 32 {
		t.Errorf("Size = %dx%d, want 32x32", w, h)
	}

	path := filepath.Join(t.TempDir(), "frames", "frame.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("frame not written: %v", err)
	}
}

func TestRasterSurfaceRejectsEmpty(t *testing.T) {
	if _, err := NewRasterSurface(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r2"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot is a published set of particle positions for one frame.
type Snapshot struct {
	Version int    `json:"version"`
	Variant string `json:"variant"`
	Seed    int64  `json:"seed"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Frame  uint64  `json:"frame"`
	Points []Point `json:"points"`
}

// Point is one particle position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointsFrom converts engine positions.
func PointsFrom(points []r2.Vec) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}

// Vecs converts the snapshot points back to vectors.
func (s *Snapshot) Vecs() []r2.Vec {
	out := make([]r2.Vec, len(s.Points))
	for i, p := range s.Points {
		out[i] = r2.Vec{X: p.X, Y: p.Y}
	}
	return out
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot_%06d.json", snapshot.Frame))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snapshot.Version)
	}

	return &snapshot, nil
}

// SnapshotWriter saves every Nth published snapshot to a directory.
type SnapshotWriter struct {
	dir     string
	every   uint64
	variant string
	seed    int64

	frame uint64
	saved int
}

// NewSnapshotWriter creates a writer. Returns nil if dir is empty.
func NewSnapshotWriter(dir string, every int, variant string, seed int64) *SnapshotWriter {
	if dir == "" {
		return nil
	}
	if every < 1 {
		every = 1
	}
	return &SnapshotWriter{dir: dir, every: uint64(every), variant: variant, seed: seed}
}

// Publish receives one frame's positions. Nil-safe.
func (w *SnapshotWriter) Publish(width, height float64, points []r2.Vec) error {
	if w == nil {
		return nil
	}
	w.frame++
	if w.frame%w.every != 0 {
		return nil
	}
	_, err := SaveSnapshot(&Snapshot{
		Version: SnapshotVersion,
		Variant: w.variant,
		Seed:    w.seed,
		Width:   width,
		Height:  height,
		Frame:   w.frame,
		Points:  PointsFrom(points),
	}, w.dir)
	if err != nil {
		return err
	}
	w.saved++
	return nil
}

// Saved returns the number of snapshots written.
func (w *SnapshotWriter) Saved() int {
	if w == nil {
		return 0
	}
	return w.saved
}

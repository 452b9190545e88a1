package systems

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Topology selects how particles are connected.
type Topology uint8

const (
	// TopologyAllPairs links every pair closer than MaxDistance (dense web).
	TopologyAllPairs Topology = iota
	// TopologyTopK draws a closed path through each particle's K nearest
	// neighbours (sparse constellation).
	TopologyTopK
)

// DefaultK is the neighbour count used by the top-K topology.
const DefaultK = 4

// ParseTopology maps a config name to a Topology.
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "all_pairs", "":
		return TopologyAllPairs, nil
	case "top_k":
		return TopologyTopK, nil
	}
	return 0, fmt.Errorf("unknown topology %q", s)
}

// String returns the config name of the topology.
func (t Topology) String() string {
	switch t {
	case TopologyAllPairs:
		return "all_pairs"
	case TopologyTopK:
		return "top_k"
	}
	return "unknown"
}

// GraphParams configures ComputeEdges.
type GraphParams struct {
	Topology    Topology
	MaxDistance float64 // Strict upper bound on connected distances
	K           int     // Neighbour count for TopologyTopK (0 = DefaultK)
	BaseOpacity float64 // All-pairs opacity when no pointer modulation applies
	MinOpacity  float64
	MaxOpacity  float64
}

// Edge is a single line between particles A < B.
type Edge struct {
	A, B     int
	Distance float64
	Opacity  float64
}

// Path is a closed polyline: Origin, then each neighbour nearest first, then
// back to the nearest neighbour.
type Path struct {
	Origin      int
	Neighbors   []int
	AvgDistance float64
	Opacity     float64
}

// Vertices returns the indices visited when drawing the path.
func (p Path) Vertices() []int {
	out := make([]int, 0, len(p.Neighbors)+2)
	out = append(out, p.Origin)
	out = append(out, p.Neighbors...)
	if len(p.Neighbors) > 0 {
		out = append(out, p.Neighbors[0])
	}
	return out
}

// Graph is the per-frame connection set. Nothing in it outlives the frame.
type Graph struct {
	Edges []Edge
	Paths []Path
}

// Len returns the number of drawable items.
func (g Graph) Len() int {
	return len(g.Edges) + len(g.Paths)
}

// ComputeEdges derives this frame's connections from particle positions.
// prox may be nil; it modulates all-pairs edge opacity by pointer distance.
//
// Both topologies are O(n²) in the particle count, which stays in the low
// hundreds for on-screen densities.
func ComputeEdges(points []r2.Vec, params GraphParams, prox *Proximity) Graph {
	switch params.Topology {
	case TopologyTopK:
		return Graph{Paths: topKPaths(points, params)}
	default:
		return Graph{Edges: allPairs(points, params, prox)}
	}
}

// allPairs emits edges in (i, j) lexicographic order.
func allPairs(points []r2.Vec, params GraphParams, prox *Proximity) []Edge {
	var pointerDist []float64
	if prox != nil {
		if _, ok := prox.Pointer(); ok {
			pointerDist = make([]float64, len(points))
			for i, p := range points {
				pointerDist[i] = prox.Distance(p)
			}
		}
	}

	var edges []Edge
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := r2.Norm(r2.Sub(points[i], points[j]))
			if d >= params.MaxDistance {
				continue
			}
			opacity := params.BaseOpacity
			if pointerDist != nil {
				opacity = prox.OpacityAt(math.Min(pointerDist[i], pointerDist[j]))
			}
			edges = append(edges, Edge{
				A:        i,
				B:        j,
				Distance: d,
				Opacity:  clampFloat(opacity, params.MinOpacity, params.MaxOpacity),
			})
		}
	}
	return edges
}

type candidate struct {
	index int
	dist  float64
}

// topKPaths emits one path per particle with at least two qualifying neighbours.
func topKPaths(points []r2.Vec, params GraphParams) []Path {
	k := params.K
	if k <= 0 {
		k = DefaultK
	}

	var paths []Path
	cands := make([]candidate, 0, len(points))
	dists := make([]float64, 0, k)

	for i, origin := range points {
		cands = cands[:0]
		for j, other := range points {
			if j == i {
				continue
			}
			d := r2.Norm(r2.Sub(origin, other))
			if d < params.MaxDistance {
				cands = append(cands, candidate{index: j, dist: d})
			}
		}
		if len(cands) < 2 {
			continue
		}

		// Stable so that equal distances keep index order
		slices.SortStableFunc(cands, func(a, b candidate) int {
			return cmp.Compare(a.dist, b.dist)
		})
		if len(cands) > k {
			cands = cands[:k]
		}

		neighbors := make([]int, len(cands))
		dists = dists[:0]
		for n, c := range cands {
			neighbors[n] = c.index
			dists = append(dists, c.dist)
		}
		avg := stat.Mean(dists, nil)

		opacity := math.Max(params.MinOpacity, params.MaxOpacity*(1-avg/params.MaxDistance))
		paths = append(paths, Path{
			Origin:      i,
			Neighbors:   neighbors,
			AvgDistance: avg,
			Opacity:     clampFloat(opacity, params.MinOpacity, params.MaxOpacity),
		})
	}
	return paths
}

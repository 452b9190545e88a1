package systems

import "gonum.org/v1/gonum/spatial/r2"

// NearestPoint returns the index of the point closest to target.
// ok is false when points is empty. Ties resolve to the lowest index.
func NearestPoint(points []r2.Vec, target r2.Vec) (index int, ok bool) {
	best := inf
	index = -1
	for i, p := range points {
		d := r2.Norm2(r2.Sub(p, target))
		if d < best {
			best = d
			index = i
		}
	}
	return index, index >= 0
}

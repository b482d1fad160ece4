package osa

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// A Hull is a 2D convex polygon with counter-clockwise vertices.
type Hull struct {
	vertices []model2d.Coord

	// epsilon is the tolerance used for membership tests,
	// scaled to the size of the hull.
	epsilon float64

	// polytope has one half-plane per edge, each pushed
	// outward by epsilon.
	polytope model2d.ConvexPolytope
}

// HullXY computes the convex hull of the first two coordinates
// of each point.
func HullXY(points []model3d.Coord3D) (*Hull, error) {
	coords := make([]model2d.Coord, len(points))
	for i, p := range points {
		coords[i] = model2d.Coord{X: p.X, Y: p.Y}
	}
	return NewHull(coords)
}

// NewHull computes the convex hull of coords using Andrew's
// monotone chain.
//
// If the coordinates do not enclose any area, for example when
// there are fewer than three distinct points or all of them are
// collinear, ErrDegenerateGeometry is returned.
func NewHull(coords []model2d.Coord) (*Hull, error) {
	sorted := append([]model2d.Coord{}, coords...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X == sorted[j].X {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})
	unique := sorted[:0]
	for i, c := range sorted {
		if i == 0 || c != unique[len(unique)-1] {
			unique = append(unique, c)
		}
	}
	if len(unique) < 3 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "hull of %d distinct points", len(unique))
	}

	scale := math.Max(
		math.Abs(unique[len(unique)-1].X-unique[0].X),
		boundsHeight(unique),
	)
	epsilon := scale * 1e-9

	hull := make([]model2d.Coord, 0, len(unique)+1)
	for _, c := range unique {
		for len(hull) >= 2 && cross2(hull[len(hull)-2], hull[len(hull)-1], c) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, c)
	}
	lowerSize := len(hull) + 1
	for i := len(unique) - 2; i >= 0; i-- {
		c := unique[i]
		for len(hull) >= lowerSize && cross2(hull[len(hull)-2], hull[len(hull)-1], c) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, c)
	}
	hull = hull[:len(hull)-1]

	res := &Hull{vertices: hull, epsilon: epsilon}
	if len(hull) < 3 || res.Area() <= epsilon*scale {
		return nil, errors.Wrap(ErrDegenerateGeometry, "hull points are collinear")
	}
	res.polytope = edgeConstraints(hull, epsilon)
	return res, nil
}

// edgeConstraints bounds a counter-clockwise polygon by the
// outward unit normals of its edges.
func edgeConstraints(vertices []model2d.Coord, epsilon float64) model2d.ConvexPolytope {
	res := make(model2d.ConvexPolytope, len(vertices))
	for i, a := range vertices {
		b := vertices[(i+1)%len(vertices)]
		d := b.Sub(a)
		normal := model2d.XY(d.Y, -d.X).Normalize()
		res[i] = &model2d.LinearConstraint{
			Normal: normal,
			Max:    normal.Dot(a) + epsilon,
		}
	}
	return res
}

// Vertices returns the hull's corners in counter-clockwise
// order.
func (h *Hull) Vertices() []model2d.Coord {
	return append([]model2d.Coord{}, h.vertices...)
}

// Area computes the area enclosed by the hull.
func (h *Hull) Area() float64 {
	var sum float64
	for i, c := range h.vertices {
		next := h.vertices[(i+1)%len(h.vertices)]
		sum += c.X*next.Y - next.X*c.Y
	}
	return math.Abs(sum) / 2
}

// SignedDistance computes the distance from c to the hull
// boundary, negated when c is inside.
//
// Points on the boundary have a distance of zero.
func (h *Hull) SignedDistance(c model2d.Coord) float64 {
	inside := true
	minDist := math.Inf(1)
	for i, a := range h.vertices {
		b := h.vertices[(i+1)%len(h.vertices)]
		if cross2(a, b, c) < 0 {
			inside = false
		}
		minDist = math.Min(minDist, segmentDist(a, b, c))
	}
	if inside {
		return -minDist
	}
	return minDist
}

// Contains checks if c is inside the hull or on its boundary,
// up to a small tolerance relative to the hull's size.
func (h *Hull) Contains(c model2d.Coord) bool {
	return h.polytope.Contains(c)
}

// OutsideMask determines which points project outside of the
// hull along the third axis.
//
// The resulting mask is true only for points which are
// definitely outside, so points on the boundary are kept.
func (h *Hull) OutsideMask(points []model3d.Coord3D) []bool {
	mask := make([]bool, len(points))
	for i, p := range points {
		mask[i] = !h.Contains(model2d.Coord{X: p.X, Y: p.Y})
	}
	return mask
}

func cross2(o, a, b model2d.Coord) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func segmentDist(a, b, c model2d.Coord) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = math.Max(0, math.Min(1, ((c.X-a.X)*dx+(c.Y-a.Y)*dy)/lenSq))
	}
	px, py := a.X+t*dx-c.X, a.Y+t*dy-c.Y
	return math.Sqrt(px*px + py*py)
}

func boundsHeight(coords []model2d.Coord) float64 {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, c := range coords {
		minY = math.Min(minY, c.Y)
		maxY = math.Max(maxY, c.Y)
	}
	return maxY - minY
}

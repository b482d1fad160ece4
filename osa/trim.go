package osa

import "github.com/unixpickle/model3d/model3d"

// DegenerateAreaEpsilon is the area, relative to the squared
// diagonal of a mesh's bounding box, below which a triangle is
// considered degenerate.
const DegenerateAreaEpsilon = 1e-12

// Trim cleans up a reconstructed mesh in place and cuts it down
// to the footprint of the hull.
//
// Duplicate vertices and degenerate triangles are removed first,
// then every vertex which projects outside of the hull is removed
// together with its triangles. Vertices on the hull boundary are
// kept, since they form the edge of the open surface.
func Trim(m *Mesh, hull *Hull) {
	m.RemoveDuplicatedVertices()
	m.RemoveDegenerateTriangles(DegenerateAreaEpsilon * diagonalSquared(m.Vertices))
	m.RemoveVerticesByMask(hull.OutsideMask(m.Vertices))
	m.RemoveUnreferencedVertices()
}

func diagonalSquared(coords []model3d.Coord3D) float64 {
	if len(coords) == 0 {
		return 0
	}
	min, max := coords[0], coords[0]
	for _, c := range coords {
		min = min.Min(c)
		max = max.Max(c)
	}
	d := max.Sub(min)
	return d.Dot(d)
}

package osa

import (
	"sort"

	"github.com/unixpickle/model3d/model3d"
)

// A Mesh is an indexed triangle mesh.
//
// Each triangle holds three indices into Vertices.
type Mesh struct {
	Vertices  []model3d.Coord3D
	Triangles [][3]int
}

// MeshFromModel3d converts a model3d mesh into an indexed mesh.
//
// Vertices shared by triangles are merged by exact equality and
// sorted, so the result does not depend on the iteration order
// of the source mesh.
func MeshFromModel3d(m *model3d.Mesh) *Mesh {
	tris := m.TriangleSlice()
	seen := map[model3d.Coord3D]bool{}
	var vertices []model3d.Coord3D
	for _, t := range tris {
		for _, c := range t {
			if !seen[c] {
				seen[c] = true
				vertices = append(vertices, c)
			}
		}
	}
	sort.Slice(vertices, func(i, j int) bool {
		return coordLess(vertices[i], vertices[j])
	})
	indices := make(map[model3d.Coord3D]int, len(vertices))
	for i, c := range vertices {
		indices[c] = i
	}
	triangles := make([][3]int, len(tris))
	for i, t := range tris {
		triangles[i] = [3]int{indices[t[0]], indices[t[1]], indices[t[2]]}
	}
	sort.Slice(triangles, func(i, j int) bool {
		return triangleLess(triangles[i], triangles[j])
	})
	return &Mesh{Vertices: vertices, Triangles: triangles}
}

// Model3d creates a model3d mesh with the same triangles.
func (m *Mesh) Model3d() *model3d.Mesh {
	tris := make([]*model3d.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		tris[i] = &model3d.Triangle{m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]}
	}
	return model3d.NewMeshTriangles(tris)
}

// Copy creates a deep copy of the mesh.
func (m *Mesh) Copy() *Mesh {
	return &Mesh{
		Vertices:  append([]model3d.Coord3D{}, m.Vertices...),
		Triangles: append([][3]int{}, m.Triangles...),
	}
}

// MapCoords transforms every vertex of the mesh in place.
func (m *Mesh) MapCoords(f func(c model3d.Coord3D) model3d.Coord3D) {
	for i, c := range m.Vertices {
		m.Vertices[i] = f(c)
	}
}

// TriangleArea computes the area of the i-th triangle.
func (m *Mesh) TriangleArea(i int) float64 {
	t := m.Triangles[i]
	a, b, c := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
	return b.Sub(a).Cross(c.Sub(a)).Norm() / 2
}

// Area computes the total surface area of the mesh.
//
// The result does not depend on the winding of the triangles.
func (m *Mesh) Area() float64 {
	var sum float64
	for i := range m.Triangles {
		sum += m.TriangleArea(i)
	}
	return sum
}

// RemoveDuplicatedVertices merges vertices with identical
// coordinates, keeping the first occurrence of each.
func (m *Mesh) RemoveDuplicatedVertices() {
	first := map[model3d.Coord3D]int{}
	mapping := make([]int, len(m.Vertices))
	var vertices []model3d.Coord3D
	for i, c := range m.Vertices {
		if idx, ok := first[c]; ok {
			mapping[i] = idx
			continue
		}
		first[c] = len(vertices)
		mapping[i] = len(vertices)
		vertices = append(vertices, c)
	}
	m.Vertices = vertices
	for i, t := range m.Triangles {
		m.Triangles[i] = [3]int{mapping[t[0]], mapping[t[1]], mapping[t[2]]}
	}
}

// RemoveDegenerateTriangles removes triangles which reference
// the same vertex more than once or whose area is not greater
// than epsilon.
func (m *Mesh) RemoveDegenerateTriangles(epsilon float64) {
	kept := m.Triangles[:0]
	for i, t := range m.Triangles {
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			continue
		}
		if m.TriangleArea(i) <= epsilon {
			continue
		}
		kept = append(kept, t)
	}
	m.Triangles = kept
}

// RemoveVerticesByMask removes every vertex whose mask entry is
// true, along with all the triangles that touch it.
func (m *Mesh) RemoveVerticesByMask(mask []bool) {
	if len(mask) != len(m.Vertices) {
		panic("mask must have one entry per vertex")
	}
	mapping := make([]int, len(m.Vertices))
	var vertices []model3d.Coord3D
	for i, c := range m.Vertices {
		if mask[i] {
			mapping[i] = -1
			continue
		}
		mapping[i] = len(vertices)
		vertices = append(vertices, c)
	}
	m.Vertices = vertices
	m.remapTriangles(mapping)
}

// RemoveUnreferencedVertices removes vertices which are not
// part of any triangle.
func (m *Mesh) RemoveUnreferencedVertices() {
	used := make([]bool, len(m.Vertices))
	for _, t := range m.Triangles {
		for _, idx := range t {
			used[idx] = true
		}
	}
	mask := make([]bool, len(used))
	for i, u := range used {
		mask[i] = !u
	}
	m.RemoveVerticesByMask(mask)
}

// BoundaryVertices finds the vertices which lie on an edge that
// belongs to exactly one triangle.
func (m *Mesh) BoundaryVertices() []bool {
	counts := map[[2]int]int{}
	for _, t := range m.Triangles {
		for i := 0; i < 3; i++ {
			counts[edgeKey(t[i], t[(i+1)%3])]++
		}
	}
	result := make([]bool, len(m.Vertices))
	for edge, count := range counts {
		if count == 1 {
			result[edge[0]] = true
			result[edge[1]] = true
		}
	}
	return result
}

// Neighbors computes, for every vertex, the sorted indices of
// the vertices it shares an edge with.
func (m *Mesh) Neighbors() [][]int {
	sets := make([]map[int]bool, len(m.Vertices))
	for i := range sets {
		sets[i] = map[int]bool{}
	}
	for _, t := range m.Triangles {
		for i := 0; i < 3; i++ {
			a, b := t[i], t[(i+1)%3]
			sets[a][b] = true
			sets[b][a] = true
		}
	}
	result := make([][]int, len(sets))
	for i, set := range sets {
		for j := range set {
			result[i] = append(result[i], j)
		}
		sort.Ints(result[i])
	}
	return result
}

func (m *Mesh) remapTriangles(mapping []int) {
	kept := m.Triangles[:0]
	for _, t := range m.Triangles {
		a, b, c := mapping[t[0]], mapping[t[1]], mapping[t[2]]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		kept = append(kept, [3]int{a, b, c})
	}
	m.Triangles = kept
}

func edgeKey(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}

func coordLess(a, b model3d.Coord3D) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func triangleLess(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

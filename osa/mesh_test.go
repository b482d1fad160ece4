package osa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func TestMeshArea(t *testing.T) {
	m := &Mesh{
		Vertices: []model3d.Coord3D{
			model3d.XYZ(0, 0, 0),
			model3d.XYZ(3, 0, 0),
			model3d.XYZ(0, 4, 0),
			model3d.XYZ(0, 0, 2),
		},
		Triangles: [][3]int{{0, 1, 2}, {0, 1, 3}},
	}
	assert.InDelta(t, 6+3, m.Area(), 1e-12)

	flipped := m.Copy()
	for i, tri := range flipped.Triangles {
		flipped.Triangles[i] = [3]int{tri[0], tri[2], tri[1]}
	}
	assert.Equal(t, m.Area(), flipped.Area())

	empty := &Mesh{}
	assert.Equal(t, 0.0, empty.Area())
}

func TestMeshFromModel3d(t *testing.T) {
	square := model3d.NewMeshTriangles([]*model3d.Triangle{
		{model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0, 0), model3d.XYZ(1, 1, 0)},
		{model3d.XYZ(0, 0, 0), model3d.XYZ(1, 1, 0), model3d.XYZ(0, 1, 0)},
	})
	m := MeshFromModel3d(square)
	assert.Len(t, m.Vertices, 4)
	assert.Len(t, m.Triangles, 2)
	assert.InDelta(t, 1, m.Area(), 1e-12)
	assert.Equal(t, model3d.XYZ(0, 0, 0), m.Vertices[0])

	other := MeshFromModel3d(square)
	assert.Equal(t, m, other)

	back := m.Model3d()
	assert.Len(t, back.TriangleSlice(), 2)
}

func TestMeshRemoveDuplicatedVertices(t *testing.T) {
	m := &Mesh{
		Vertices: []model3d.Coord3D{
			model3d.XYZ(0, 0, 0),
			model3d.XYZ(1, 0, 0),
			model3d.XYZ(1, 1, 0),
			model3d.XYZ(0, 0, 0),
			model3d.XYZ(1, 1, 0),
			model3d.XYZ(0, 1, 0),
		},
		Triangles: [][3]int{{0, 1, 2}, {3, 4, 5}},
	}
	area := m.Area()
	m.RemoveDuplicatedVertices()
	require.Len(t, m.Vertices, 4)
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}}, m.Triangles)
	assert.Equal(t, area, m.Area())
}

func TestMeshRemoveDegenerateTriangles(t *testing.T) {
	m := &Mesh{
		Vertices: []model3d.Coord3D{
			model3d.XYZ(0, 0, 0),
			model3d.XYZ(1, 0, 0),
			model3d.XYZ(2, 0, 0),
			model3d.XYZ(0, 1, 0),
		},
		Triangles: [][3]int{{0, 1, 3}, {0, 1, 2}, {0, 0, 3}, {1, 2, 3}},
	}
	m.RemoveDegenerateTriangles(1e-12)
	assert.Equal(t, [][3]int{{0, 1, 3}, {1, 2, 3}}, m.Triangles)
}

func TestMeshRemoveVerticesByMask(t *testing.T) {
	m := gridMesh(4, 0, 3)
	numVerts, numTris := len(m.Vertices), len(m.Triangles)

	mask := make([]bool, len(m.Vertices))
	mask[0] = true
	m.RemoveVerticesByMask(mask)
	assert.Equal(t, numVerts-1, len(m.Vertices))
	assert.Equal(t, numTris-2, len(m.Triangles))
	for _, tri := range m.Triangles {
		for _, idx := range tri {
			assert.Less(t, idx, len(m.Vertices))
		}
	}
	assert.InDelta(t, 8, m.Area(), 1e-12)

	assert.Panics(t, func() {
		m.RemoveVerticesByMask(nil)
	})
}

func TestMeshRemoveUnreferencedVertices(t *testing.T) {
	m := gridMesh(3, 0, 2)
	m.Vertices = append(m.Vertices, model3d.XYZ(5, 5, 5))
	m.RemoveUnreferencedVertices()
	assert.Len(t, m.Vertices, 9)
	assert.Len(t, m.Triangles, 8)
}

func TestMeshBoundaryVertices(t *testing.T) {
	m := gridMesh(3, 0, 2)
	boundary := m.BoundaryVertices()
	for i, b := range boundary {
		assert.Equal(t, i != 4, b, "vertex %d", i)
	}
}

func TestMeshNeighbors(t *testing.T) {
	m := gridMesh(3, 0, 2)
	neighbors := m.Neighbors()
	assert.Equal(t, []int{0, 1, 3, 5, 7, 8}, neighbors[4])
	assert.Equal(t, []int{1, 3, 4}, neighbors[0])
}

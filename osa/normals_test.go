package osa

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func TestInferKNN(t *testing.T) {
	cases := []struct {
		n        int
		expected int
	}{
		{0, 5},
		{2, 5},
		{11, 5},
		{100, 9},
		{121, 10},
		{1000, 14},
		{1000000, 28},
		{100000000, 30},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, InferKNN(c.n), "n=%d", c.n)
	}
}

func TestNormalizeNormals(t *testing.T) {
	input := []model3d.Coord3D{model3d.XYZ(0, 0, 5), model3d.XYZ(3, 4, 0)}
	normals, err := NormalizeNormals(input)
	require.NoError(t, err)
	assert.Equal(t, model3d.XYZ(0, 0, 1), normals[0])
	assert.InDelta(t, 0.6, normals[1].X, 1e-12)
	assert.InDelta(t, 0.8, normals[1].Y, 1e-12)
	assert.Equal(t, model3d.XYZ(0, 0, 5), input[0], "input should not be modified")

	_, err = NormalizeNormals([]model3d.Coord3D{model3d.XYZ(1, 0, 0), {}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NormalizeNormals([]model3d.Coord3D{model3d.XYZ(math.NaN(), 0, 0)})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestKNNNormalsPlane(t *testing.T) {
	points := gridPoints(11, 1)
	normals, err := KNNNormals{}.EstimateNormals(points, InferKNN(len(points)))
	require.NoError(t, err)
	require.Len(t, normals, len(points))
	for i, n := range normals {
		assert.InDelta(t, 1, n.Norm(), 1e-9)
		assert.InDelta(t, 1, n.Z, 1e-6, "normal %d: %v", i, n)
	}
}

func TestKNNNormalsCap(t *testing.T) {
	points := capPoints(2000, math.Pi/3)
	require.Greater(t, len(points), 400)
	normals, err := KNNNormals{}.EstimateNormals(points, InferKNN(len(points)))
	require.NoError(t, err)

	// All normals should agree with the radial direction, and
	// the highest point (the apex) faces +Z.
	for i, n := range normals {
		assert.Greater(t, n.Dot(points[i]), 0.95, "normal %d: %v", i, n)
	}
}

func TestKNNNormalsSmallK(t *testing.T) {
	_, err := KNNNormals{}.EstimateNormals(gridPoints(4, 1), 2)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestKNNNormalsDeterministic(t *testing.T) {
	points := transformPoints(randomCapPoints(rand.New(rand.NewSource(4)), 800, math.Pi/3))
	first, err := KNNNormals{}.EstimateNormals(points, 8)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		next, err := KNNNormals{}.EstimateNormals(points, 8)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestRankedEdges(t *testing.T) {
	up := model3d.XYZ(0, 0, 1)
	tilted := model3d.XYZ(0, 1, 1).Normalize()
	normals := []model3d.Coord3D{up, up, up, tilted}
	neighborhoods := [][]int{{1, 3}, {0, 2}, {1, 3}, {2, 0}}
	edges := rankedEdges(normals, neighborhoods)
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {0, 3}, {2, 3}}, edges)
}

package osa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaubinSmootherFlat(t *testing.T) {
	m := gridMesh(6, 0, 5)
	smoothed, err := DefaultTaubinSmoother().Smooth(m)
	require.NoError(t, err)
	assert.Equal(t, m.Triangles, smoothed.Triangles)
	require.Len(t, smoothed.Vertices, len(m.Vertices))
	for i, v := range smoothed.Vertices {
		assert.InDelta(t, 0, v.Dist(m.Vertices[i]), 1e-9)
	}
	assert.InDelta(t, m.Area(), smoothed.Area(), 1e-9)
}

func TestTaubinSmootherBump(t *testing.T) {
	m := gridMesh(7, 0, 6)
	center := 3*7 + 3
	m.Vertices[center].Z = 1
	boundary := m.BoundaryVertices()

	smoothed, err := DefaultTaubinSmoother().Smooth(m)
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.Vertices[center].Z, "input should not be modified")
	assert.Less(t, smoothed.Vertices[center].Z, 0.5)
	assert.Equal(t, len(m.Triangles), len(smoothed.Triangles))
	for i, b := range boundary {
		if b {
			assert.Equal(t, m.Vertices[i], smoothed.Vertices[i])
		}
	}
}

func TestTaubinSmootherInvalid(t *testing.T) {
	m := gridMesh(3, 0, 1)
	for _, s := range []*TaubinSmoother{
		{Lambda: 0, Mu: -0.5, Iterations: 1},
		{Lambda: 0.5, Mu: -0.4, Iterations: 1},
		{Lambda: 0.5, Mu: -0.53, Iterations: -1},
	} {
		_, err := s.Smooth(m)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", *s)
	}
}

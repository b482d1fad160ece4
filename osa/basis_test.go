package osa

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func TestChangeOfBasisPlanar(t *testing.T) {
	points := transformPoints(gridPoints(11, 1))
	local, basis := ChangeOfBasis(points)
	require.Len(t, local, len(points))
	for _, p := range local {
		assert.InDelta(t, 0, p.Z, 1e-9)
	}
	assert.InDelta(t, 0, basis.SingularValues[2], 1e-9)

	var mean model3d.Coord3D
	for _, p := range local {
		mean = mean.Add(p)
	}
	assert.InDelta(t, 0, mean.Norm()/float64(len(local)), 1e-9)
}

func TestChangeOfBasisOrthonormal(t *testing.T) {
	gen := rand.New(rand.NewSource(1))
	clouds := map[string][]model3d.Coord3D{}

	var random []model3d.Coord3D
	for i := 0; i < 50; i++ {
		random = append(random, model3d.XYZ(gen.NormFloat64()*3, gen.NormFloat64(), gen.NormFloat64()*0.1))
	}
	clouds["random"] = random

	var coincident []model3d.Coord3D
	for i := 0; i < 20; i++ {
		coincident = append(coincident, model3d.XYZ(1, 2, 3))
	}
	clouds["coincident"] = coincident

	var collinear []model3d.Coord3D
	for i := 0; i < 20; i++ {
		collinear = append(collinear, model3d.XYZ(1, 2, 3).Scale(float64(i)))
	}
	clouds["collinear"] = collinear

	for name, points := range clouds {
		t.Run(name, func(t *testing.T) {
			_, basis := ChangeOfBasis(points)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					expected := 0.0
					if i == j {
						expected = 1
					}
					assert.InDelta(t, expected, basis.Axes[i].Dot(basis.Axes[j]), 1e-9)
				}
			}
			assert.InDelta(t, 1, basis.Axes[0].Cross(basis.Axes[1]).Dot(basis.Axes[2]), 1e-9,
				"basis should be right-handed")
			assert.GreaterOrEqual(t, basis.SingularValues[0], basis.SingularValues[1])
			assert.GreaterOrEqual(t, basis.SingularValues[1], basis.SingularValues[2])
		})
	}
}

func TestChangeOfBasisCopiesInput(t *testing.T) {
	points := transformPoints(gridPoints(4, 2))
	original := append([]model3d.Coord3D{}, points...)
	ChangeOfBasis(points)
	assert.Equal(t, original, points)
}

func TestBasisUnapply(t *testing.T) {
	points := transformPoints(gridPoints(5, 1))
	local, basis := ChangeOfBasis(points)
	for i, p := range local {
		assert.InDelta(t, 0, basis.Unapply(p).Dist(points[i]), 1e-9)
	}
	dir := model3d.XYZ(0.3, -0.2, 0.9)
	assert.InDelta(t, dir.Norm(), basis.ApplyDirection(dir).Norm(), 1e-9)
}

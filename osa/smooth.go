package osa

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// A Smoother filters the vertex positions of a mesh without
// changing its connectivity.
type Smoother interface {
	Smooth(m *Mesh) (*Mesh, error)
}

// TaubinSmoother implements lambda|mu smoothing, which alternates
// a shrinking and an inflating Laplacian step so the surface does
// not shrink overall.
//
// Vertices on the open boundary of the mesh are held in place.
type TaubinSmoother struct {
	Lambda     float64 `json:"lambda,omitempty"`
	Mu         float64 `json:"mu,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
}

// DefaultTaubinSmoother creates a smoother with commonly used
// parameters.
func DefaultTaubinSmoother() *TaubinSmoother {
	return &TaubinSmoother{Lambda: 0.5, Mu: -0.53, Iterations: 10}
}

// Smooth returns a smoothed copy of m.
func (t *TaubinSmoother) Smooth(m *Mesh) (*Mesh, error) {
	if t.Lambda <= 0 || t.Lambda >= 1 {
		return nil, errors.Wrapf(ErrInvalidInput, "lambda %f out of range (0, 1)", t.Lambda)
	} else if t.Mu >= -t.Lambda {
		return nil, errors.Wrapf(ErrInvalidInput, "mu %f must be less than -lambda", t.Mu)
	} else if t.Iterations < 0 {
		return nil, errors.Wrapf(ErrInvalidInput, "iteration count %d is negative", t.Iterations)
	}

	result := m.Copy()
	neighbors := result.Neighbors()
	fixed := result.BoundaryVertices()
	for i := 0; i < t.Iterations; i++ {
		laplacianStep(result.Vertices, neighbors, fixed, t.Lambda)
		laplacianStep(result.Vertices, neighbors, fixed, t.Mu)
	}
	return result, nil
}

func laplacianStep(coords []model3d.Coord3D, neighbors [][]int, fixed []bool, factor float64) {
	deltas := make([]model3d.Coord3D, len(coords))
	for i, c := range coords {
		if fixed[i] || len(neighbors[i]) == 0 {
			continue
		}
		var sum model3d.Coord3D
		for _, j := range neighbors[i] {
			sum = sum.Add(coords[j])
		}
		avg := sum.Scale(1 / float64(len(neighbors[i])))
		deltas[i] = avg.Sub(c).Scale(factor)
	}
	for i, d := range deltas {
		coords[i] = coords[i].Add(d)
	}
}

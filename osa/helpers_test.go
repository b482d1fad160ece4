package osa

import (
	"math"
	"math/rand"

	"github.com/unixpickle/model3d/model3d"
)

// gridPoints samples an n-by-n grid with the given spacing in
// the XY plane, starting at the origin.
func gridPoints(n int, spacing float64) []model3d.Coord3D {
	var res []model3d.Coord3D
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			res = append(res, model3d.XYZ(float64(i)*spacing, float64(j)*spacing, 0))
		}
	}
	return res
}

// capPoints samples the part of the unit sphere within maxAngle
// of +Z using a Fibonacci lattice of total points.
func capPoints(total int, maxAngle float64) []model3d.Coord3D {
	var res []model3d.Coord3D
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := 0; i < total; i++ {
		z := 1 - 2*(float64(i)+0.5)/float64(total)
		if z < math.Cos(maxAngle) {
			continue
		}
		r := math.Sqrt(1 - z*z)
		theta := golden * float64(i)
		res = append(res, model3d.XYZ(r*math.Cos(theta), r*math.Sin(theta), z))
	}
	return res
}

// randomPlanePoints samples n uniformly random points from the
// size-by-size square at the origin, along with its corners.
func randomPlanePoints(gen *rand.Rand, n int, size float64) []model3d.Coord3D {
	res := []model3d.Coord3D{
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(size, 0, 0),
		model3d.XYZ(0, size, 0),
		model3d.XYZ(size, size, 0),
	}
	for i := 0; i < n; i++ {
		res = append(res, model3d.XYZ(gen.Float64()*size, gen.Float64()*size, 0))
	}
	return res
}

// randomCapPoints samples n uniformly random points from the part
// of the unit sphere within maxAngle of +Z.
func randomCapPoints(gen *rand.Rand, n int, maxAngle float64) []model3d.Coord3D {
	minZ := math.Cos(maxAngle)
	res := make([]model3d.Coord3D, n)
	for i := range res {
		z := minZ + gen.Float64()*(1-minZ)
		theta := gen.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		res[i] = model3d.XYZ(r*math.Cos(theta), r*math.Sin(theta), z)
	}
	return res
}

// gridMesh triangulates an n-by-n vertex grid covering
// [min, max] in both X and Y.
func gridMesh(n int, min, max float64) *Mesh {
	m := &Mesh{}
	step := (max - min) / float64(n-1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Vertices = append(m.Vertices, model3d.XYZ(min+float64(i)*step, min+float64(j)*step, 0))
		}
	}
	idx := func(i, j int) int { return i*n + j }
	for i := 0; i < n-1; i++ {
		for j := 0; j < n-1; j++ {
			m.Triangles = append(m.Triangles,
				[3]int{idx(i, j), idx(i+1, j), idx(i+1, j+1)},
				[3]int{idx(i, j), idx(i+1, j+1), idx(i, j+1)},
			)
		}
	}
	return m
}

// transformPoints rotates points about an arbitrary axis and
// then translates them.
func transformPoints(points []model3d.Coord3D) []model3d.Coord3D {
	rotation := model3d.Rotation(model3d.XYZ(1, 2, 3).Normalize(), 0.7)
	offset := model3d.XYZ(3, -2, 5)
	res := make([]model3d.Coord3D, len(points))
	for i, p := range points {
		res[i] = rotation.Apply(p).Add(offset)
	}
	return res
}

package main

import (
	"math"
	"math/rand"

	"github.com/unixpickle/model3d/model3d"
)

// A Surface is an analytic open surface with a known area.
type Surface interface {
	// Sample draws n points on the surface along with their
	// unit normals.
	Sample(gen *rand.Rand, n int) (points, normals []model3d.Coord3D)
	Area() float64
}

// PlaneSurface is a rectangle in the XY plane.
type PlaneSurface struct {
	Width  float64
	Height float64
}

func (p *PlaneSurface) Sample(gen *rand.Rand, n int) (points, normals []model3d.Coord3D) {
	for i := 0; i < n; i++ {
		points = append(points, model3d.XYZ(gen.Float64()*p.Width, gen.Float64()*p.Height, 0))
		normals = append(normals, model3d.XYZ(0, 0, 1))
	}
	points = append(points,
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(p.Width, 0, 0),
		model3d.XYZ(0, p.Height, 0),
		model3d.XYZ(p.Width, p.Height, 0),
	)
	for i := 0; i < 4; i++ {
		normals = append(normals, model3d.XYZ(0, 0, 1))
	}
	return
}

func (p *PlaneSurface) Area() float64 {
	return p.Width * p.Height
}

// CapSurface is the part of a sphere within Angle radians of
// its north pole.
type CapSurface struct {
	Radius float64
	Angle  float64
}

func (c *CapSurface) Sample(gen *rand.Rand, n int) (points, normals []model3d.Coord3D) {
	minZ := math.Cos(c.Angle)
	for i := 0; i < n; i++ {
		// Uniform in z gives uniform area on a sphere.
		z := minZ + gen.Float64()*(1-minZ)
		theta := gen.Float64() * 2 * math.Pi
		r := math.Sqrt(1 - z*z)
		normal := model3d.XYZ(r*math.Cos(theta), r*math.Sin(theta), z)
		points = append(points, normal.Scale(c.Radius))
		normals = append(normals, normal)
	}
	return
}

func (c *CapSurface) Area() float64 {
	return 2 * math.Pi * c.Radius * c.Radius * (1 - math.Cos(c.Angle))
}

// CylinderSurface is a strip of a cylinder's side, spanning Angle
// radians around the Z axis and Height along it.
type CylinderSurface struct {
	Radius float64
	Angle  float64
	Height float64
}

func (c *CylinderSurface) Sample(gen *rand.Rand, n int) (points, normals []model3d.Coord3D) {
	for i := 0; i < n; i++ {
		theta := (gen.Float64() - 0.5) * c.Angle
		z := gen.Float64() * c.Height
		normal := model3d.XYZ(math.Cos(theta), math.Sin(theta), 0)
		points = append(points, normal.Scale(c.Radius).Add(model3d.XYZ(0, 0, z)))
		normals = append(normals, normal)
	}
	return
}

func (c *CylinderSurface) Area() float64 {
	return c.Radius * c.Angle * c.Height
}

// TransformSamples rotates the samples about axis and then moves
// them by offset.
func TransformSamples(points, normals []model3d.Coord3D, axis model3d.Coord3D, theta float64,
	offset model3d.Coord3D) ([]model3d.Coord3D, []model3d.Coord3D) {
	if axis.Norm() == 0 {
		axis = model3d.XYZ(0, 0, 1)
	}
	rotation := model3d.Rotation(axis.Normalize(), theta)
	newPoints := make([]model3d.Coord3D, len(points))
	newNormals := make([]model3d.Coord3D, len(normals))
	for i, p := range points {
		newPoints[i] = rotation.Apply(p).Add(offset)
	}
	for i, n := range normals {
		newNormals[i] = rotation.Apply(n)
	}
	return newPoints, newNormals
}

// AddNoise perturbs every point by Gaussian noise with the given
// standard deviation.
func AddNoise(gen *rand.Rand, points []model3d.Coord3D, stddev float64) {
	for i, p := range points {
		points[i] = p.Add(model3d.XYZ(gen.NormFloat64(), gen.NormFloat64(), gen.NormFloat64()).Scale(stddev))
	}
}

package osa

import (
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/mat"
)

// A Basis is an orthonormal coordinate frame centered on the
// mean of a point cloud.
//
// The axes are sorted by descending spread, so the first two
// axes span the plane of best fit and the third axis is the
// direction in which the cloud is thinnest.
type Basis struct {
	Mean           model3d.Coord3D
	Axes           [3]model3d.Coord3D
	SingularValues [3]float64
}

// ChangeOfBasis expresses points in their principal component
// basis.
//
// The input slice is not modified. Degenerate clouds, such as
// coincident or collinear points, still produce a valid
// orthonormal basis with zero singular values.
func ChangeOfBasis(points []model3d.Coord3D) ([]model3d.Coord3D, *Basis) {
	basis := NewBasis(points)
	result := make([]model3d.Coord3D, len(points))
	for i, p := range points {
		result[i] = basis.Apply(p)
	}
	return result, basis
}

// NewBasis computes the principal component basis of points
// from the SVD of their scatter matrix.
func NewBasis(points []model3d.Coord3D) *Basis {
	var mean model3d.Coord3D
	for _, p := range points {
		mean = mean.Add(p)
	}
	if len(points) > 0 {
		mean = mean.Scale(1 / float64(len(points)))
	}

	data := make([]float64, 0, len(points)*3)
	for _, p := range points {
		d := p.Sub(mean)
		data = append(data, d.X, d.Y, d.Z)
	}
	basis := &Basis{
		Mean: mean,
		Axes: [3]model3d.Coord3D{model3d.XYZ(1, 0, 0), model3d.XYZ(0, 1, 0), model3d.XYZ(0, 0, 1)},
	}
	if len(points) == 0 {
		return basis
	}

	centered := mat.NewDense(len(points), 3, data)
	var scatter mat.Dense
	scatter.Mul(centered.T(), centered)

	var svd mat.SVD
	if !svd.Factorize(&scatter, mat.SVDFull) {
		return basis
	}
	var u mat.Dense
	svd.UTo(&u)
	values := svd.Values(nil)

	// Keep the frame right-handed so orientation is preserved.
	flip := 1.0
	if mat.Det(&u) < 0 {
		flip = -1
	}
	for i := 0; i < 3; i++ {
		axis := model3d.XYZ(u.At(0, i), u.At(1, i), u.At(2, i))
		if i == 2 {
			axis = axis.Scale(flip)
		}
		basis.Axes[i] = axis
		basis.SingularValues[i] = values[i]
	}
	return basis
}

// Apply maps a world coordinate into the basis.
func (b *Basis) Apply(c model3d.Coord3D) model3d.Coord3D {
	d := c.Sub(b.Mean)
	return model3d.XYZ(d.Dot(b.Axes[0]), d.Dot(b.Axes[1]), d.Dot(b.Axes[2]))
}

// ApplyDirection rotates a direction into the basis without
// translating it.
func (b *Basis) ApplyDirection(d model3d.Coord3D) model3d.Coord3D {
	return model3d.XYZ(d.Dot(b.Axes[0]), d.Dot(b.Axes[1]), d.Dot(b.Axes[2]))
}

// Unapply maps a basis coordinate back into world space.
func (b *Basis) Unapply(c model3d.Coord3D) model3d.Coord3D {
	return b.Mean.Add(b.Axes[0].Scale(c.X)).Add(b.Axes[1].Scale(c.Y)).Add(b.Axes[2].Scale(c.Z))
}

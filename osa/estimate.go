// Package osa estimates the area of open surfaces sampled as
// point clouds.
//
// The cloud is moved into its principal component basis, a
// closed surface is reconstructed from oriented samples, and the
// reconstruction is trimmed back to the convex footprint of the
// samples before its triangle areas are summed.
package osa

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// MinPoints is the number of points a cloud must exceed.
const MinPoints = 10

// An Estimator runs the area estimation pipeline with a chosen
// set of stages.
//
// A nil stage is treated as unavailable, and any estimate which
// needs it fails with ErrCapabilityUnavailable.
type Estimator struct {
	// Normals is used when no normals are supplied.
	Normals NormalEstimator

	Reconstructor Reconstructor
	Options       ReconstructOptions

	// Smoother is used when smoothing is requested.
	Smoother Smoother

	// KNN is the neighborhood size for normal estimation.
	// If it is 0, InferKNN is used.
	KNN int

	// Logger, if non-nil, receives progress messages.
	Logger *log.Logger
}

// NewEstimator creates an Estimator with the built-in stages.
func NewEstimator() *Estimator {
	return &Estimator{
		Normals:       KNNNormals{},
		Reconstructor: ImplicitReconstructor{},
		Smoother:      DefaultTaubinSmoother(),
	}
}

// Result is the full output of an estimate.
type Result struct {
	Area float64

	// Mesh is the trimmed (and possibly smoothed) surface,
	// expressed in Basis coordinates.
	Mesh  *Mesh
	Basis *Basis
	Hull  *Hull

	// Sizes of the reconstruction before trimming.
	RawVertices  int
	RawTriangles int
}

// WorldMesh maps the result mesh back into the coordinates of
// the input points.
func (r *Result) WorldMesh() *Mesh {
	m := r.Mesh.Copy()
	m.MapCoords(r.Basis.Unapply)
	return m
}

// Estimate estimates the surface area of the open surface
// sampled by points using the built-in stages.
//
// See Estimator.Estimate for details.
func Estimate(points, normals []model3d.Coord3D, smooth bool) (float64, error) {
	return NewEstimator().Estimate(points, normals, smooth)
}

// Estimate estimates the surface area of the open surface
// sampled by points.
//
// If normals is non-nil, it must contain one (not necessarily
// unit) normal per point, and normal estimation is skipped. If
// smooth is true, the trimmed mesh is smoothed before its area
// is computed.
func (e *Estimator) Estimate(points, normals []model3d.Coord3D, smooth bool) (float64, error) {
	res, err := e.EstimateFull(points, normals, smooth)
	if err != nil {
		return 0, err
	}
	return res.Area, nil
}

// EstimateFull is like Estimate, but also returns the mesh and
// the intermediate geometry used to compute the area.
func (e *Estimator) EstimateFull(points, normals []model3d.Coord3D, smooth bool) (*Result, error) {
	if err := validateInput(points, normals); err != nil {
		return nil, err
	}
	if err := e.checkCapabilities(normals != nil, smooth); err != nil {
		return nil, err
	}
	opts, err := e.Options.WithDefaults()
	if err != nil {
		return nil, err
	}
	if normals != nil {
		normals, err = NormalizeNormals(normals)
		if err != nil {
			return nil, err
		}
	}

	e.logf("Changing basis of %d points...", len(points))
	local, basis := ChangeOfBasis(points)

	e.logf("Computing footprint...")
	hull, err := HullXY(local)
	if err != nil {
		return nil, errors.Wrap(err, "compute footprint")
	}

	if normals != nil {
		rotated := make([]model3d.Coord3D, len(normals))
		for i, n := range normals {
			rotated[i] = basis.ApplyDirection(n)
		}
		normals = rotated
	} else {
		k := e.KNN
		if k == 0 {
			k = InferKNN(len(points))
		}
		e.logf("Estimating normals with %d neighbors...", k)
		normals, err = e.Normals.EstimateNormals(local, k)
		if err != nil {
			return nil, errors.Wrap(err, "estimate normals")
		}
		normals, err = NormalizeNormals(normals)
		if err != nil {
			return nil, errors.Wrap(err, "estimate normals")
		}
	}

	e.logf("Reconstructing surface...")
	mesh, err := e.Reconstructor.Reconstruct(local, normals, opts)
	if err != nil {
		return nil, errors.Wrap(err, "reconstruct surface")
	}
	if mesh == nil {
		return nil, errors.Wrap(ErrCapabilityUnavailable, "reconstructor returned no mesh")
	}
	res := &Result{
		Basis:        basis,
		Hull:         hull,
		RawVertices:  len(mesh.Vertices),
		RawTriangles: len(mesh.Triangles),
	}

	e.logf("Trimming %d triangles...", len(mesh.Triangles))
	Trim(mesh, hull)

	if smooth {
		e.logf("Smoothing %d triangles...", len(mesh.Triangles))
		mesh, err = e.Smoother.Smooth(mesh)
		if err != nil {
			return nil, errors.Wrap(err, "smooth surface")
		}
	}

	res.Mesh = mesh
	res.Area = mesh.Area()
	e.logf("Estimated area %f from %d triangles.", res.Area, len(mesh.Triangles))
	return res, nil
}

func (e *Estimator) checkCapabilities(haveNormals, smooth bool) error {
	if e.Reconstructor == nil {
		return errors.Wrap(ErrCapabilityUnavailable, "no surface reconstructor")
	}
	if !haveNormals && e.Normals == nil {
		return errors.Wrap(ErrCapabilityUnavailable, "no normal estimator")
	}
	if smooth && e.Smoother == nil {
		return errors.Wrap(ErrCapabilityUnavailable, "no smoother")
	}
	return nil
}

func (e *Estimator) logf(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Printf(format, args...)
	}
}

func validateInput(points, normals []model3d.Coord3D) error {
	if len(points) <= MinPoints {
		return errors.Wrapf(ErrInvalidInput, "point count too small: %d (must be > %d)",
			len(points), MinPoints)
	}
	if normals != nil && len(normals) != len(points) {
		return errors.Wrapf(ErrInvalidInput, "got %d normals for %d points",
			len(normals), len(points))
	}
	for i, p := range points {
		if !isFinite(p) {
			return errors.Wrapf(ErrInvalidInput, "point %d is not finite", i)
		}
	}
	return nil
}

func isFinite(c model3d.Coord3D) bool {
	for _, x := range c.Array() {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

package osa

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"gonum.org/v1/gonum/stat"
)

// spacingQuantile is the quantile of nearest-neighbor distances
// used as the sample spacing of a cloud.
const spacingQuantile = 0.95

// A Reconstructor fits a triangle mesh to oriented samples.
//
// The resulting mesh may extend past the sampled region; callers
// are expected to trim it.
type Reconstructor interface {
	Reconstruct(points, normals []model3d.Coord3D, opts ReconstructOptions) (*Mesh, error)
}

// ReconstructOptions configures surface reconstruction.
//
// Zero fields are replaced by their defaults.
type ReconstructOptions struct {
	// Depth sets the grid resolution to 2^Depth cells along the
	// longest side of the reconstruction box.
	Depth int `json:"depth,omitempty"`

	// Scale is the ratio between the longest side of the
	// reconstruction box and that of the samples' bounding box.
	Scale float64 `json:"scale,omitempty"`

	// PointWeight is the inverse-distance exponent used to blend
	// the tangent planes of neighboring samples.
	PointWeight float64 `json:"point_weight,omitempty"`

	// Neighbors is the number of samples blended for every
	// evaluation of the implicit function.
	Neighbors int `json:"neighbors,omitempty"`

	// DensityThreshold removes reconstructed vertices which are
	// farther than this many sample spacings (plus one grid cell)
	// from every sample. The spacing is the 95th percentile of the
	// distances between samples and their nearest neighbors.
	// A negative value disables the filter.
	DensityThreshold float64 `json:"density_threshold,omitempty"`

	// SearchIterations is the number of bisection steps used to
	// move mesh vertices onto the surface.
	SearchIterations int `json:"search_iterations,omitempty"`
}

// DefaultReconstructOptions returns the options used in place of
// zero fields.
func DefaultReconstructOptions() ReconstructOptions {
	return ReconstructOptions{
		Depth:            7,
		Scale:            1.5,
		PointWeight:      2,
		Neighbors:        4,
		DensityThreshold: 3,
		SearchIterations: 8,
	}
}

// WithDefaults fills in zero fields and validates the result.
func (r ReconstructOptions) WithDefaults() (ReconstructOptions, error) {
	defaults := DefaultReconstructOptions()
	if r.Depth == 0 {
		r.Depth = defaults.Depth
	}
	if r.Scale == 0 {
		r.Scale = defaults.Scale
	}
	if r.PointWeight == 0 {
		r.PointWeight = defaults.PointWeight
	}
	if r.Neighbors == 0 {
		r.Neighbors = defaults.Neighbors
	}
	if r.DensityThreshold == 0 {
		r.DensityThreshold = defaults.DensityThreshold
	}
	if r.SearchIterations == 0 {
		r.SearchIterations = defaults.SearchIterations
	}

	if r.Depth < 1 || r.Depth > 10 {
		return r, errors.Wrapf(ErrInvalidInput, "depth %d out of range [1, 10]", r.Depth)
	} else if r.Scale < 1 {
		return r, errors.Wrapf(ErrInvalidInput, "scale %f must be at least 1", r.Scale)
	} else if r.PointWeight < 0 {
		return r, errors.Wrapf(ErrInvalidInput, "point weight %f is negative", r.PointWeight)
	} else if r.Neighbors < 1 {
		return r, errors.Wrapf(ErrInvalidInput, "neighbor count %d is not positive", r.Neighbors)
	} else if r.SearchIterations < 0 {
		return r, errors.Wrapf(ErrInvalidInput, "search iterations %d is negative", r.SearchIterations)
	}
	return r, nil
}

// ImplicitReconstructor polygonizes the zero set of a blended
// tangent-plane distance function with marching cubes.
//
// The function is negative behind the oriented samples, so
// marching cubes produces a closed mesh whose sides and bottom
// lie on the faces of the reconstruction box. Those faces are
// removed, as are vertices far from any sample (according to
// ReconstructOptions.DensityThreshold), but the remaining sheet
// still extends beyond the footprint of the samples.
type ImplicitReconstructor struct{}

// Reconstruct creates a mesh from oriented samples.
func (ImplicitReconstructor) Reconstruct(points, normals []model3d.Coord3D,
	opts ReconstructOptions) (*Mesh, error) {
	opts, err := opts.WithDefaults()
	if err != nil {
		return nil, err
	}
	if len(points) == 0 || len(points) != len(normals) {
		return nil, errors.Wrapf(ErrInvalidInput, "%d points with %d normals",
			len(points), len(normals))
	}

	tree := model3d.NewCoordTree(points)
	normalMap := make(map[model3d.Coord3D]model3d.Coord3D, len(points))
	for i := len(points) - 1; i >= 0; i-- {
		normalMap[points[i]] = normals[i]
	}

	min, max := points[0], points[0]
	for _, p := range points {
		min = min.Min(p)
		max = max.Max(p)
	}
	size := max.Sub(min)
	longest := math.Max(math.Max(size.X, size.Y), size.Z)
	if longest == 0 {
		return nil, errors.Wrap(ErrDegenerateGeometry, "samples are coincident")
	}
	delta := opts.Scale * longest / math.Pow(2, float64(opts.Depth))
	padding := math.Max((opts.Scale-1)/2*longest, 3*delta)
	pad := model3d.XYZ(padding, padding, padding)
	boxMin, boxMax := min.Sub(pad), max.Add(pad)

	solid := model3d.CheckedFuncSolid(
		boxMin,
		boxMax,
		func(c model3d.Coord3D) bool {
			return implicitValue(tree, normalMap, c, opts) < 0
		},
	)
	mesh := MeshFromModel3d(model3d.MarchingCubesSearch(solid, delta, opts.SearchIterations))

	threshold := opts.DensityThreshold*sampleSpacing(tree, points) + delta
	mask := make([]bool, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		if onBoxFace(v, boxMin, boxMax, delta) {
			mask[i] = true
		} else if opts.DensityThreshold > 0 {
			mask[i] = tree.Dist(v) > threshold
		}
	}
	mesh.RemoveVerticesByMask(mask)
	mesh.RemoveUnreferencedVertices()
	return mesh, nil
}

// onBoxFace checks if c is within margin of a face of the box.
//
// Marching cubes places the vertices of the box walls on grid
// edges which cross a face, so they are never farther than one
// grid cell from it.
func onBoxFace(c, min, max model3d.Coord3D, margin float64) bool {
	d := c.Sub(min).Min(max.Sub(c))
	return math.Min(d.X, math.Min(d.Y, d.Z)) <= margin
}

// implicitValue blends the signed distances from c to the
// tangent planes of its nearest samples.
func implicitValue(tree *model3d.CoordTree, normals map[model3d.Coord3D]model3d.Coord3D,
	c model3d.Coord3D, opts ReconstructOptions) float64 {
	var num, denom float64
	for _, p := range tree.KNN(opts.Neighbors, c) {
		dist := p.Dist(c)
		weight := 1 / (math.Pow(dist, opts.PointWeight) + 1e-12)
		num += weight * normals[p].Dot(c.Sub(p))
		denom += weight
	}
	return num / denom
}

// sampleSpacing computes a high quantile of the distances from
// the samples to their nearest distinct neighbors.
func sampleSpacing(tree *model3d.CoordTree, points []model3d.Coord3D) float64 {
	dists := make([]float64, 0, len(points))
	for _, p := range points {
		for _, n := range tree.KNN(2, p) {
			if n != p {
				dists = append(dists, n.Dist(p))
				break
			}
		}
	}
	if len(dists) == 0 {
		return 0
	}
	sort.Float64s(dists)
	return stat.Quantile(spacingQuantile, stat.Empirical, dists, nil)
}

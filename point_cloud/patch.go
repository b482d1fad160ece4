package main

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/open-area/osa"
)

// A PatchSelector cuts an open surface patch out of a dense point
// cloud: a ball around the point which is farthest along Up.
type PatchSelector struct {
	Up     model3d.Coord3D
	Radius float64

	// MaxPoints limits the cloud before the patch is cut, using a
	// random subset. Zero means no limit.
	MaxPoints int
}

// Select returns the patch and its center.
//
// The input slice is never modified.
func (p *PatchSelector) Select(gen *rand.Rand, points []model3d.Coord3D) ([]model3d.Coord3D,
	model3d.Coord3D, error) {
	if p.MaxPoints > 0 && len(points) > p.MaxPoints {
		subset := make([]model3d.Coord3D, p.MaxPoints)
		for i, j := range gen.Perm(len(points))[:p.MaxPoints] {
			subset[i] = points[j]
		}
		points = subset
	}
	center, ok := osa.ExtremePoint(points, p.Up)
	if !ok {
		return nil, center, errors.New("empty point cloud")
	}
	patch := osa.BallPatch(points, center, p.Radius)
	if len(patch) <= osa.MinPoints {
		return nil, center, errors.Wrapf(osa.ErrInvalidInput,
			"patch of radius %f has only %d points", p.Radius, len(patch))
	}
	return patch, center, nil
}

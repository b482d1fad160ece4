package osa

import "github.com/unixpickle/model3d/model3d"

// BallPatch selects the points within radius of center.
//
// Cutting a ball out of a closed surface gives an open patch,
// which is the kind of surface Estimate is designed for.
func BallPatch(points []model3d.Coord3D, center model3d.Coord3D, radius float64) []model3d.Coord3D {
	var res []model3d.Coord3D
	for _, p := range points {
		if p.Dist(center) <= radius {
			res = append(res, p)
		}
	}
	return res
}

// ExtremePoint finds the point which is farthest along axis.
//
// It returns false if there are no points.
func ExtremePoint(points []model3d.Coord3D, axis model3d.Coord3D) (model3d.Coord3D, bool) {
	if len(points) == 0 {
		return model3d.Coord3D{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Dot(axis) > best.Dot(axis) {
			best = p
		}
	}
	return best, true
}

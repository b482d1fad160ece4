package osa

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned for malformed arguments, such as too few
	// points or normals that do not match the points 1:1.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDegenerateGeometry is returned when the footprint of a point cloud
	// cannot bound an area, e.g. when its projection is collinear.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrCapabilityUnavailable is returned when a pipeline stage has no
	// implementation to delegate to.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
)

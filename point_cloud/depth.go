package main

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

const depthSuffix = "_depth.png"

// A DepthView is a camera view from a dataset, together with a
// depth image rendered from that camera.
//
// Pixel brightness is depth along the camera's Z axis, scaled so
// that full brightness is the maximum depth. Fully white pixels
// did not hit the scene.
type DepthView struct {
	Origin model3d.Coord3D
	X      model3d.Coord3D
	Y      model3d.Coord3D
	Z      model3d.Coord3D
	Image  image.Image
}

// ReadDepthViews loads every view in a dataset directory which
// has a depth image, ordered by file name.
func ReadDepthViews(dataDir string) ([]*DepthView, error) {
	depthPaths, err := filepath.Glob(filepath.Join(dataDir, "*"+depthSuffix))
	if err != nil {
		return nil, errors.Wrap(err, "list depth images")
	}
	sort.Strings(depthPaths)
	var views []*DepthView
	for _, depthPath := range depthPaths {
		metadataPath := strings.TrimSuffix(depthPath, depthSuffix) + ".json"
		view, err := LoadDepthView(metadataPath, depthPath)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// LoadDepthView reads a camera's JSON metadata and its depth
// image.
func LoadDepthView(metadataPath, depthPath string) (*DepthView, error) {
	var metadata struct {
		Origin [3]float64 `json:"origin"`
		X      [3]float64 `json:"x"`
		Y      [3]float64 `json:"y"`
		Z      [3]float64 `json:"z"`
	}
	f, err := os.Open(metadataPath)
	if err != nil {
		return nil, errors.Wrap(err, "open camera metadata")
	}
	err = json.NewDecoder(f).Decode(&metadata)
	f.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "decode camera metadata %s", metadataPath)
	}

	f, err = os.Open(depthPath)
	if err != nil {
		return nil, errors.Wrap(err, "open depth image")
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "decode depth image %s", depthPath)
	}
	return &DepthView{
		Origin: model3d.NewCoord3DArray(metadata.Origin),
		X:      model3d.NewCoord3DArray(metadata.X),
		Y:      model3d.NewCoord3DArray(metadata.Y),
		Z:      model3d.NewCoord3DArray(metadata.Z),
		Image:  img,
	}, nil
}

// Unproject maps a pixel and its depth to a world coordinate.
//
// The image spans [-1, 1] along the camera's X and Y axes.
func (d *DepthView) Unproject(x, y int, depth float64) model3d.Coord3D {
	size := d.Image.Bounds().Size()
	frac := func(i, n int) float64 {
		if n < 2 {
			return 0
		}
		return 2*float64(i)/float64(n-1) - 1
	}
	return d.Origin.Add(d.Z.Scale(depth)).
		Add(d.X.Scale(frac(x, size.X))).
		Add(d.Y.Scale(frac(y, size.Y)))
}

// Points unprojects every pixel which hit the scene.
func (d *DepthView) Points(maxDepth float64) []model3d.Coord3D {
	bounds := d.Image.Bounds()
	var res []model3d.Coord3D
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			px := d.Image.At(bounds.Min.X+x, bounds.Min.Y+y)
			brightness := color.Gray16Model.Convert(px).(color.Gray16).Y
			if brightness == 0xffff {
				continue
			}
			res = append(res, d.Unproject(x, y, float64(brightness)/0xffff*maxDepth))
		}
	}
	return res
}

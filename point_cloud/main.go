// Command point_cloud reconstructs a point cloud from a dataset with added
// depth images, cuts an open patch out of it, and estimates the patch's
// surface area.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/open-area/osa"
)

func main() {
	var maxDepth float64
	var maxPoints int
	var seed int64
	var radius float64
	var upAxis string
	var smooth bool
	var verbose bool
	var configPath string
	var dataDir string
	var outputPath string
	flag.Float64Var(&maxDepth, "max-depth", 5.0, "maximum depth value corresponding to white pixel")
	flag.IntVar(&maxPoints, "max-points", 50000, "maximum points to sample")
	flag.Int64Var(&seed, "seed", 0, "seed for point sampling")
	flag.Float64Var(&radius, "radius", 0.5, "radius of the patch around the topmost point")
	flag.StringVar(&upAxis, "up", "z", "axis along which the patch center is the topmost point")
	flag.BoolVar(&smooth, "smooth", false, "smooth the reconstructed patch")
	flag.BoolVar(&verbose, "verbose", false, "log the progress of the estimator")
	flag.StringVar(&configPath, "config", "", "optional JSON estimator config")
	flag.StringVar(&dataDir, "data-dir", "", "data directory")
	flag.StringVar(&outputPath, "output-path", "", "optional output STL path for the patch")
	flag.Parse()
	if dataDir == "" {
		essentials.Die("Must specify -data-dir")
	}
	up, ok := map[string]model3d.Coord3D{
		"x": model3d.XYZ(1, 0, 0),
		"y": model3d.XYZ(0, 1, 0),
		"z": model3d.XYZ(0, 0, 1),
	}[upAxis]
	if !ok {
		essentials.Die("Unknown -up axis: " + upAxis)
	}

	config := osa.DefaultConfig()
	if configPath != "" {
		var err error
		config, err = osa.LoadConfig(configPath)
		essentials.Must(err)
	}
	var logger *log.Logger
	if verbose {
		logger = log.Default()
	}
	estimator, err := config.Estimator(logger)
	essentials.Must(err)

	log.Println("Loading depth views...")
	views, err := ReadDepthViews(dataDir)
	essentials.Must(err)
	var points []model3d.Coord3D
	for _, view := range views {
		points = append(points, view.Points(maxDepth)...)
	}
	log.Printf("Unprojected %d points from %d views.", len(points), len(views))

	selector := &PatchSelector{Up: up, Radius: radius, MaxPoints: maxPoints}
	patch, center, err := selector.Select(rand.New(rand.NewSource(seed)), points)
	essentials.Must(err)
	log.Printf("Cut patch of %d points around %v.", len(patch), center.Array())

	log.Println("Estimating area...")
	res, err := estimator.EstimateFull(patch, nil, smooth)
	essentials.Must(err)
	fmt.Printf("surface area: %f\n", res.Area)

	if outputPath != "" {
		log.Println("Saving mesh...")
		essentials.Must(res.WorldMesh().Model3d().SaveGroupedSTL(outputPath))
	}
}

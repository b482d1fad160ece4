// Command surface_area samples an analytic open surface, estimates
// its area from the samples, and reports the estimation error.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model3d"
	"github.com/unixpickle/open-area/osa"
)

func main() {
	var surfaceName string
	var numPoints int
	var seed int64
	var noise float64
	var theta float64
	var useNormals bool
	var smooth bool
	var verbose bool
	var configPath string
	var outputPath string
	var depth int
	axis := VectorFlag{Value: model3d.XYZ(1, 1, 0)}
	offset := VectorFlag{}

	flag.StringVar(&surfaceName, "surface", "cap", "surface to sample: plane, cap or cylinder")
	flag.IntVar(&numPoints, "points", 2000, "number of points to sample")
	flag.Int64Var(&seed, "seed", 0, "seed for random sampling")
	flag.Float64Var(&noise, "noise", 0, "standard deviation of Gaussian noise added to points")
	flag.Float64Var(&theta, "angle", 30, "rotation applied to the samples, in degrees")
	flag.Var(&axis, "axis", "rotation axis, as 'x,y,z' or an axis name")
	flag.Var(&offset, "offset", "translation applied to the samples, as 'x,y,z'")
	flag.BoolVar(&useNormals, "normals", false, "pass the analytic normals instead of estimating them")
	flag.BoolVar(&smooth, "smooth", false, "smooth the reconstructed mesh")
	flag.BoolVar(&verbose, "verbose", false, "log the progress of the estimator")
	flag.StringVar(&configPath, "config", "", "optional JSON estimator config")
	flag.StringVar(&outputPath, "output-path", "", "optional STL path for the trimmed mesh")
	flag.IntVar(&depth, "depth", 0, "reconstruction depth (overrides config)")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: surface_area [flags]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Flags:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()
	if len(flag.Args()) != 0 {
		flag.Usage()
	}

	surface, err := SurfaceByName(surfaceName)
	if err != nil {
		essentials.Die(err.Error())
	}

	config := osa.DefaultConfig()
	if configPath != "" {
		log.Printf("Loading config: %s...", configPath)
		config, err = osa.LoadConfig(configPath)
		essentials.Must(err)
	}
	if depth != 0 {
		config.Reconstruct.Depth = depth
	}
	var logger *log.Logger
	if verbose {
		logger = log.Default()
	}
	estimator, err := config.Estimator(logger)
	essentials.Must(err)

	log.Printf("Sampling %d points from %s surface...", numPoints, surfaceName)
	gen := rand.New(rand.NewSource(seed))
	points, normals := surface.Sample(gen, numPoints)
	points, normals = TransformSamples(points, normals, axis.Value, theta*math.Pi/180, offset.Value)
	if noise > 0 {
		AddNoise(gen, points, noise)
	}
	if !useNormals {
		normals = nil
	}

	log.Println("Estimating area...")
	res, err := estimator.EstimateFull(points, normals, smooth)
	essentials.Must(err)

	expected := surface.Area()
	log.Printf("Reconstruction: %d => %d triangles after trimming", res.RawTriangles,
		len(res.Mesh.Triangles))
	fmt.Printf("estimated area: %f\n", res.Area)
	fmt.Printf("analytic area:  %f\n", expected)
	fmt.Printf("relative error: %.2f%%\n", 100*(res.Area-expected)/expected)

	if outputPath != "" {
		log.Printf("Saving mesh: %s...", outputPath)
		essentials.Must(res.WorldMesh().Model3d().SaveGroupedSTL(outputPath))
	}
}

// SurfaceByName creates one of the built-in analytic surfaces.
func SurfaceByName(name string) (Surface, error) {
	switch name {
	case "plane":
		return &PlaneSurface{Width: 4, Height: 3}, nil
	case "cap":
		return &CapSurface{Radius: 2, Angle: math.Pi / 3}, nil
	case "cylinder":
		return &CylinderSurface{Radius: 2, Angle: math.Pi / 2, Height: 3}, nil
	}
	return nil, fmt.Errorf("unknown surface: %s", name)
}

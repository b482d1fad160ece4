package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/unixpickle/model3d/model3d"
)

var namedAxes = map[string]model3d.Coord3D{
	"x": model3d.XYZ(1, 0, 0),
	"y": model3d.XYZ(0, 1, 0),
	"z": model3d.XYZ(0, 0, 1),
}

// A VectorFlag is a flag.Value that parses 3D vectors given
// either as comma-delimited components, e.g. "3.0, 2, -1", or as
// the name of an axis, e.g. "y" or "-z".
type VectorFlag struct {
	Value model3d.Coord3D
}

func (v *VectorFlag) String() string {
	var parts [3]string
	for i, x := range v.Value.Array() {
		parts[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strings.Join(parts[:], ",")
}

func (v *VectorFlag) Set(s string) error {
	name := strings.ToLower(strings.TrimSpace(s))
	if axis, ok := namedAxes[strings.TrimPrefix(name, "-")]; ok {
		if strings.HasPrefix(name, "-") {
			axis = axis.Scale(-1)
		}
		v.Value = axis
		return nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("vector does not have exactly three components: %s", s)
	}
	var res [3]float64
	for i, x := range parts {
		x = strings.TrimSpace(x)
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return fmt.Errorf("invalid component '%s' in vector '%s': %s", x, s, err.Error())
		}
		res[i] = f
	}
	v.Value = model3d.NewCoord3DArray(res)
	return nil
}

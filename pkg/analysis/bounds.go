package analysis

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/gobounds/pkg/geometry"
)

// BoundsResult summarizes the bounding volumes of a point set
type BoundsResult struct {
	PointCount  int
	AABB        geometry.AxisAlignedBoundingBox
	OBB         geometry.OrientedBoundingBox
	AABBVolume  float64
	OBBVolume   float64
	VolumeRatio float64 // OBB volume over AABB volume, 0 when the AABB is empty
}

// AnalyzePoints fits both box kinds to points
func AnalyzePoints(points []geometry.Vector3, fitter geometry.Fitter) (*BoundsResult, error) {
	obb, err := fitter.Fit(points)
	if err != nil {
		return nil, fmt.Errorf("failed to fit oriented bounding box: %w", err)
	}

	result := &BoundsResult{
		PointCount: len(points),
		AABB:       geometry.CreateAxisAlignedBoundingBoxFromPoints(points),
		OBB:        obb,
	}
	result.AABBVolume = result.AABB.Volume()
	result.OBBVolume = result.OBB.Volume()
	if !result.AABB.IsEmpty() {
		result.VolumeRatio = result.OBBVolume / result.AABBVolume
	}

	return result, nil
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

// FormatMatrix formats the columns of a frame, one axis per line
func FormatMatrix(m mgl64.Mat3, indent string) string {
	var b strings.Builder
	for i, name := range []string{"X", "Y", "Z"} {
		fmt.Fprintf(&b, "%s%s axis: %s\n", indent, name, FormatVector(geometry.Axis(m, i)))
	}
	return b.String()
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

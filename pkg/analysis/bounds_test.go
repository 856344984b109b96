package analysis

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobounds/pkg/geometry"
)

type brokenHull struct{}

func (brokenHull) Vertices([]r3.Vector) ([]r3.Vector, error) {
	return nil, errors.New("hull exploded")
}

func cuboid(x, y, z float64) []geometry.Vector3 {
	var points []geometry.Vector3
	for _, a := range []float64{0, x} {
		for _, b := range []float64{0, y} {
			for _, c := range []float64{0, z} {
				points = append(points, geometry.NewVector3(a, b, c))
			}
		}
	}
	return points
}

func TestAnalyzePointsAxisAligned(t *testing.T) {
	result, err := AnalyzePoints(cuboid(4, 2, 1), geometry.NewFitter())
	require.NoError(t, err)

	assert.Equal(t, 8, result.PointCount)
	assert.InDelta(t, 8.0, result.AABBVolume, 1e-9)
	assert.InDelta(t, 8.0, result.OBBVolume, 1e-9)
	assert.InDelta(t, 1.0, result.VolumeRatio, 1e-9)
}

func TestAnalyzePointsEmpty(t *testing.T) {
	result, err := AnalyzePoints(nil, geometry.NewFitter())
	require.NoError(t, err)

	assert.Equal(t, 0, result.PointCount)
	assert.True(t, result.AABB.IsEmpty())
	assert.True(t, result.OBB.IsEmpty())
	assert.Zero(t, result.VolumeRatio)
}

func TestAnalyzePointsFitError(t *testing.T) {
	_, err := AnalyzePoints(cuboid(1, 1, 1), geometry.Fitter{Hull: brokenHull{}})
	assert.ErrorContains(t, err, "hull exploded")
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "(1.000000, -2.500000, 0.000000)", FormatVector(geometry.NewVector3(1, -2.5, 0)))
}

func TestFormatMatrix(t *testing.T) {
	out := FormatMatrix(mgl64.Ident3(), "  ")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "  X axis: (1.000000, 0.000000, 0.000000)", lines[0])
	assert.Equal(t, "  Z axis: (0.000000, 0.000000, 1.000000)", lines[2])
}

func TestFormatMeasurement(t *testing.T) {
	assert.Equal(t, "2.000000 units", FormatMeasurement(2, ""))
	assert.Equal(t, "2.000000 mm", FormatMeasurement(2, "mm"))
}

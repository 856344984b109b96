package geometry

import "github.com/go-gl/mathgl/mgl64"

// BoundingVolume is implemented by *AxisAlignedBoundingBox and
// *OrientedBoundingBox.
type BoundingVolume interface {
	GetMinBound() Vector3
	GetMaxBound() Vector3
	GetCenter() Vector3
	Volume() float64
	IsEmpty() bool
	GetBoxPoints() [8]Vector3
	Contains(p Vector3) bool
	GetPointIndicesWithinBoundingBox(points []Vector3) []int
	GetAxisAlignedBoundingBox() AxisAlignedBoundingBox
	GetOrientedBoundingBox() OrientedBoundingBox

	Translate(translation Vector3, relative bool)
	Scale(scale float64, center Vector3)
	Rotate(r mgl64.Mat3, center Vector3) error
	Transform(t mgl64.Mat4) error
}

var (
	_ BoundingVolume = (*AxisAlignedBoundingBox)(nil)
	_ BoundingVolume = (*OrientedBoundingBox)(nil)
)

// ComputeMinBound returns the componentwise minimum of points, or the
// origin for an empty slice.
func ComputeMinBound(points []Vector3) Vector3 {
	if len(points) == 0 {
		return Vector3{}
	}
	m := points[0]
	for _, p := range points[1:] {
		m = m.Min(p)
	}
	return m
}

// ComputeMaxBound returns the componentwise maximum of points, or the
// origin for an empty slice.
func ComputeMaxBound(points []Vector3) Vector3 {
	if len(points) == 0 {
		return Vector3{}
	}
	m := points[0]
	for _, p := range points[1:] {
		m = m.Max(p)
	}
	return m
}

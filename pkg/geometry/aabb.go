package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// AxisAlignedBoundingBox is a box whose faces are parallel to the coordinate
// axes. The zero value is the empty box at the origin.
type AxisAlignedBoundingBox struct {
	MinBound Vector3
	MaxBound Vector3
	Color    Vector3
}

// NewAxisAlignedBoundingBox creates a box from its bounds
func NewAxisAlignedBoundingBox(minBound, maxBound Vector3) AxisAlignedBoundingBox {
	return AxisAlignedBoundingBox{MinBound: minBound, MaxBound: maxBound}
}

// CreateAxisAlignedBoundingBoxFromPoints returns the smallest axis-aligned
// box enclosing points. An empty slice yields the degenerate box at the
// origin.
func CreateAxisAlignedBoundingBoxFromPoints(points []Vector3) AxisAlignedBoundingBox {
	return AxisAlignedBoundingBox{
		MinBound: ComputeMinBound(points),
		MaxBound: ComputeMaxBound(points),
	}
}

// Clear resets both bounds to the origin
func (b *AxisAlignedBoundingBox) Clear() {
	b.MinBound = Vector3{}
	b.MaxBound = Vector3{}
}

// IsEmpty reports whether the box encloses no volume
func (b AxisAlignedBoundingBox) IsEmpty() bool {
	return b.Volume() <= 0
}

// GetMinBound returns the minimum corner
func (b AxisAlignedBoundingBox) GetMinBound() Vector3 {
	return b.MinBound
}

// GetMaxBound returns the maximum corner
func (b AxisAlignedBoundingBox) GetMaxBound() Vector3 {
	return b.MaxBound
}

// GetCenter returns the midpoint of the bounds
func (b AxisAlignedBoundingBox) GetCenter() Vector3 {
	return b.MinBound.Add(b.MaxBound).Mul(0.5)
}

// GetExtent returns the side lengths of the box
func (b AxisAlignedBoundingBox) GetExtent() Vector3 {
	return b.MaxBound.Sub(b.MinBound)
}

// GetHalfExtent returns half the side lengths of the box
func (b AxisAlignedBoundingBox) GetHalfExtent() Vector3 {
	return b.GetExtent().Mul(0.5)
}

// GetMaxExtent returns the longest side length
func (b AxisAlignedBoundingBox) GetMaxExtent() float64 {
	return b.GetExtent().MaxComponent()
}

// Volume returns the product of the side lengths
func (b AxisAlignedBoundingBox) Volume() float64 {
	return b.GetExtent().Prod()
}

// GetAxisAlignedBoundingBox returns a copy of the box
func (b AxisAlignedBoundingBox) GetAxisAlignedBoundingBox() AxisAlignedBoundingBox {
	return b
}

// GetOrientedBoundingBox returns the box as an oriented box with identity
// rotation
func (b AxisAlignedBoundingBox) GetOrientedBoundingBox() OrientedBoundingBox {
	return CreateFromAxisAlignedBoundingBox(b)
}

// Translate moves the box. With relative set both bounds shift by
// translation; otherwise the box is recentered at translation.
func (b *AxisAlignedBoundingBox) Translate(translation Vector3, relative bool) {
	if relative {
		b.MinBound = b.MinBound.Add(translation)
		b.MaxBound = b.MaxBound.Add(translation)
		return
	}
	halfExtent := b.GetHalfExtent()
	b.MinBound = translation.Sub(halfExtent)
	b.MaxBound = translation.Add(halfExtent)
}

// Scale scales both bounds about center. A negative factor mirrors the box;
// the bounds are reordered so MinBound stays componentwise below MaxBound.
func (b *AxisAlignedBoundingBox) Scale(scale float64, center Vector3) {
	lo := center.Add(b.MinBound.Sub(center).Mul(scale))
	hi := center.Add(b.MaxBound.Sub(center).Mul(scale))
	b.MinBound = lo.Min(hi)
	b.MaxBound = lo.Max(hi)
}

// Rotate always fails: a rotated box is no longer axis aligned. Convert to an
// OrientedBoundingBox first.
func (b *AxisAlignedBoundingBox) Rotate(r mgl64.Mat3, center Vector3) error {
	return fmt.Errorf("rotating an axis-aligned bounding box would not keep it axis aligned, convert it to an oriented bounding box first: %w", ErrUnsupportedOperation)
}

// Transform always fails: a general transform does not preserve axis
// alignment. Convert to an OrientedBoundingBox first.
func (b *AxisAlignedBoundingBox) Transform(t mgl64.Mat4) error {
	return fmt.Errorf("a general transform of an axis-aligned bounding box would not keep it axis aligned, convert it to an oriented bounding box first: %w", ErrUnsupportedOperation)
}

// Merge grows the box to the union with other. An empty receiver adopts
// other's bounds and an empty other is ignored.
func (b *AxisAlignedBoundingBox) Merge(other AxisAlignedBoundingBox) {
	if b.IsEmpty() {
		b.MinBound = other.MinBound
		b.MaxBound = other.MaxBound
	} else if !other.IsEmpty() {
		b.MinBound = b.MinBound.Min(other.MinBound)
		b.MaxBound = b.MaxBound.Max(other.MaxBound)
	}
}

// GetBoxPoints returns the eight corners in a fixed order: the minimum
// corner, its three neighbours along x, y and z, the maximum corner, and its
// three neighbours along -x, -y and -z.
func (b AxisAlignedBoundingBox) GetBoxPoints() [8]Vector3 {
	extent := b.GetExtent()
	ex := Vector3{X: extent.X}
	ey := Vector3{Y: extent.Y}
	ez := Vector3{Z: extent.Z}
	return [8]Vector3{
		b.MinBound,
		b.MinBound.Add(ex),
		b.MinBound.Add(ey),
		b.MinBound.Add(ez),
		b.MaxBound,
		b.MaxBound.Sub(ex),
		b.MaxBound.Sub(ey),
		b.MaxBound.Sub(ez),
	}
}

// Contains reports whether p lies inside the box or on its boundary
func (b AxisAlignedBoundingBox) Contains(p Vector3) bool {
	return p.X >= b.MinBound.X && p.X <= b.MaxBound.X &&
		p.Y >= b.MinBound.Y && p.Y <= b.MaxBound.Y &&
		p.Z >= b.MinBound.Z && p.Z <= b.MaxBound.Z
}

// GetPointIndicesWithinBoundingBox returns the indices of points inside the
// box in ascending order
func (b AxisAlignedBoundingBox) GetPointIndicesWithinBoundingBox(points []Vector3) []int {
	indices := make([]int, 0)
	for i, p := range points {
		if b.Contains(p) {
			indices = append(indices, i)
		}
	}
	return indices
}

func (b AxisAlignedBoundingBox) String() string {
	return fmt.Sprintf("[%s - %s]", b.MinBound, b.MaxBound)
}

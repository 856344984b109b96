package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrientedBoundingBox is a box with an arbitrary orthonormal orientation.
// Extent holds full side lengths along the columns of R.
//
// The zero value has a zero rotation and is not a valid box; use
// EmptyOrientedBoundingBox or Clear to obtain the empty box.
type OrientedBoundingBox struct {
	Center Vector3
	Extent Vector3
	R      mgl64.Mat3
	Color  Vector3
}

// NewOrientedBoundingBox creates a box from its center, frame and extent
func NewOrientedBoundingBox(center Vector3, r mgl64.Mat3, extent Vector3) OrientedBoundingBox {
	return OrientedBoundingBox{Center: center, Extent: extent, R: r}
}

// EmptyOrientedBoundingBox returns a zero-sized box at the origin with
// identity rotation
func EmptyOrientedBoundingBox() OrientedBoundingBox {
	return OrientedBoundingBox{R: mgl64.Ident3()}
}

// CreateFromAxisAlignedBoundingBox embeds an axis-aligned box as an oriented
// box with identity rotation
func CreateFromAxisAlignedBoundingBox(box AxisAlignedBoundingBox) OrientedBoundingBox {
	return OrientedBoundingBox{
		Center: box.GetCenter(),
		Extent: box.GetExtent(),
		R:      mgl64.Ident3(),
	}
}

// CreateOrientedBoundingBoxFromPoints fits a box to points with the default
// Fitter. If the covariance cannot be decomposed the axis-aligned box of the
// points is returned instead.
func CreateOrientedBoundingBoxFromPoints(points []Vector3) OrientedBoundingBox {
	box, err := NewFitter().Fit(points)
	if err != nil {
		return CreateFromAxisAlignedBoundingBox(CreateAxisAlignedBoundingBoxFromPoints(points))
	}
	return box
}

// Clear resets the box to EmptyOrientedBoundingBox
func (b *OrientedBoundingBox) Clear() {
	*b = EmptyOrientedBoundingBox()
}

// IsEmpty reports whether the box encloses no volume
func (b OrientedBoundingBox) IsEmpty() bool {
	return b.Volume() <= 0
}

// Volume returns the product of the extents
func (b OrientedBoundingBox) Volume() float64 {
	return b.Extent.Prod()
}

// GetCenter returns the box center
func (b OrientedBoundingBox) GetCenter() Vector3 {
	return b.Center
}

// GetHalfExtent returns half the side lengths
func (b OrientedBoundingBox) GetHalfExtent() Vector3 {
	return b.Extent.Mul(0.5)
}

// GetMinBound returns the minimum corner of the enclosing axis-aligned box
func (b OrientedBoundingBox) GetMinBound() Vector3 {
	points := b.GetBoxPoints()
	return ComputeMinBound(points[:])
}

// GetMaxBound returns the maximum corner of the enclosing axis-aligned box
func (b OrientedBoundingBox) GetMaxBound() Vector3 {
	points := b.GetBoxPoints()
	return ComputeMaxBound(points[:])
}

// GetAxisAlignedBoundingBox returns the axis-aligned box enclosing the eight
// corners
func (b OrientedBoundingBox) GetAxisAlignedBoundingBox() AxisAlignedBoundingBox {
	points := b.GetBoxPoints()
	return CreateAxisAlignedBoundingBoxFromPoints(points[:])
}

// GetOrientedBoundingBox returns a copy of the box
func (b OrientedBoundingBox) GetOrientedBoundingBox() OrientedBoundingBox {
	return b
}

// Translate moves the center by translation, or to translation when
// relative is false
func (b *OrientedBoundingBox) Translate(translation Vector3, relative bool) {
	if relative {
		b.Center = b.Center.Add(translation)
	} else {
		b.Center = translation
	}
}

// Scale scales the box about center. The extent is scaled by |scale| so it
// stays non-negative; a negative factor mirrors the center through center.
func (b *OrientedBoundingBox) Scale(scale float64, center Vector3) {
	b.Extent = b.Extent.Mul(math.Abs(scale))
	b.Center = b.Center.Sub(center).Mul(scale).Add(center)
}

// Rotate applies r about center. The new frame is r*R. r must be
// orthonormal; otherwise the box is left unchanged and an error is returned.
func (b *OrientedBoundingBox) Rotate(r mgl64.Mat3, center Vector3) error {
	if !IsOrthonormal(r, orthonormalTolerance) {
		return fmt.Errorf("rotation matrix is not orthonormal: %w", ErrUnsupportedOperation)
	}
	b.R = r.Mul3(b.R)
	b.Center = MulVec(r, b.Center.Sub(center)).Add(center)
	return nil
}

// Transform always fails: center, extent and an orthonormal frame cannot
// represent shear or non-uniform scaling. Use Translate, Scale and Rotate.
func (b *OrientedBoundingBox) Transform(t mgl64.Mat4) error {
	return fmt.Errorf("a general transform of an oriented bounding box is not supported, use Translate, Scale and Rotate: %w", ErrUnsupportedOperation)
}

// GetBoxPoints returns the eight corners. Corner i is center plus the
// half-extent axes with signs
//
//	0:(-,-,-) 1:(+,-,-) 2:(-,+,-) 3:(-,-,+)
//	4:(+,+,+) 5:(-,+,+) 6:(+,-,+) 7:(+,+,-)
func (b OrientedBoundingBox) GetBoxPoints() [8]Vector3 {
	x := MulVec(b.R, Vector3{X: b.Extent.X / 2})
	y := MulVec(b.R, Vector3{Y: b.Extent.Y / 2})
	z := MulVec(b.R, Vector3{Z: b.Extent.Z / 2})
	c := b.Center
	return [8]Vector3{
		c.Sub(x).Sub(y).Sub(z),
		c.Add(x).Sub(y).Sub(z),
		c.Sub(x).Add(y).Sub(z),
		c.Sub(x).Sub(y).Add(z),
		c.Add(x).Add(y).Add(z),
		c.Sub(x).Add(y).Add(z),
		c.Add(x).Sub(y).Add(z),
		c.Add(x).Add(y).Sub(z),
	}
}

// Contains reports whether p lies inside the box or on its boundary
func (b OrientedBoundingBox) Contains(p Vector3) bool {
	return b.containsOffset(p.Sub(b.Center), b.GetHalfExtent())
}

// containsOffset tests the offset d from the center against half extents
func (b OrientedBoundingBox) containsOffset(d, half Vector3) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(d.Dot(Axis(b.R, i))) > half.Get(i) {
			return false
		}
	}
	return true
}

// GetPointIndicesWithinBoundingBox returns the indices of points inside the
// box in ascending order
func (b OrientedBoundingBox) GetPointIndicesWithinBoundingBox(points []Vector3) []int {
	half := b.GetHalfExtent()
	indices := make([]int, 0)
	for i, p := range points {
		if b.containsOffset(p.Sub(b.Center), half) {
			indices = append(indices, i)
		}
	}
	return indices
}

func (b OrientedBoundingBox) String() string {
	return fmt.Sprintf("OrientedBoundingBox: center: %s, extent: %s", b.Center, b.Extent)
}

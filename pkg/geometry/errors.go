package geometry

import "errors"

var (
	// ErrUnsupportedOperation is returned by operations a box representation
	// cannot express, such as rotating an axis-aligned box or applying a
	// general 4x4 transform to either box kind. The box is left unchanged.
	ErrUnsupportedOperation = errors.New("unsupported bounding box operation")

	// ErrDecomposition is returned when the covariance eigen-decomposition
	// does not converge.
	ErrDecomposition = errors.New("eigen decomposition failed")
)

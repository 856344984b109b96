package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/philipparndt/gobounds/pkg/hull"
)

// Fitter computes oriented bounding boxes by principal component analysis
// of the convex hull of a point set.
type Fitter struct {
	Hull hull.Provider
}

// NewFitter returns a Fitter backed by the Quickhull provider
func NewFitter() Fitter {
	return Fitter{Hull: hull.QuickHull{}}
}

// Fit returns the oriented box enclosing points. The stages run in a fixed
// order:
//  1. convex hull vertices of the input
//  2. mean and covariance of the hull vertices
//  3. symmetric eigen-decomposition, each eigenvector renormalized
//  4. eigenpairs ordered by descending eigenvalue (see orderEigenpairs)
//  5. hull vertices projected into the eigenvector frame
//  6. the axis-aligned box of the projection gives extent and, mapped back
//     to world space, the center
//
// If the resulting box does not hold every input point, stages 2 to 6 are
// repeated over all points.
//
// An empty input yields the empty box. Collinear or coplanar input yields a
// box with a zero extent.
func (f Fitter) Fit(points []Vector3) (OrientedBoundingBox, error) {
	if len(points) == 0 {
		return EmptyOrientedBoundingBox(), nil
	}

	provider := f.Hull
	if provider == nil {
		provider = hull.QuickHull{}
	}
	in := toR3(points)
	verts, err := provider.Vertices(in)
	if err != nil {
		return OrientedBoundingBox{}, fmt.Errorf("failed to compute convex hull: %w", err)
	}

	box, err := fitFrame(fromR3(verts))
	if err != nil {
		return OrientedBoundingBox{}, err
	}

	// a hull that lost extreme points yields a box that misses input points;
	// refit over the whole set
	tol := enclosureTolerance * math.Max(1, hull.Scale(in))
	if !encloses(box, points, tol) {
		return fitFrame(points)
	}
	return box, nil
}

// enclosureTolerance is the relative slack allowed when checking that a
// fitted box holds its input
const enclosureTolerance = 1e-9

// fitFrame runs the PCA stages on points, which are taken as the hull
func fitFrame(points []Vector3) (OrientedBoundingBox, error) {
	mean, cov := ComputeMeanAndCovariance(points)

	evals, r, err := eigenFrame(cov)
	if err != nil {
		return OrientedBoundingBox{}, err
	}
	orderEigenpairs(&evals, &r)

	projected := make([]Vector3, len(points))
	for i, p := range points {
		projected[i] = MulTransposeVec(r, p.Sub(mean))
	}
	local := CreateAxisAlignedBoundingBoxFromPoints(projected)

	return OrientedBoundingBox{
		Center: MulVec(r, local.GetCenter()).Add(mean),
		Extent: local.GetExtent(),
		R:      r,
	}, nil
}

// encloses reports whether every point lies in box, allowing tol past each
// face
func encloses(box OrientedBoundingBox, points []Vector3, tol float64) bool {
	half := box.GetHalfExtent().Add(Splat(tol))
	for _, p := range points {
		if !box.containsOffset(p.Sub(box.Center), half) {
			return false
		}
	}
	return true
}

// ComputeMeanAndCovariance returns the centroid and the sample covariance
// matrix of points. Fewer than two points give a zero covariance.
func ComputeMeanAndCovariance(points []Vector3) (Vector3, *mat.SymDense) {
	cov := mat.NewSymDense(3, nil)
	if len(points) == 0 {
		return Vector3{}, cov
	}

	data := mat.NewDense(len(points), 3, nil)
	for i, p := range points {
		data.Set(i, 0, p.X)
		data.Set(i, 1, p.Y)
		data.Set(i, 2, p.Z)
	}
	mean := Vector3{
		X: stat.Mean(mat.Col(nil, 0, data), nil),
		Y: stat.Mean(mat.Col(nil, 1, data), nil),
		Z: stat.Mean(mat.Col(nil, 2, data), nil),
	}
	if len(points) < 2 {
		return mean, cov
	}
	stat.CovarianceMatrix(cov, data, nil)
	return mean, cov
}

// eigenFrame decomposes the symmetric matrix cov and returns its eigenvalues
// with the matching unit eigenvectors as the columns of a frame.
func eigenFrame(cov *mat.SymDense) ([3]float64, mgl64.Mat3, error) {
	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return [3]float64{}, mgl64.Mat3{}, ErrDecomposition
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	var evals [3]float64
	var cols [3]mgl64.Vec3
	for j := 0; j < 3; j++ {
		evals[j] = values[j]
		col := mgl64.Vec3{vectors.At(0, j), vectors.At(1, j), vectors.At(2, j)}
		cols[j] = col.Mul(1 / col.Len())
	}
	return evals, mgl64.Mat3FromCols(cols[0], cols[1], cols[2]), nil
}

// orderEigenpairs sorts eigenvalues into descending order with three fixed
// compare-and-swap steps on (1,0), (2,0) and (2,1), moving the eigenvector
// columns of r with their values. Equal eigenvalues are never swapped, so
// degenerate axes keep the order the decomposition produced.
func orderEigenpairs(evals *[3]float64, r *mgl64.Mat3) {
	swap := func(i, j int) {
		evals[i], evals[j] = evals[j], evals[i]
		ci, cj := r.Col(i), r.Col(j)
		r.SetCol(i, cj)
		r.SetCol(j, ci)
	}
	if evals[1] > evals[0] {
		swap(1, 0)
	}
	if evals[2] > evals[0] {
		swap(2, 0)
	}
	if evals[2] > evals[1] {
		swap(2, 1)
	}
}

func toR3(points []Vector3) []r3.Vector {
	out := make([]r3.Vector, len(points))
	for i, p := range points {
		out[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

func fromR3(points []r3.Vector) []Vector3 {
	out := make([]Vector3, len(points))
	for i, p := range points {
		out[i] = Vector3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

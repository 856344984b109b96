// Package hull provides convex hull vertex extraction for point sets.
//
// Points are exchanged as r3.Vector. The default provider wraps the
// quickhull-go library and falls back to returning the distinct input points
// when the set does not span three dimensions, where a 3-D hull is undefined.
package hull

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	quickhull "github.com/markus-wa/quickhull-go/v2"
)

// Provider returns the vertices of the convex hull of a point set.
type Provider interface {
	Vertices(points []r3.Vector) ([]r3.Vector, error)
}

// DefaultEpsilon is the relative tolerance quickhull uses when none is given
const DefaultEpsilon = 1e-7

// planarMargin widens the library tolerance for the flatness test that
// decides between the hull and the planar fallback
const planarMargin = 10

// QuickHull computes hull vertices with the Quickhull algorithm.
// Epsilon is passed to the library; zero selects DefaultEpsilon.
type QuickHull struct {
	Epsilon float64
}

var _ Provider = QuickHull{}

// Vertices returns the distinct hull vertices in the order they are first
// referenced by the hull triangles. Inputs that are flat within the library
// tolerance, and inputs whose hull comes back flat, are returned as their
// distinct points in input order.
func (q QuickHull) Vertices(points []r3.Vector) (vertices []r3.Vector, err error) {
	tol := q.tolerance(points)
	if AffineRank(points, tol) < 3 {
		return Distinct(points), nil
	}

	defer func() {
		if r := recover(); r != nil {
			vertices = nil
			err = fmt.Errorf("quickhull failed on %d points: %v", len(points), r)
		}
	}()

	h := new(quickhull.QuickHull).ConvexHull(points, true, false, q.Epsilon)

	seen := make(map[int]bool, len(h.Vertices))
	vertices = make([]r3.Vector, 0, len(h.Vertices))
	for _, idx := range h.Indices {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		vertices = append(vertices, h.Vertices[idx])
	}
	vertices = Distinct(vertices)

	// the library's planar path returns an incomplete outline
	if AffineRank(vertices, tol) < 3 {
		return Distinct(points), nil
	}
	return vertices, nil
}

// tolerance is the absolute flatness tolerance for points, scaled the way
// the library scales its epsilon
func (q QuickHull) tolerance(points []r3.Vector) float64 {
	return math.Max(q.Epsilon, DefaultEpsilon) * planarMargin * Scale(points)
}

// Identity returns its input unchanged. It skips the hull reduction, so a
// fit over it uses every point.
type Identity struct{}

// Vertices returns points
func (Identity) Vertices(points []r3.Vector) ([]r3.Vector, error) {
	return points, nil
}

// Distinct returns points with exact duplicates removed, keeping the first
// occurrence.
func Distinct(points []r3.Vector) []r3.Vector {
	seen := make(map[r3.Vector]bool, len(points))
	out := make([]r3.Vector, 0, len(points))
	for _, p := range points {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Scale returns the largest absolute coordinate of points, the quantity
// quickhull multiplies its epsilon by
func Scale(points []r3.Vector) float64 {
	scale := 0.0
	for _, p := range points {
		scale = math.Max(scale, math.Max(math.Abs(p.X), math.Max(math.Abs(p.Y), math.Abs(p.Z))))
	}
	return scale
}

// AffineRank returns the dimension of the affine span of points: -1 for no
// points, 0 for coincident points, 1 for a line, 2 for a plane and 3
// otherwise. Distances up to tol count as zero.
func AffineRank(points []r3.Vector, tol float64) int {
	if len(points) == 0 {
		return -1
	}
	p0 := points[0]

	// farthest point from p0 spans the line
	var dir r3.Vector
	best := 0.0
	for _, p := range points {
		if d := p.Sub(p0).Norm(); d > best {
			best, dir = d, p.Sub(p0)
		}
	}
	if best <= tol {
		return 0
	}
	dir = dir.Normalize()

	var normal r3.Vector
	best = 0.0
	for _, p := range points {
		c := dir.Cross(p.Sub(p0))
		if n := c.Norm(); n > best {
			best, normal = n, c
		}
	}
	if best <= tol {
		return 1
	}
	normal = normal.Normalize()

	for _, p := range points {
		if math.Abs(normal.Dot(p.Sub(p0))) > tol {
			return 3
		}
	}
	return 2
}

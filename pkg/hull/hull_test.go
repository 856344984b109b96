package hull

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeCorners() []r3.Vector {
	var corners []r3.Vector
	for _, x := range []float64{0, 1} {
		for _, y := range []float64{0, 1} {
			for _, z := range []float64{0, 1} {
				corners = append(corners, r3.Vector{X: x, Y: y, Z: z})
			}
		}
	}
	return corners
}

func TestAffineRank(t *testing.T) {
	tests := []struct {
		name   string
		points []r3.Vector
		want   int
	}{
		{"empty", nil, -1},
		{"single", []r3.Vector{{X: 1, Y: 2, Z: 3}}, 0},
		{"coincident", []r3.Vector{{X: 1}, {X: 1}, {X: 1}}, 0},
		{"line", []r3.Vector{{}, {X: 1, Y: 1, Z: 1}, {X: 3, Y: 3, Z: 3}}, 1},
		{"plane", []r3.Vector{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}, {X: 0.5, Y: 0.2}}, 2},
		{"tilted plane", []r3.Vector{{}, {X: 1, Z: 1}, {Y: 1}, {X: 2, Y: 3, Z: 2}}, 2},
		{"tetrahedron", []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}}, 3},
		{"slab within tolerance", []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1e-10}}, 2},
		{"slab above tolerance", []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1e-8}}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AffineRank(tt.points, 1e-9))
		})
	}
}

func TestScale(t *testing.T) {
	assert.Equal(t, 0.0, Scale(nil))
	assert.Equal(t, 7.0, Scale([]r3.Vector{{X: 1, Y: -7}, {Z: 3}}))
}

// thinSlab returns n points spread over a size x size square with heights
// in [0, thickness], tilted out of the coordinate planes
func thinSlab(rng *rand.Rand, n int, size, thickness float64) []r3.Vector {
	u := r3.Vector{X: 1, Y: 1, Z: 0}.Normalize()
	v := r3.Vector{X: -1, Y: 1, Z: 1}.Normalize()
	w := u.Cross(v).Normalize()
	points := make([]r3.Vector, n)
	for i := range points {
		points[i] = u.Mul(size * rng.Float64()).
			Add(v.Mul(size * rng.Float64())).
			Add(w.Mul(thickness * rng.Float64()))
	}
	return points
}

func TestQuickHullNearlyPlanarFallsBack(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, thickness := range []float64{1e-5, 1e-6, 1e-7, 1e-8} {
		points := thinSlab(rng, 30, 100, thickness)

		verts, err := QuickHull{}.Vertices(points)
		require.NoError(t, err)
		assert.Equal(t, Distinct(points), verts, "thickness %g", thickness)
	}
}

func TestDistinctKeepsFirstOccurrence(t *testing.T) {
	points := []r3.Vector{{X: 1}, {Y: 1}, {X: 1}, {Z: 1}, {Y: 1}}
	assert.Equal(t, []r3.Vector{{X: 1}, {Y: 1}, {Z: 1}}, Distinct(points))
}

func TestQuickHullCubeDropsInteriorPoints(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := cubeCorners()
	for i := 0; i < 100; i++ {
		points = append(points, r3.Vector{
			X: 0.1 + 0.8*rng.Float64(),
			Y: 0.1 + 0.8*rng.Float64(),
			Z: 0.1 + 0.8*rng.Float64(),
		})
	}
	rng.Shuffle(len(points), func(i, j int) { points[i], points[j] = points[j], points[i] })

	verts, err := QuickHull{}.Vertices(points)
	require.NoError(t, err)
	assert.ElementsMatch(t, cubeCorners(), verts)
}

func TestQuickHullDegenerateFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		points []r3.Vector
		want   []r3.Vector
	}{
		{"empty", nil, []r3.Vector{}},
		{"duplicates", []r3.Vector{{X: 2}, {X: 2}}, []r3.Vector{{X: 2}}},
		{"collinear", []r3.Vector{{X: 0}, {X: 1}, {X: 2}, {X: 1}}, []r3.Vector{{X: 0}, {X: 1}, {X: 2}}},
		{"coplanar", []r3.Vector{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}, []r3.Vector{{}, {X: 1}, {Y: 1}, {X: 1, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts, err := QuickHull{}.Vertices(tt.points)
			require.NoError(t, err)
			assert.Equal(t, tt.want, verts)
		})
	}
}

func TestIdentity(t *testing.T) {
	points := []r3.Vector{{X: 1}, {X: 1}, {Y: 2}}
	verts, err := Identity{}.Vertices(points)
	require.NoError(t, err)
	assert.Equal(t, points, verts)
}

// Package query answers point containment queries against bounding volumes.
//
// Sequential scans the points once. ParallelCompact produces the same
// indices in the same order with a two-phase block scan: block match counts
// are computed in parallel, combined into exclusive prefix offsets, and each
// block is then rescanned to write its matches into disjoint slots of an
// exactly sized result.
package query

import (
	"golang.org/x/sync/errgroup"

	"github.com/philipparndt/gobounds/pkg/geometry"
)

// Container is a closed region that can test point membership
type Container interface {
	Contains(p geometry.Vector3) bool
}

// Sequential returns the indices of points inside c in ascending order
func Sequential(c Container, points []geometry.Vector3) []int {
	indices := make([]int, 0)
	for i, p := range points {
		if c.Contains(p) {
			indices = append(indices, i)
		}
	}
	return indices
}

// ParallelCompact returns the indices of points inside c in ascending order.
// The result is identical to Sequential for every block size and worker
// count.
func ParallelCompact(c Container, points []geometry.Vector3, opts Options) []int {
	opts = opts.normalized()
	n := len(points)
	if n == 0 {
		return []int{}
	}

	numBlocks := (n + opts.BlockSize - 1) / opts.BlockSize
	block := func(b int) (int, int) {
		start := b * opts.BlockSize
		return start, min(start+opts.BlockSize, n)
	}

	// phase 1: per-block match counts
	counts := make([]int, numBlocks)
	forEachBlock(numBlocks, opts.Workers, func(b int) {
		start, end := block(b)
		count := 0
		for i := start; i < end; i++ {
			if c.Contains(points[i]) {
				count++
			}
		}
		counts[b] = count
	})

	offsets, total := ExclusiveScan(counts)
	result := make([]int, total)
	if total == 0 {
		return result
	}

	// phase 2: rescan with known offsets, each block owns
	// result[offsets[b] : offsets[b]+counts[b]]
	forEachBlock(numBlocks, opts.Workers, func(b int) {
		if counts[b] == 0 {
			return
		}
		start, end := block(b)
		rank := offsets[b]
		for i := start; i < end; i++ {
			if c.Contains(points[i]) {
				rank++
				result[rank-1] = i
			}
		}
	})

	return result
}

// ExclusiveScan returns, for each position, the sum of all counts strictly
// before it, together with the total.
func ExclusiveScan(counts []int) ([]int, int) {
	offsets := make([]int, len(counts))
	sum := 0
	for i, c := range counts {
		offsets[i] = sum
		sum += c
	}
	return offsets, sum
}

// forEachBlock runs fn for every block index with at most workers calls in
// flight and returns once all have finished.
func forEachBlock(numBlocks, workers int, fn func(b int)) {
	if numBlocks == 1 || workers == 1 {
		for b := 0; b < numBlocks; b++ {
			fn(b)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for b := 0; b < numBlocks; b++ {
		b := b
		g.Go(func() error {
			fn(b)
			return nil
		})
	}
	_ = g.Wait()
}

// AABBIndices returns the indices of points inside box, scanning in parallel
func AABBIndices(box geometry.AxisAlignedBoundingBox, points []geometry.Vector3, opts Options) []int {
	return ParallelCompact(box, points, opts)
}

// OBBIndices returns the indices of points inside box, scanning in parallel
func OBBIndices(box geometry.OrientedBoundingBox, points []geometry.Vector3, opts Options) []int {
	return ParallelCompact(box, points, opts)
}

// Package smooth implements iterative vertex-position relaxation for
// half-edge triangle meshes: uniform and cotangent-weighted Laplacian
// smoothing, Taubin's sign-alternating smoothing, anisotropic
// feature-preserving smoothing driven by filtered face normals, and a
// boundary-aware tangential area-weighted Laplacian.
//
// All drivers operate on a caller-owned mesh with fixed connectivity and
// only move vertex positions. Within one sweep every vertex update reads
// the same prior position snapshot: updates are written to a fresh
// buffer and committed with an O(1) buffer swap, never in place, except
// where a driver's math makes in-place commits safe.
package smooth

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
)

// Operator computes a displacement for vertex v relative to its current
// position from the vertex's one-ring neighborhood. Laplacian and
// CotanLaplacian are the two operators shipped with this package.
type Operator func(m *hemesh.Manifold, v hemesh.VertexID) r3.Vec

// LaplacianSmooth relaxes interior vertices toward the uniform Laplacian
// for maxIter iterations with the given step weight. Boundary vertices
// never move. Sweeps run on workers goroutines over disjoint vertex
// batches; workers <= 0 selects DefaultWorkers.
func LaplacianSmooth(m *hemesh.Manifold, weight float64, maxIter, workers int) {
	LaplacianSmoothOp(m, weight, maxIter, workers, Laplacian)
}

// LaplacianSmoothOp is LaplacianSmooth with a caller-chosen displacement
// operator, e.g. CotanLaplacian.
func LaplacianSmoothOp(m *hemesh.Manifold, weight float64, maxIter, workers int, op Operator) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	batches := batchVertices(m, workers)
	// next is seeded with the current positions so that boundary
	// vertices, which no batch ever writes, keep their position across
	// buffer swaps.
	next := m.Positions().Clone()
	update := func(vids []hemesh.VertexID) {
		for _, v := range vids {
			next.Set(v, r3.Add(m.Pos(v), r3.Scale(weight, op(m, v))))
		}
	}
	for iter := 0; iter < maxIter; iter++ {
		forEachBatchParallel(batches, update)
		m.SwapPositions(next)
	}
}

// Default Taubin step multipliers. The inflate step is slightly larger
// in magnitude than the shrink step, which counteracts the surface
// shrinkage of plain Laplacian smoothing.
const (
	TaubinLambda = 0.5
	TaubinMu     = -0.52
)

// TaubinSmooth runs 2*maxIter uniform Laplacian sub-iterations with the
// step multiplier alternating between TaubinLambda and TaubinMu.
// Boundary vertices never move.
func TaubinSmooth(m *hemesh.Manifold, maxIter int) {
	TaubinSmoothSteps(m, maxIter, TaubinLambda, TaubinMu)
}

// TaubinSmoothSteps is TaubinSmooth with caller-chosen step multipliers.
// lambda applies on even sub-iterations, mu on odd ones.
func TaubinSmoothSteps(m *hemesh.Manifold, maxIter int, lambda, mu float64) {
	next := m.Positions().Clone()
	for iter := 0; iter < 2*maxIter; iter++ {
		step := lambda
		if iter%2 == 1 {
			step = mu
		}
		m.ForEachVertex(func(v hemesh.VertexID) {
			if !m.IsBoundary(v) {
				next.Set(v, r3.Add(m.Pos(v), r3.Scale(step, Laplacian(m, v))))
			}
		})
		m.SwapPositions(next)
	}
}

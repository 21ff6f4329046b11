package smooth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/internal/d3"
)

// Laplacian returns the uniform Laplacian of vertex v: the mean
// displacement from v to its one-ring neighbors. It is the zero vector
// for a vertex with no neighbors.
func Laplacian(m *hemesh.Manifold, v hemesh.VertexID) r3.Vec {
	var sum r3.Vec
	n := 0
	for w := m.WalkVertex(v); !w.FullCircle(); w = w.CirculateVertexCCW() {
		sum = r3.Add(sum, m.Pos(w.Vertex()))
		n++
	}
	if n == 0 {
		return r3.Vec{}
	}
	return r3.Sub(r3.Scale(1/float64(n), sum), m.Pos(v))
}

// CotanLaplacian returns the cotangent-weighted Laplacian of vertex v,
// a discretization of the Laplace-Beltrami operator. Each neighbor is
// weighted from the two angles opposite the connecting edge in its
// flanking triangles. Degenerate one-rings with a vanishing or
// non-finite weight sum yield the zero vector instead of NaN positions.
//
// v must be an interior vertex; the flanking-triangle lookups assume a
// valid face on both sides of every incident edge.
func CotanLaplacian(m *hemesh.Manifold, v hemesh.VertexID) r3.Vec {
	var p r3.Vec
	pos := m.Pos(v)
	wSum := 0.0
	for w := m.WalkVertex(v); !w.FullCircle(); w = w.CirculateVertexCCW() {
		nbr := m.Pos(w.Vertex())
		left := m.Pos(w.Next().Vertex())
		right := m.Pos(w.Opp().Prev().Opp().Vertex())

		dLeft := r3.Dot(d3.CondUnit(r3.Sub(nbr, left)),
			d3.CondUnit(r3.Sub(pos, left)))
		dRight := r3.Dot(d3.CondUnit(r3.Sub(nbr, right)),
			d3.CondUnit(r3.Sub(pos, right)))
		aLeft := math.Acos(math.Min(1, math.Max(-1, dLeft)))
		aRight := math.Acos(math.Min(1, math.Max(-1, dRight)))

		wt := math.Sin(aLeft+aRight) / (1e-10 + math.Sin(aLeft)*math.Sin(aRight))
		p = r3.Add(p, r3.Scale(wt, nbr))
		wSum += wt
	}
	if wSum < 1e-20 || !d3.Finite(p) {
		return r3.Vec{}
	}
	return r3.Sub(r3.Scale(1/wSum, p), pos)
}

package smooth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/internal/d3"
)

// TALSmooth runs maxIter iterations of tangential area-weighted
// Laplacian smoothing with step weight w. Interior vertices move toward
// the neighbor-area weighted mean of their one-ring, which equalizes
// triangle sizes with little normal drift. Boundary vertices move only
// toward boundary neighbors and are damped by how sharply the boundary
// turns at them, so corners survive while straight boundary runs relax.
//
// All Laplacians of one iteration are computed from the pre-update
// position field before any position is written, so the commit is done
// in place without a buffer swap.
func TALSmooth(m *hemesh.Manifold, w float64, maxIter int) {
	for iter := 0; iter < maxIter; iter++ {
		vertexAreas := hemesh.NewVertexAttr(m.NumVertices(), 0.0)
		laplacians := hemesh.NewVertexAttr(m.NumVertices(), r3.Vec{})

		m.ForEachVertex(func(v hemesh.VertexID) {
			area := 0.0
			for wk := m.WalkVertex(v); !wk.FullCircle(); wk = wk.CirculateVertexCCW() {
				if f := wk.Face(); f != hemesh.InvalidFaceID {
					area += m.FaceArea(f)
				}
			}
			vertexAreas.Set(v, area)
		})

		m.ForEachVertex(func(v hemesh.VertexID) {
			var lap r3.Vec
			weightSum := 0.0
			pos := m.Pos(v)
			if m.IsBoundary(v) {
				// Turning angle of the interior wedge decides how much
				// the vertex may move: a locally straight boundary
				// (angle sum near pi) passes almost fully, a sharp
				// corner is damped to nearly zero.
				angleSum := 0.0
				for wk := m.WalkVertex(v); !wk.FullCircle(); wk = wk.CirculateVertexCCW() {
					if wk.Face() != hemesh.InvalidFaceID {
						vecA := d3.CondUnit(r3.Sub(m.Pos(wk.Vertex()), pos))
						vecB := d3.CondUnit(r3.Sub(m.Pos(wk.CirculateVertexCCW().Vertex()), pos))
						angleSum += math.Acos(math.Min(1, math.Max(-1, r3.Dot(vecA, vecB))))
					}
					if m.IsBoundary(wk.Vertex()) {
						lap = r3.Add(lap, r3.Sub(m.Pos(wk.Vertex()), pos))
						weightSum++
					}
				}
				if weightSum == 0 {
					return
				}
				lap = r3.Scale(1/weightSum, lap)
				lap = r3.Scale(math.Exp(-3*sqr(math.Max(0, math.Pi-angleSum))), lap)
			} else {
				for wk := m.WalkVertex(v); !wk.FullCircle(); wk = wk.CirculateVertexCCW() {
					weight := vertexAreas.At(wk.Vertex())
					lap = r3.Add(lap, r3.Scale(weight, r3.Sub(m.Pos(wk.Vertex()), pos)))
					weightSum += weight
				}
				if weightSum < 1e-20 {
					return // degenerate one-ring, no displacement
				}
				lap = r3.Scale(1/weightSum, lap)
			}
			if !d3.Finite(lap) {
				return
			}
			laplacians.Set(v, lap)
		})

		m.ForEachVertex(func(v hemesh.VertexID) {
			m.SetPos(v, r3.Add(m.Pos(v), r3.Scale(w, laplacians.At(v))))
		})
	}
}

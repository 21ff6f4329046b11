package smooth

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
)

// DefaultFitIterations caps the inner plane-fitting loop of
// AnisotropicSmooth. The loop normally exits earlier on convergence;
// the cap is a safety bound for meshes that refuse to settle.
const DefaultFitIterations = 100

// AnisotropicSmooth runs maxIter iterations of feature-preserving
// smoothing. Each iteration first denoises the face normal field with
// the selected filter, then relaxes vertex positions onto the planes
// the filtered normals describe. Decoupling "what the surface should
// locally look like" from "how vertices move to match it" is what
// preserves sharp features that plain Laplacian smoothing rounds off.
func AnisotropicSmooth(m *hemesh.Manifold, maxIter int, filter NormalFilter) {
	AnisotropicSmoothFit(m, maxIter, DefaultFitIterations, filter)
}

// AnisotropicSmoothFit is AnisotropicSmooth with a caller-chosen cap on
// the inner fitting loop.
func AnisotropicSmoothFit(m *hemesh.Manifold, maxIter, fitIter int, filter NormalFilter) {
	for iter := 0; iter < maxIter; iter++ {
		avgLen := m.MeanEdgeLength()

		filtered := hemesh.NewFaceAttr(m.NumFaces(), r3.Vec{})
		m.ForEachFace(func(f hemesh.FaceID) {
			if filter == BilateralNormalFilter {
				filtered.Set(f, bilateralFilteredNormal(m, f, avgLen))
			} else {
				filtered.Set(f, medianFilteredNormal(m, f))
			}
		})

		// The accumulators live across sub-iterations: each sub-pass
		// adds another projected position per incident half-edge and
		// the commit uses the running mean, which damps the fit as it
		// converges.
		posAcc := hemesh.NewVertexAttr(m.NumVertices(), r3.Vec{})
		count := hemesh.NewVertexAttr(m.NumVertices(), 0)
		for sub := 0; sub < fitIter; sub++ {
			m.ForEachHalfEdge(func(h hemesh.HalfEdgeID) {
				w := m.WalkHalfEdge(h)
				f := w.Face()
				if f == hemesh.InvalidFaceID {
					return
				}
				v := w.Vertex()
				dir := r3.Sub(m.Pos(w.Opp().Vertex()), m.Pos(v))
				n := filtered.At(f)
				proj := r3.Add(m.Pos(v), r3.Scale(0.5*r3.Dot(n, dir), n))
				posAcc.Set(v, r3.Add(posAcc.At(v), proj))
				count.Set(v, count.At(v)+1)
			})
			maxMove := 0.0
			m.ForEachVertex(func(v hemesh.VertexID) {
				c := count.At(v)
				if c == 0 {
					return // no incident face, vertex stays put
				}
				npos := r3.Scale(1/float64(c), posAcc.At(v))
				move := r3.Norm2(r3.Sub(npos, m.Pos(v)))
				if move > maxMove {
					maxMove = move
				}
				m.SetPos(v, npos)
			})
			if maxMove < sqr(1e-8*avgLen) {
				break
			}
		}
	}
}

func sqr(x float64) float64 { return x * x }

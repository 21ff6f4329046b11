package smooth

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
	"github.com/soypat/hemesh/internal/d3"
)

// NormalFilter selects the face-normal denoising kernel used by
// AnisotropicSmooth.
type NormalFilter int

const (
	// MedianNormalFilter re-weights neighborhood normals around the
	// most typical one with a sharp exponential cutoff, which keeps
	// creases intact.
	MedianNormalFilter NormalFilter = iota
	// BilateralNormalFilter combines an angular-proximity kernel with a
	// spatial-proximity kernel over face centroids.
	BilateralNormalFilter
)

// FaceNeighborhood returns f followed by every face sharing at least one
// vertex with f, each face exactly once. This is the one-ring of faces
// around a face, wider than mere edge adjacency.
func FaceNeighborhood(m *hemesh.Manifold, f hemesh.FaceID) []hemesh.FaceID {
	touched := hemesh.NewFaceAttr(m.NumFaces(), false)
	touched.Set(f, true)
	nbrs := []hemesh.FaceID{f}
	for wf := m.WalkFace(f); !wf.FullCircle(); wf = wf.CirculateFaceCW() {
		for wv := m.WalkVertex(wf.Vertex()); !wv.FullCircle(); wv = wv.CirculateVertexCW() {
			fn := wv.Face()
			if fn != hemesh.InvalidFaceID && !touched.At(fn) {
				nbrs = append(nbrs, fn)
				touched.Set(fn, true)
			}
		}
	}
	return nbrs
}

// medianFilteredNormal denoises the normal of face f against its face
// neighborhood. The neighbor normal with the smallest total
// dissimilarity sum(1-dot) acts as a robust median; every neighbor is
// then re-weighted by exp((dot(median,n)-1)/sigma) with weights below
// the cutoff zeroed, so near-orthogonal outliers across a crease do not
// bleed in.
func medianFilteredNormal(m *hemesh.Manifold, f hemesh.FaceID) r3.Vec {
	const sigma = 0.1

	nbrs := FaceNeighborhood(m, f)
	normals := make([]r3.Vec, len(nbrs))
	minDistSum := math.MaxFloat64
	median := 0
	for i, nbr := range nbrs {
		normals[i] = m.FaceNormal(nbr)
	}
	for i := range normals {
		distSum := 0.0
		for j := range normals {
			distSum += 1 - r3.Dot(normals[i], normals[j])
		}
		if distSum < minDistSum {
			minDistSum = distSum
			median = i
		}
	}
	medianNorm := normals[median]
	var avg r3.Vec
	for i := range normals {
		wt := math.Exp((r3.Dot(medianNorm, normals[i]) - 1) / sigma)
		if wt < 1e-2 {
			wt = 0
		}
		avg = r3.Add(avg, r3.Scale(wt, normals[i]))
	}
	return d3.CondUnit(avg)
}

// bilateralFilteredNormal denoises the normal of face f as the
// normalized sum of area-scaled neighborhood normals weighted by
// angular proximity to f's normal and spatial proximity of centroids.
// avgLen sets the spatial kernel scale and should be the mesh mean
// edge length.
func bilateralFilteredNormal(m *hemesh.Manifold, f hemesh.FaceID, avgLen float64) r3.Vec {
	nbrs := FaceNeighborhood(m, f)
	p0 := m.FaceCentroid(f)
	n0 := m.FaceNormal(f)
	var fn r3.Vec
	for _, nbr := range nbrs {
		n := m.FaceNormal(nbr)
		p := m.FaceCentroid(nbr)
		wa := math.Exp(-math.Acos(math.Min(1, math.Max(-1, r3.Dot(n, n0)))) / (math.Pi / 32))
		ws := math.Exp(-r3.Norm(r3.Sub(p, p0)) / avgLen)
		fn = r3.Add(fn, r3.Scale(m.FaceArea(nbr)*wa*ws, n))
	}
	return d3.CondUnit(fn)
}

package hemesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh/internal/d3"
)

// Per-face and per-edge geometry queries. All of these read the live
// position buffer; none of them mutate the mesh.

// faceAreaVector returns the Newell area vector of face f, whose norm
// is twice the face area and whose direction is the face normal.
func (m *Manifold) faceAreaVector(f FaceID) r3.Vec {
	var n r3.Vec
	for w := m.WalkFace(f); !w.FullCircle(); w = w.CirculateFaceCCW() {
		a := m.Pos(w.Prev().Vertex())
		b := m.Pos(w.Vertex())
		n = r3.Add(n, r3.Cross(a, b))
	}
	return n
}

// FaceNormal returns the unit normal of face f, or the zero vector for
// a degenerate face.
func (m *Manifold) FaceNormal(f FaceID) r3.Vec {
	return d3.CondUnit(m.faceAreaVector(f))
}

// FaceArea returns the surface area of face f.
func (m *Manifold) FaceArea(f FaceID) float64 {
	return 0.5 * r3.Norm(m.faceAreaVector(f))
}

// FaceCentroid returns the mean of the vertex positions of face f.
func (m *Manifold) FaceCentroid(f FaceID) r3.Vec {
	var c r3.Vec
	n := 0
	for w := m.WalkFace(f); !w.FullCircle(); w = w.CirculateFaceCCW() {
		c = r3.Add(c, m.Pos(w.Vertex()))
		n++
	}
	return r3.Scale(1/float64(n), c)
}

// EdgeLength returns the length of half-edge h.
func (m *Manifold) EdgeLength(h HalfEdgeID) float64 {
	he := m.hedges[h]
	from := m.hedges[he.opp].vert
	return r3.Norm(r3.Sub(m.Pos(he.vert), m.Pos(from)))
}

// MeanEdgeLength returns the mean half-edge length over the whole mesh.
// Both half-edges of an edge have equal length, so this equals the mean
// edge length.
func (m *Manifold) MeanEdgeLength() float64 {
	if len(m.hedges) == 0 {
		return 0
	}
	sum := 0.0
	m.ForEachHalfEdge(func(h HalfEdgeID) {
		sum += m.EdgeLength(h)
	})
	return sum / float64(len(m.hedges))
}

// VertexNormal returns the angle-weighted average of the normals of the
// faces incident to v, or the zero vector if v has no incident face.
func (m *Manifold) VertexNormal(v VertexID) r3.Vec {
	var n r3.Vec
	p := m.Pos(v)
	for w := m.WalkVertex(v); !w.FullCircle(); w = w.CirculateVertexCCW() {
		f := w.Face()
		if f == InvalidFaceID {
			continue
		}
		// Wedge opening angle at v weights the face normal.
		a := d3.CondUnit(r3.Sub(m.Pos(w.Vertex()), p))
		b := d3.CondUnit(r3.Sub(m.Pos(w.CirculateVertexCCW().Vertex()), p))
		alpha := math.Acos(math.Min(1, math.Max(-1, r3.Dot(a, b))))
		n = r3.Add(n, r3.Scale(alpha, m.FaceNormal(f)))
	}
	return d3.CondUnit(n)
}

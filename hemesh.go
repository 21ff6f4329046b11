// Package hemesh implements a half-edge boundary representation for
// triangle meshes along with the connectivity queries used by the
// smoothing algorithms in the smooth subpackage.
//
// Entities are referenced by dense integer handles (VertexID, FaceID,
// HalfEdgeID). A negative handle is invalid and marks "no such entity":
// a half-edge on the outer rim of an open mesh has no incident face and
// reports InvalidFaceID. Connectivity is fixed after construction; only
// vertex positions are mutable.
package hemesh

import "gonum.org/v1/gonum/spatial/r3"

// VertexID is a stable handle to a mesh vertex.
type VertexID int

// FaceID is a stable handle to a mesh face.
type FaceID int

// HalfEdgeID is a stable handle to one directed side of a mesh edge.
type HalfEdgeID int

// Invalid entity handles. Connectivity queries return these to signal
// the absence of an entity, e.g. the face side of a boundary half-edge.
const (
	InvalidVertexID   VertexID   = -1
	InvalidFaceID     FaceID     = -1
	InvalidHalfEdgeID HalfEdgeID = -1
)

type halfEdgeRecord struct {
	next HalfEdgeID
	prev HalfEdgeID
	opp  HalfEdgeID
	// vert is the vertex this half-edge points to.
	vert VertexID
	// face on the left of the half-edge. InvalidFaceID along a boundary.
	face FaceID
}

type vertexRecord struct {
	// out is an outgoing half-edge. For a boundary vertex it is
	// the outgoing boundary half-edge, which makes IsBoundary O(1).
	out HalfEdgeID
}

type faceRecord struct {
	edge HalfEdgeID
}

// Manifold is a half-edge triangle mesh. The zero value is an empty mesh;
// use FromTriangles or FromSoup to build one. Boundaries are represented
// by explicit half-edges with an invalid face chained into boundary loops,
// so circulating a vertex or face always terminates.
type Manifold struct {
	verts  []vertexRecord
	faces  []faceRecord
	hedges []halfEdgeRecord
	pos    *VertexAttr[r3.Vec]
}

// NumVertices returns the number of allocated vertices.
func (m *Manifold) NumVertices() int { return len(m.verts) }

// NumFaces returns the number of allocated faces.
func (m *Manifold) NumFaces() int { return len(m.faces) }

// NumHalfEdges returns the number of allocated half-edges,
// boundary half-edges included.
func (m *Manifold) NumHalfEdges() int { return len(m.hedges) }

// ForEachVertex calls f for every vertex of the mesh.
func (m *Manifold) ForEachVertex(f func(VertexID)) {
	for v := range m.verts {
		f(VertexID(v))
	}
}

// ForEachFace calls f for every face of the mesh.
func (m *Manifold) ForEachFace(f func(FaceID)) {
	for fc := range m.faces {
		f(FaceID(fc))
	}
}

// ForEachHalfEdge calls f for every half-edge of the mesh,
// boundary half-edges included.
func (m *Manifold) ForEachHalfEdge(f func(HalfEdgeID)) {
	for h := range m.hedges {
		f(HalfEdgeID(h))
	}
}

// Pos returns the position of vertex v.
func (m *Manifold) Pos(v VertexID) r3.Vec { return m.pos.At(v) }

// SetPos sets the position of vertex v.
func (m *Manifold) SetPos(v VertexID, p r3.Vec) { m.pos.Set(v, p) }

// Positions returns the live vertex position buffer. Writes through the
// returned attribute vector are visible to the mesh immediately.
func (m *Manifold) Positions() *VertexAttr[r3.Vec] { return m.pos }

// SwapPositions exchanges the mesh position buffer with buf in O(1).
// The smoothing drivers use this to commit a fully computed sweep at once.
func (m *Manifold) SwapPositions(buf *VertexAttr[r3.Vec]) { m.pos.Swap(buf) }

// IsBoundary reports whether vertex v lies on a mesh boundary.
func (m *Manifold) IsBoundary(v VertexID) bool {
	out := m.verts[v].out
	if out == InvalidHalfEdgeID {
		// Isolated vertex, counts as boundary.
		return true
	}
	return m.hedges[out].face == InvalidFaceID
}

// Valency returns the number of one-ring neighbors of vertex v.
func (m *Manifold) Valency(v VertexID) int {
	n := 0
	for w := m.WalkVertex(v); !w.FullCircle(); w = w.CirculateVertexCCW() {
		n++
	}
	return n
}

// Clone returns a deep copy of the mesh sharing no storage with m.
func (m *Manifold) Clone() *Manifold {
	c := &Manifold{
		verts:  append([]vertexRecord(nil), m.verts...),
		faces:  append([]faceRecord(nil), m.faces...),
		hedges: append([]halfEdgeRecord(nil), m.hedges...),
		pos:    m.pos.Clone(),
	}
	return c
}

// Triangles flattens the mesh faces into a triangle soup.
// Faces with more than three sides are fan-triangulated.
func (m *Manifold) Triangles() []Triangle {
	tris := make([]Triangle, 0, m.NumFaces())
	m.ForEachFace(func(f FaceID) {
		var poly []r3.Vec
		for w := m.WalkFace(f); !w.FullCircle(); w = w.CirculateFaceCCW() {
			poly = append(poly, m.Pos(w.Vertex()))
		}
		for i := 2; i < len(poly); i++ {
			tris = append(tris, Triangle{poly[0], poly[i-1], poly[i]})
		}
	})
	return tris
}

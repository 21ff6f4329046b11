package hemesh

// Walker is a transient cursor over the half-edges incident to a vertex
// or bounding a face. It is a small value type; every step returns a new
// Walker, leaving the original usable. Circulation is bounded by the
// degree of the entity the walk started from:
//
//	for w := m.WalkVertex(v); !w.FullCircle(); w = w.CirculateVertexCCW() {
//		nbr := w.Vertex()
//	}
//
// Walks are iterative with O(1) state; there is no recursion and no
// allocation per step.
type Walker struct {
	m     *Manifold
	hedge HalfEdgeID
	start HalfEdgeID
	steps int
}

// WalkVertex returns a walker over the half-edges going out of v.
// For each circulation step Vertex reports one one-ring neighbor and
// Face the face on the left of the outgoing half-edge.
func (m *Manifold) WalkVertex(v VertexID) Walker {
	out := m.verts[v].out
	return Walker{m: m, hedge: out, start: out}
}

// WalkFace returns a walker over the half-edges bounding face f.
func (m *Manifold) WalkFace(f FaceID) Walker {
	e := m.faces[f].edge
	return Walker{m: m, hedge: e, start: e}
}

// WalkHalfEdge returns a walker positioned at half-edge h.
func (m *Manifold) WalkHalfEdge(h HalfEdgeID) Walker {
	return Walker{m: m, hedge: h, start: h}
}

// FullCircle reports whether the walker has circulated back to its
// starting half-edge. It is true immediately for a walker bound to an
// isolated vertex.
func (w Walker) FullCircle() bool {
	return w.hedge == InvalidHalfEdgeID || (w.steps > 0 && w.hedge == w.start)
}

// HalfEdge returns the half-edge the walker is positioned at.
func (w Walker) HalfEdge() HalfEdgeID { return w.hedge }

// Vertex returns the vertex the current half-edge points to.
func (w Walker) Vertex() VertexID { return w.m.hedges[w.hedge].vert }

// Face returns the face on the left of the current half-edge, or
// InvalidFaceID if the walker has stepped onto a boundary half-edge.
func (w Walker) Face() FaceID { return w.m.hedges[w.hedge].face }

// Next relocates the walker to the next half-edge in its face loop.
func (w Walker) Next() Walker {
	w.hedge = w.m.hedges[w.hedge].next
	return w
}

// Prev relocates the walker to the previous half-edge in its face loop.
func (w Walker) Prev() Walker {
	w.hedge = w.m.hedges[w.hedge].prev
	return w
}

// Opp relocates the walker to the oppositely directed half-edge.
func (w Walker) Opp() Walker {
	w.hedge = w.m.hedges[w.hedge].opp
	return w
}

// CirculateVertexCCW steps counterclockwise to the next outgoing
// half-edge around the walk's vertex.
func (w Walker) CirculateVertexCCW() Walker {
	w.hedge = w.m.hedges[w.m.hedges[w.hedge].prev].opp
	w.steps++
	return w
}

// CirculateVertexCW steps clockwise to the next outgoing half-edge
// around the walk's vertex.
func (w Walker) CirculateVertexCW() Walker {
	w.hedge = w.m.hedges[w.m.hedges[w.hedge].opp].next
	w.steps++
	return w
}

// CirculateFaceCCW steps counterclockwise along the walk's face loop.
func (w Walker) CirculateFaceCCW() Walker {
	w.hedge = w.m.hedges[w.hedge].next
	w.steps++
	return w
}

// CirculateFaceCW steps clockwise along the walk's face loop.
func (w Walker) CirculateFaceCW() Walker {
	w.hedge = w.m.hedges[w.hedge].prev
	w.steps++
	return w
}

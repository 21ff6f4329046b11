package hemesh

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh/internal/d3"
)

var (
	// ErrNonManifold is returned when the input triangles describe
	// topology a half-edge structure cannot represent: an edge shared
	// by more than two faces, inconsistent winding, or a vertex on
	// more than one boundary loop.
	ErrNonManifold = errors.New("hemesh: non-manifold topology")
	// ErrEmptyMesh is returned when no usable triangles are supplied.
	ErrEmptyMesh = errors.New("hemesh: no triangles")
)

// FromTriangles builds a half-edge mesh from indexed triangles with
// counterclockwise winding. Unreferenced positions become isolated
// vertices. Open edges are allowed and produce boundary half-edges.
func FromTriangles(positions []r3.Vec, triangles [][3]int) (*Manifold, error) {
	if len(triangles) == 0 {
		return nil, ErrEmptyMesh
	}
	m := &Manifold{
		verts:  make([]vertexRecord, len(positions)),
		faces:  make([]faceRecord, 0, len(triangles)),
		hedges: make([]halfEdgeRecord, 0, 3*len(triangles)),
		pos:    NewVertexAttr(len(positions), r3.Vec{}),
	}
	copy(m.pos.data, positions)
	for v := range m.verts {
		m.verts[v].out = InvalidHalfEdgeID
	}

	edgeOf := make(map[[2]VertexID]HalfEdgeID, 3*len(triangles))
	for fi, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= len(positions) {
				return nil, fmt.Errorf("hemesh: triangle %d: vertex index %d out of range", fi, idx)
			}
		}
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return nil, fmt.Errorf("hemesh: triangle %d repeats a vertex", fi)
		}
		f := FaceID(len(m.faces))
		base := HalfEdgeID(len(m.hedges))
		for j := 0; j < 3; j++ {
			from := VertexID(tri[j])
			to := VertexID(tri[(j+1)%3])
			key := [2]VertexID{from, to}
			if _, dup := edgeOf[key]; dup {
				return nil, fmt.Errorf("hemesh: triangle %d: duplicate directed edge %d->%d: %w", fi, from, to, ErrNonManifold)
			}
			edgeOf[key] = base + HalfEdgeID(j)
			m.hedges = append(m.hedges, halfEdgeRecord{
				next: base + HalfEdgeID((j+1)%3),
				prev: base + HalfEdgeID((j+2)%3),
				opp:  InvalidHalfEdgeID,
				vert: to,
				face: f,
			})
			if m.verts[from].out == InvalidHalfEdgeID {
				m.verts[from].out = base + HalfEdgeID(j)
			}
		}
		m.faces = append(m.faces, faceRecord{edge: base})
	}

	// Pair opposite half-edges.
	nInterior := len(m.hedges)
	for h := 0; h < nInterior; h++ {
		if m.hedges[h].opp != InvalidHalfEdgeID {
			continue
		}
		to := m.hedges[h].vert
		from := m.hedges[m.hedges[h].prev].vert
		if opp, ok := edgeOf[[2]VertexID{to, from}]; ok {
			m.hedges[h].opp = opp
			m.hedges[opp].opp = HalfEdgeID(h)
		}
	}

	// Unpaired half-edges lie on the rim. Give each one an explicit
	// boundary opposite with no face, then chain the boundary loops so
	// circulation never steps off the mesh.
	boundaryOut := make(map[VertexID]HalfEdgeID)
	for h := 0; h < nInterior; h++ {
		if m.hedges[h].opp != InvalidHalfEdgeID {
			continue
		}
		origin := m.hedges[h].vert // boundary half-edge runs against h
		if _, dup := boundaryOut[origin]; dup {
			return nil, fmt.Errorf("hemesh: vertex %d lies on more than one boundary loop: %w", origin, ErrNonManifold)
		}
		b := HalfEdgeID(len(m.hedges))
		m.hedges[h].opp = b
		m.hedges = append(m.hedges, halfEdgeRecord{
			next: InvalidHalfEdgeID,
			prev: InvalidHalfEdgeID,
			opp:  HalfEdgeID(h),
			vert: m.hedges[m.hedges[h].prev].vert,
			face: InvalidFaceID,
		})
		boundaryOut[origin] = b
	}
	for h := nInterior; h < len(m.hedges); h++ {
		next, ok := boundaryOut[m.hedges[h].vert]
		if !ok {
			return nil, fmt.Errorf("hemesh: broken boundary loop at vertex %d: %w", m.hedges[h].vert, ErrNonManifold)
		}
		m.hedges[h].next = next
		m.hedges[next].prev = HalfEdgeID(h)
	}
	// Boundary vertices park their outgoing half-edge on the boundary,
	// making IsBoundary a single lookup.
	for origin, b := range boundaryOut {
		m.verts[origin].out = b
	}
	return m, nil
}

// FromSoup builds a half-edge mesh from a triangle soup, welding
// vertices closer than tol. A tol of zero picks a tolerance from the
// shortest triangle side, following the same heuristic used when
// importing STL geometry. Triangles that collapse under welding are
// dropped.
func FromSoup(tris []Triangle, tol float64) (*Manifold, error) {
	if len(tris) == 0 {
		return nil, ErrEmptyMesh
	}
	bbMin := d3.Elem(math.MaxFloat64)
	bbMax := d3.Elem(-math.MaxFloat64)
	minSide2 := math.MaxFloat64
	for i := range tris {
		for j, vert := range tris[i] {
			bbMin = d3.MinElem(bbMin, vert)
			bbMax = d3.MaxElem(bbMax, vert)
			side2 := r3.Norm2(r3.Sub(tris[i][(j+1)%3], vert))
			if side2 > 0 && side2 < minSide2 {
				minSide2 = side2
			}
		}
	}
	if tol <= 0 {
		tol = math.Sqrt(minSide2) / 256
	}
	if tol <= 0 || math.IsInf(tol, 0) || math.IsNaN(tol) {
		return nil, errors.New("hemesh: cannot infer welding tolerance from degenerate soup")
	}
	maxDim := d3.Max(r3.Sub(bbMax, bbMin))
	if maxDim/tol > math.MaxInt64/2 {
		return nil, errors.New("hemesh: welding tolerance too small for model size")
	}

	// Weld vertices by quantized position.
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	var positions []r3.Vec
	var faces [][3]int
	for _, tri := range tris {
		var idx [3]int
		for j, vert := range tri {
			q := r3.Scale(ri, vert)
			key := [3]int64{int64(q.X), int64(q.Y), int64(q.Z)}
			vi, ok := cache[key]
			if !ok {
				vi = len(positions)
				cache[key] = vi
				positions = append(positions, vert)
			}
			idx[j] = vi
		}
		if idx[0] == idx[1] || idx[1] == idx[2] || idx[2] == idx[0] {
			continue // collapsed under welding
		}
		faces = append(faces, idx)
	}
	return FromTriangles(positions, faces)
}

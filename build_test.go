package hemesh_test

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
)

func tetrahedron(t testing.TB) *hemesh.Manifold {
	positions := []r3.Vec{
		{X: 1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1},
	}
	m, err := hemesh.FromTriangles(positions, [][3]int{
		{0, 2, 1},
		{0, 1, 3},
		{0, 3, 2},
		{1, 2, 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestFromTrianglesTetrahedron(t *testing.T) {
	m := tetrahedron(t)
	if got := m.NumVertices(); got != 4 {
		t.Errorf("vertices: got %d, want 4", got)
	}
	if got := m.NumFaces(); got != 4 {
		t.Errorf("faces: got %d, want 4", got)
	}
	if got := m.NumHalfEdges(); got != 12 {
		t.Errorf("half-edges: got %d, want 12", got)
	}
	m.ForEachVertex(func(v hemesh.VertexID) {
		if m.IsBoundary(v) {
			t.Errorf("vertex %d: closed mesh reports boundary", v)
		}
		if got := m.Valency(v); got != 3 {
			t.Errorf("vertex %d: valency %d, want 3", v, got)
		}
	})
}

func TestFromTrianglesSingleTriangle(t *testing.T) {
	positions := []r3.Vec{{}, {X: 1}, {Y: 1}}
	m, err := hemesh.FromTriangles(positions, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if got := m.NumHalfEdges(); got != 6 {
		t.Fatalf("half-edges: got %d, want 6 (3 interior + 3 boundary)", got)
	}
	m.ForEachVertex(func(v hemesh.VertexID) {
		if !m.IsBoundary(v) {
			t.Errorf("vertex %d: open triangle vertex not on boundary", v)
		}
	})
	// Face circulation closes after exactly three steps.
	steps := 0
	for w := m.WalkFace(0); !w.FullCircle(); w = w.CirculateFaceCCW() {
		steps++
		if steps > 3 {
			t.Fatal("face circulation did not terminate")
		}
	}
	if steps != 3 {
		t.Errorf("face circulation steps: got %d, want 3", steps)
	}
}

func TestFromTrianglesIsolatedVertex(t *testing.T) {
	positions := []r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 5}}
	m, err := hemesh.FromTriangles(positions, [][3]int{{0, 1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsBoundary(3) {
		t.Error("isolated vertex should count as boundary")
	}
	if !m.WalkVertex(3).FullCircle() {
		t.Error("walker on isolated vertex should report full circle immediately")
	}
	if got := m.Valency(3); got != 0 {
		t.Errorf("isolated vertex valency: got %d, want 0", got)
	}
}

func TestFromTrianglesErrors(t *testing.T) {
	positions := []r3.Vec{{}, {X: 1}, {Y: 1}}
	for _, test := range []struct {
		name string
		tris [][3]int
	}{
		{name: "empty", tris: nil},
		{name: "index out of range", tris: [][3]int{{0, 1, 3}}},
		{name: "repeated vertex", tris: [][3]int{{0, 1, 1}}},
		{name: "duplicate directed edge", tris: [][3]int{{0, 1, 2}, {0, 1, 2}}},
	} {
		if _, err := hemesh.FromTriangles(positions, test.tris); err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
		}
	}
}

func TestFromSoupWeldsSharedVertices(t *testing.T) {
	a := r3.Vec{}
	b := r3.Vec{X: 1}
	c := r3.Vec{Y: 1}
	d := r3.Vec{X: 1, Y: 1}
	m, err := hemesh.FromSoup([]hemesh.Triangle{
		{a, b, c},
		{b, d, c},
	}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.NumVertices(); got != 4 {
		t.Errorf("welded vertices: got %d, want 4", got)
	}
	if got := m.NumFaces(); got != 2 {
		t.Errorf("faces: got %d, want 2", got)
	}
	// 6 halfedges per quad diagonal structure: 6 interior + 4 boundary.
	if got := m.NumHalfEdges(); got != 10 {
		t.Errorf("half-edges: got %d, want 10", got)
	}
}

func TestFromSoupDropsCollapsedTriangles(t *testing.T) {
	a := r3.Vec{}
	b := r3.Vec{X: 1}
	tiny := r3.Vec{X: 1e-12} // welds onto a
	_, err := hemesh.FromSoup([]hemesh.Triangle{{a, b, tiny}}, 1e-3)
	if !errors.Is(err, hemesh.ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh after dropping collapsed triangle, got %v", err)
	}
}

func TestCloneIndependence(t *testing.T) {
	m := tetrahedron(t)
	c := m.Clone()
	c.SetPos(0, r3.Vec{X: 100})
	if got := m.Pos(0); got == c.Pos(0) {
		t.Error("clone shares position storage with original")
	}
	if c.NumFaces() != m.NumFaces() || c.NumHalfEdges() != m.NumHalfEdges() {
		t.Error("clone topology differs from original")
	}
}

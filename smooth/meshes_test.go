package smooth_test

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
)

// gridMesh builds an n x n vertex patch in the xy-plane with unit
// spacing, each cell split into two triangles. Vertices with
// 0 < i,j < n-1 are interior; the rim is boundary.
func gridMesh(t testing.TB, n int) *hemesh.Manifold {
	positions := make([]r3.Vec, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			positions = append(positions, r3.Vec{X: float64(i), Y: float64(j)})
		}
	}
	var tris [][3]int
	at := func(i, j int) int { return j*n + i }
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			tris = append(tris,
				[3]int{at(i, j), at(i+1, j), at(i+1, j+1)},
				[3]int{at(i, j), at(i+1, j+1), at(i, j+1)},
			)
		}
	}
	m, err := hemesh.FromTriangles(positions, tris)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// hexFan builds a closed hexagonal fan: a center vertex surrounded by a
// symmetric ring of six. The center is the only interior vertex.
func hexFan(t testing.TB) *hemesh.Manifold {
	positions := []r3.Vec{{}}
	for i := 0; i < 6; i++ {
		a := float64(i) * math.Pi / 3
		positions = append(positions, r3.Vec{X: math.Cos(a), Y: math.Sin(a)})
	}
	var tris [][3]int
	for i := 0; i < 6; i++ {
		tris = append(tris, [3]int{0, 1 + i, 1 + (i+1)%6})
	}
	m, err := hemesh.FromTriangles(positions, tris)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// icosphere builds a unit sphere mesh by subdividing an icosahedron.
func icosphere(t testing.TB, subdiv int) *hemesh.Manifold {
	phi := (1 + math.Sqrt(5)) / 2
	positions := []r3.Vec{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	tris := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	midpoint := make(map[[2]int]int)
	mid := func(a, b int) int {
		key := [2]int{min(a, b), max(a, b)}
		if i, ok := midpoint[key]; ok {
			return i
		}
		i := len(positions)
		positions = append(positions, r3.Scale(0.5, r3.Add(positions[a], positions[b])))
		midpoint[key] = i
		return i
	}
	for s := 0; s < subdiv; s++ {
		next := make([][3]int, 0, 4*len(tris))
		for _, tri := range tris {
			ab := mid(tri[0], tri[1])
			bc := mid(tri[1], tri[2])
			ca := mid(tri[2], tri[0])
			next = append(next,
				[3]int{tri[0], ab, ca},
				[3]int{tri[1], bc, ab},
				[3]int{tri[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		tris = next
	}
	for i := range positions {
		positions[i] = r3.Scale(1/r3.Norm(positions[i]), positions[i])
	}
	m, err := hemesh.FromTriangles(positions, tris)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// perturbRadial displaces every vertex of a sphere-like mesh radially
// by a deterministic pseudo-random amount in [-amp, amp].
func perturbRadial(m *hemesh.Manifold, amp float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	m.ForEachVertex(func(v hemesh.VertexID) {
		p := m.Pos(v)
		d := 1 + amp*(2*rng.Float64()-1)/r3.Norm(p)
		m.SetPos(v, r3.Scale(d, p))
	})
}

func totalArea(m *hemesh.Manifold) float64 {
	area := 0.0
	m.ForEachFace(func(f hemesh.FaceID) {
		area += m.FaceArea(f)
	})
	return area
}

// radiusSpread returns the standard deviation of vertex distances from
// the origin, a noise measure for sphere-like meshes.
func radiusSpread(m *hemesh.Manifold) float64 {
	var sum, sum2 float64
	n := float64(m.NumVertices())
	m.ForEachVertex(func(v hemesh.VertexID) {
		r := r3.Norm(m.Pos(v))
		sum += r
		sum2 += r * r
	})
	mean := sum / n
	return math.Sqrt(math.Max(0, sum2/n-mean*mean))
}

func allFinite(m *hemesh.Manifold) bool {
	ok := true
	m.ForEachVertex(func(v hemesh.VertexID) {
		p := m.Pos(v)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) ||
			math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			ok = false
		}
	})
	return ok
}

package hemesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh/internal/d3"
)

// Triangle is a triangle in 3D space with counterclockwise winding.
type Triangle [3]r3.Vec

// Normal returns the unit normal of the triangle, or the zero vector
// for a degenerate triangle.
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return d3.CondUnit(r3.Cross(e1, e2))
}

// Area returns the surface area of the triangle.
func (t Triangle) Area() float64 {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return 0.5 * r3.Norm(r3.Cross(e1, e2))
}

// Centroid returns the center of mass of the triangle.
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1.0/3.0, r3.Add(t[0], r3.Add(t[1], t[2])))
}

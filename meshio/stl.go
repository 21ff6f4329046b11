// Package meshio reads and writes hemesh meshes in binary STL format.
package meshio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soypat/hemesh"
)

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

const stlTriangleSize = 50

// WriteSTL writes the faces of m to w in binary STL format.
func WriteSTL(w io.Writer, m *hemesh.Manifold) error {
	model := m.Triangles()
	if len(model) == 0 {
		return errors.New("meshio: mesh has no faces")
	}
	header := stlHeader{Count: uint32(len(model))}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var b [stlTriangleSize]byte
	for _, tri := range model {
		d := stlTriangle{
			Normal:  f32From3(tri.Normal()),
			Vertex1: f32From3(tri[0]),
			Vertex2: f32From3(tri[1]),
			Vertex3: f32From3(tri[2]),
		}
		d.put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads binary STL data from r and welds the triangle soup into
// a half-edge mesh. tol is the vertex welding tolerance; zero infers it
// from the shortest triangle side. Triangles with non-finite or
// duplicate-vertex data are dropped rather than rejected, since noisy
// scanned models routinely carry a few.
func ReadSTL(r io.Reader, tol float64) (*hemesh.Manifold, error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.New("meshio: EOF while reading STL header")
		}
		return nil, fmt.Errorf("meshio: STL header read failed: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("meshio: STL header indicates 0 triangles present")
	}
	soup := make([]hemesh.Triangle, 0, header.Count)
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
	)
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, fmt.Errorf("meshio: %d/%d STL triangles read: %w", i, header.Count, err)
		}
		d.get(buf[:])
		if d.bad() {
			continue
		}
		soup = append(soup, d.triangle())
	}
	if len(soup) == 0 {
		return nil, errors.New("meshio: no usable triangles in STL data")
	}
	return hemesh.FromSoup(soup, tol)
}

// SaveSTL writes mesh m to the file at path in binary STL format.
func SaveSTL(path string, m *hemesh.Manifold) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	return WriteSTL(fp, m)
}

// LoadSTL reads the binary STL file at path into a half-edge mesh using
// an inferred welding tolerance.
func LoadSTL(path string) (*hemesh.Manifold, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadSTL(fp, 0)
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
	// no attributes supported.
}

// bad reports whether the triangle carries non-finite vertex data or
// repeated vertices. The stored normal is ignored; it is recomputed
// from the vertices on export anyway.
func (t stlTriangle) bad() bool {
	return bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) ||
		t.Vertex1 == t.Vertex2 || t.Vertex2 == t.Vertex3 || t.Vertex3 == t.Vertex1
}

func (t stlTriangle) triangle() hemesh.Triangle {
	return hemesh.Triangle{
		r3From3F32(t.Vertex1),
		r3From3F32(t.Vertex2),
		r3From3F32(t.Vertex3),
	}
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func f32From3(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

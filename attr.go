package hemesh

// Attribute vectors associate a value with every entity of one kind.
// They are plain growable arrays indexed by the entity's dense handle:
// reads of never-written handles return the default value in O(1) and
// writes grow the backing storage on demand. Two vectors of the same
// kind exchange their contents in O(1) via Swap, which is the buffer
// discipline the smoothing drivers rely on.

type attrVec[K ~int, T any] struct {
	def  T
	data []T
}

func makeAttrVec[K ~int, T any](n int, def T) attrVec[K, T] {
	a := attrVec[K, T]{def: def, data: make([]T, n)}
	for i := range a.data {
		a.data[i] = def
	}
	return a
}

// At returns the value stored for k, or the default value if k has
// never been written.
func (a *attrVec[K, T]) At(k K) T {
	if int(k) >= len(a.data) {
		return a.def
	}
	return a.data[k]
}

// Set stores v for k, growing the vector as needed.
func (a *attrVec[K, T]) Set(k K, v T) {
	for int(k) >= len(a.data) {
		a.data = append(a.data, a.def)
	}
	a.data[k] = v
}

// Len returns the number of allocated slots.
func (a *attrVec[K, T]) Len() int { return len(a.data) }

// VertexAttr maps VertexID to a value of type T.
type VertexAttr[T any] struct {
	attrVec[VertexID, T]
}

// NewVertexAttr returns a vertex attribute vector with n slots
// initialized to def.
func NewVertexAttr[T any](n int, def T) *VertexAttr[T] {
	return &VertexAttr[T]{makeAttrVec[VertexID](n, def)}
}

// Swap exchanges the contents of a and b in O(1).
func (a *VertexAttr[T]) Swap(b *VertexAttr[T]) {
	a.attrVec, b.attrVec = b.attrVec, a.attrVec
}

// Clone returns a copy of a sharing no storage with it.
func (a *VertexAttr[T]) Clone() *VertexAttr[T] {
	c := NewVertexAttr(0, a.def)
	c.data = append([]T(nil), a.data...)
	return c
}

// FaceAttr maps FaceID to a value of type T.
type FaceAttr[T any] struct {
	attrVec[FaceID, T]
}

// NewFaceAttr returns a face attribute vector with n slots
// initialized to def.
func NewFaceAttr[T any](n int, def T) *FaceAttr[T] {
	return &FaceAttr[T]{makeAttrVec[FaceID](n, def)}
}

// Swap exchanges the contents of a and b in O(1).
func (a *FaceAttr[T]) Swap(b *FaceAttr[T]) {
	a.attrVec, b.attrVec = b.attrVec, a.attrVec
}

// HalfEdgeAttr maps HalfEdgeID to a value of type T.
type HalfEdgeAttr[T any] struct {
	attrVec[HalfEdgeID, T]
}

// NewHalfEdgeAttr returns a half-edge attribute vector with n slots
// initialized to def.
func NewHalfEdgeAttr[T any](n int, def T) *HalfEdgeAttr[T] {
	return &HalfEdgeAttr[T]{makeAttrVec[HalfEdgeID](n, def)}
}

// Swap exchanges the contents of a and b in O(1).
func (a *HalfEdgeAttr[T]) Swap(b *HalfEdgeAttr[T]) {
	a.attrVec, b.attrVec = b.attrVec, a.attrVec
}

package typesystem

import "sync/atomic"

// Live-descriptor counters. Tests use them to verify that every Release
// reaches every owned payload exactly once.
var (
	liveArrayOf atomic.Int64
	liveShapes  atomic.Int64
)

// LiveDescriptors returns the number of array-of and shape descriptors
// currently allocated and not yet released.
func LiveDescriptors() (arrayOf int64, shapes int64) {
	return liveArrayOf.Load(), liveShapes.Load()
}

// ArrayOf describes an array<T> payload: one owned element type and the
// nesting depth of the array<...> chain.
type ArrayOf struct {
	elem  Value
	depth uint8
	refs  atomic.Int32
}

// NewArrayOf allocates an array-of descriptor owning elem (refcount 1) and
// returns the Value carrying it. Depth is 1 + the element's depth when the
// element is itself array<T>; a shape element does not add depth.
func NewArrayOf(elem Value) Value {
	a := &ArrayOf{elem: elem, depth: 1}
	if elem.IsArrayOf() {
		a.depth = elem.ArrayOf().depth + 1
	}
	a.refs.Store(1)
	liveArrayOf.Add(1)
	return Value{mask: MaskArrayOf | MaskArray, arrayOf: a}
}

func (a *ArrayOf) Element() Value { return a.elem }
func (a *ArrayOf) Depth() int { return int(a.depth) }

// Shape describes an array{...} payload: the declared elements in
// declaration order plus a precomputed structural hash.
type Shape struct {
	elements []ShapeElement
	hash     uint32
	refs     atomic.Int32
}

// NewShape allocates a shape descriptor owning every element type
// (refcount 1) and returns the Value carrying it. The structural hash is
// computed once here.
func NewShape(elements []ShapeElement) Value {
	s := &Shape{elements: elements}
	s.hash = shapeHash(s)
	s.refs.Store(1)
	liveShapes.Add(1)
	return Value{mask: MaskShape | MaskArray, shape: s}
}

func (s *Shape) Len() int { return len(s.elements) }
func (s *Shape) At(i int) ShapeElement { return s.elements[i] }
func (s *Shape) Hash() uint32 { return s.hash }

// Elements returns a copy of the declared elements so callers outside the
// package cannot mutate the descriptor.
func (s *Shape) Elements() []ShapeElement {
	out := make([]ShapeElement, len(s.elements))
	copy(out, s.elements)
	return out
}

// AddRef takes an additional owning reference on every extended payload
// reachable from v without crossing another refcounted descriptor. Call it
// when duplicating a compiled signature; nested payloads inside an array-of
// or shape are covered by their owner's count.
func AddRef(v Value) {
	switch {
	case v.arrayOf != nil:
		v.arrayOf.refs.Add(1)
	case v.shape != nil:
		v.shape.refs.Add(1)
	case v.list != nil:
		for _, m := range v.list.types {
			AddRef(m)
		}
	}
}

// Release drops one owning reference from v. A descriptor reaching zero
// releases its owned member types post-order and is freed. The owner must
// guarantee destroy-once discipline; releasing an already-freed descriptor
// is a programming error this package does not defend against.
func Release(v Value) {
	switch {
	case v.arrayOf != nil:
		if v.arrayOf.refs.Add(-1) == 0 {
			Release(v.arrayOf.elem)
			liveArrayOf.Add(-1)
		}
	case v.shape != nil:
		if v.shape.refs.Add(-1) == 0 {
			for _, e := range v.shape.elements {
				Release(e.Type)
			}
			liveShapes.Add(-1)
		}
	case v.list != nil:
		for _, m := range v.list.types {
			Release(m)
		}
	}
}

package typesystem

// Value is the tagged type descriptor produced by the compiler. It carries a
// primitive-kind mask plus at most one of: a class-name reference, a
// composite list (union/intersection), or an extended array payload
// (array-of or shape). Values are immutable once constructed; the only
// mutable state behind one is the refcount on its extended payloads.
type Value struct {
	mask    Mask
	class   string // interned class name, "" when absent
	list    *List
	arrayOf *ArrayOf
	shape   *Shape
}

// None is the zero Value: no kind bits, no payload.
var None = Value{}

func NewPrimitive(mask Mask) Value {
	return Value{mask: mask.Pure()}
}

// NewClass builds a class-reference type. The name is stored as written;
// resolution to a concrete class happens lazily at check time.
func NewClass(name string) Value {
	return Value{class: Intern(name)}
}

func (v Value) Mask() Mask { return v.mask }

// WithNull returns a copy with the null bit set. Used for ?T.
func (v Value) WithNull() Value {
	v.mask |= MaskNull
	return v
}

// IsSet reports whether the value describes any type at all.
func (v Value) IsSet() bool {
	return v.mask != 0 || v.class != "" || v.list != nil || v.arrayOf != nil || v.shape != nil
}

func (v Value) IsArrayOf() bool { return v.mask&MaskArrayOf != 0 }
func (v Value) IsShape() bool { return v.mask&MaskShape != 0 }

// HasExtendedArray reports whether either extended array tag is set.
func (v Value) HasExtendedArray() bool { return v.mask&MaskExtendedArray != 0 }

func (v Value) HasClass() bool { return v.class != "" }
func (v Value) ClassName() string { return v.class }
func (v Value) HasList() bool { return v.list != nil }
func (v Value) List() *List { return v.list }
func (v Value) ArrayOf() *ArrayOf { return v.arrayOf }
func (v Value) Shape() *Shape { return v.shape }
func (v Value) AllowsNull() bool { return v.mask&MaskNull != 0 }

// List is an ordered composite of at least two member types, tagged
// union-or-intersection via the owning Value's mask.
type List struct {
	types []Value
}

func NewUnion(members []Value) Value {
	return Value{mask: MaskUnion, list: &List{types: members}}
}

func NewIntersection(members []Value) Value {
	return Value{mask: MaskIntersection, list: &List{types: members}}
}

func (l *List) Len() int { return len(l.types) }
func (l *List) At(i int) Value { return l.types[i] }

// ShapeElement is one declared key of a shape. Exactly one of Key (string)
// or IntKey identifies it; IsIntKey selects which.
type ShapeElement struct {
	Key      string
	IntKey   int64
	IsIntKey bool
	Optional bool
	Type     Value
}

// KeyHash returns the element's key identity hash for shape hashing:
// the interned-string hash for string keys, the raw value for int keys.
func (e ShapeElement) KeyHash() uint32 {
	if e.IsIntKey {
		return uint32(e.IntKey)
	}
	return hashString(e.Key)
}

// SameKey reports whether two elements declare the same key.
func (e ShapeElement) SameKey(o ShapeElement) bool {
	if e.IsIntKey != o.IsIntKey {
		return false
	}
	if e.IsIntKey {
		return e.IntKey == o.IntKey
	}
	return e.Key == o.Key
}

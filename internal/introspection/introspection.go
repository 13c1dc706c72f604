// Package introspection exposes read-only views over compiled type
// descriptors. Wrappers hold the underlying descriptor by reference and
// never hand out a mutation path; accessors that return sequences copy.
package introspection

import (
	"strconv"

	"github.com/funvibe/shapetypes/internal/typesystem"
)

// ArrayOfType is the reflection view of an array<T> descriptor.
type ArrayOfType struct {
	t typesystem.Value
}

// ShapeType is the reflection view of an array{...} descriptor.
type ShapeType struct {
	t typesystem.Value
}

// ShapeElement is one declared key of a ShapeType.
type ShapeElement struct {
	e typesystem.ShapeElement
}

// Wrap classifies a compiled type. Exactly one of the returns is non-nil
// for extended array types; both are nil for everything else.
func Wrap(t typesystem.Value) (*ArrayOfType, *ShapeType) {
	switch {
	case t.IsArrayOf():
		return &ArrayOfType{t: t}, nil
	case t.IsShape():
		return nil, &ShapeType{t: t}
	default:
		return nil, nil
	}
}

func (a *ArrayOfType) String() string { return typesystem.Stringify(a.t) }
func (a *ArrayOfType) Name() string { return a.String() }
func (a *ArrayOfType) AllowsNull() bool { return a.t.AllowsNull() }
func (a *ArrayOfType) IsBuiltin() bool { return true }

// ElementType returns the declared element type view.
func (a *ArrayOfType) ElementType() typesystem.Value { return a.t.ArrayOf().Element() }

// Depth is the array<...> nesting depth; shape-typed elements do not add.
func (a *ArrayOfType) Depth() int { return a.t.ArrayOf().Depth() }

func (s *ShapeType) String() string { return typesystem.Stringify(s.t) }
func (s *ShapeType) Name() string { return s.String() }
func (s *ShapeType) AllowsNull() bool { return s.t.AllowsNull() }
func (s *ShapeType) IsBuiltin() bool { return true }

// ElementCount is the number of declared keys.
func (s *ShapeType) ElementCount() int { return s.t.Shape().Len() }

// Elements returns the declared keys in declaration order.
func (s *ShapeType) Elements() []*ShapeElement {
	shape := s.t.Shape()
	out := make([]*ShapeElement, shape.Len())
	for i := range out {
		out[i] = &ShapeElement{e: shape.At(i)}
	}
	return out
}

// HasElement reports whether the shape declares the given string key.
func (s *ShapeType) HasElement(key string) bool {
	_, ok := s.find(key)
	return ok
}

// Element looks a declared string key up by name.
func (s *ShapeType) Element(key string) (*ShapeElement, bool) {
	e, ok := s.find(key)
	if !ok {
		return nil, false
	}
	return &ShapeElement{e: e}, true
}

func (s *ShapeType) find(key string) (typesystem.ShapeElement, bool) {
	shape := s.t.Shape()
	for i := 0; i < shape.Len(); i++ {
		e := shape.At(i)
		if !e.IsIntKey && e.Key == key {
			return e, true
		}
	}
	return typesystem.ShapeElement{}, false
}

// Name returns the string key, or the decimal rendering of an integer key.
func (e *ShapeElement) Name() string {
	if e.e.IsIntKey {
		return strconv.FormatInt(e.e.IntKey, 10)
	}
	return e.e.Key
}

// Key returns the raw string key and whether the key is a string.
func (e *ShapeElement) Key() (string, bool) { return e.e.Key, !e.e.IsIntKey }

// IntKey returns the raw integer key and whether the key is an integer.
func (e *ShapeElement) IntKey() (int64, bool) { return e.e.IntKey, e.e.IsIntKey }

func (e *ShapeElement) IsOptional() bool { return e.e.Optional }

// Type returns the declared value type for this key.
func (e *ShapeElement) Type() typesystem.Value { return e.e.Type }

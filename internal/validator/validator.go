// Package validator matches live runtime values against compiled type
// descriptors. Matching is structural and stops at the first violation,
// capturing its path for diagnostics. The validator never mutates the
// descriptor tree or the value; it is safe for concurrent use against
// shared descriptors, one Validator per call site.
package validator

import (
	"github.com/funvibe/shapetypes/internal/config"
	"github.com/funvibe/shapetypes/internal/runtime"
	"github.com/funvibe/shapetypes/internal/typesystem"
)

// Validator checks values against type descriptors. It caches class
// resolutions: names in descriptors resolve lazily on first use and stick
// for the validator's lifetime (one call-site context).
type Validator struct {
	registry *runtime.Registry
	resolved map[string]*runtime.Class
}

func New(registry *runtime.Registry) *Validator {
	return &Validator{
		registry: registry,
		resolved: make(map[string]*runtime.Class),
	}
}

// Validate matches value against t, capturing the first failure.
func (v *Validator) Validate(t typesystem.Value, value runtime.Object) Outcome {
	value = deref(value)

	if value.Type() == runtime.NIL_OBJ && t.AllowsNull() {
		return pass()
	}

	switch {
	case t.IsArrayOf():
		arr, ok := value.(*runtime.Array)
		if !ok {
			return Outcome{Category: KindMismatch, Expected: t, Actual: value}
		}
		return v.validateArrayOf(t.ArrayOf(), arr, nil, 0)

	case t.IsShape():
		arr, ok := value.(*runtime.Array)
		if !ok {
			return Outcome{Category: KindMismatch, Expected: t, Actual: value}
		}
		return v.validateShape(t.Shape(), arr, nil, 0)

	default:
		if v.check(t, value, 0) {
			return pass()
		}
		return Outcome{Category: KindMismatch, Expected: t, Actual: value}
	}
}

// validateArrayOf walks the container in native order. Empty containers
// pass trivially. Nested array-of/shape elements recurse on the detailed
// spine; anything else drops to the boolean matcher, so a union element
// failure reports the whole union as the narrowest expected type.
func (v *Validator) validateArrayOf(a *typesystem.ArrayOf, arr *runtime.Array, path []runtime.Key, depth int) Outcome {
	if depth > config.MaxNestingDepth {
		return Outcome{Category: WrongType, Expected: a.Element(), Path: path, Actual: arr}
	}

	elem := a.Element()
	for i := 0; i < arr.Len(); i++ {
		key, value := arr.At(i)
		value = deref(value)

		switch {
		case elem.IsArrayOf():
			inner, ok := value.(*runtime.Array)
			if !ok {
				return Outcome{Category: WrongType, Expected: elem, Path: append(path, key), Actual: value}
			}
			if out := v.validateArrayOf(elem.ArrayOf(), inner, append(path, key), depth+1); !out.Pass {
				return out
			}

		case elem.IsShape():
			inner, ok := value.(*runtime.Array)
			if !ok {
				return Outcome{Category: WrongType, Expected: elem, Path: append(path, key), Actual: value}
			}
			if out := v.validateShape(elem.Shape(), inner, append(path, key), depth+1); !out.Pass {
				return out
			}

		default:
			if !v.check(elem, value, depth+1) {
				return Outcome{Category: WrongType, Expected: elem, Path: append(path, key), Actual: value}
			}
		}
	}
	return pass()
}

// validateShape checks declared elements in declaration order. Keys present
// in the value but not declared are always permitted: a shape is a
// structural lower bound, not an exact schema. Cost is bounded by the
// shape's size, not the container's.
func (v *Validator) validateShape(s *typesystem.Shape, arr *runtime.Array, path []runtime.Key, depth int) Outcome {
	if depth > config.MaxNestingDepth {
		return Outcome{Category: WrongType, Expected: typesystem.None, Path: path, Actual: arr}
	}

	for i := 0; i < s.Len(); i++ {
		elem := s.At(i)
		key := elemKey(elem)

		value, found := arr.Get(key)
		if !found {
			if elem.Optional {
				continue
			}
			return Outcome{Category: MissingKey, Key: key, Path: path}
		}
		value = deref(value)

		elemType := elem.Type
		switch {
		case elemType.IsArrayOf():
			inner, ok := value.(*runtime.Array)
			if !ok {
				return Outcome{Category: WrongType, Expected: elemType, Path: append(path, key), Actual: value}
			}
			if out := v.validateArrayOf(elemType.ArrayOf(), inner, append(path, key), depth+1); !out.Pass {
				return out
			}

		case elemType.IsShape():
			inner, ok := value.(*runtime.Array)
			if !ok {
				return Outcome{Category: WrongType, Expected: elemType, Path: append(path, key), Actual: value}
			}
			if out := v.validateShape(elemType.Shape(), inner, append(path, key), depth+1); !out.Pass {
				return out
			}

		default:
			if !v.check(elemType, value, depth+1) {
				return Outcome{Category: WrongType, Expected: elemType, Path: append(path, key), Actual: value}
			}
		}
	}
	return pass()
}

// check is the boolean matcher: does value satisfy t. No failure detail.
func (v *Validator) check(t typesystem.Value, value runtime.Object, depth int) bool {
	if depth > config.MaxNestingDepth {
		return false
	}
	value = deref(value)

	if t.IsArrayOf() {
		arr, ok := value.(*runtime.Array)
		if !ok {
			return false
		}
		return v.validateArrayOf(t.ArrayOf(), arr, nil, depth+1).Pass
	}

	if t.IsShape() {
		arr, ok := value.(*runtime.Array)
		if !ok {
			return false
		}
		return v.validateShape(t.Shape(), arr, nil, depth+1).Pass
	}

	if value.Type() == runtime.NIL_OBJ && t.AllowsNull() {
		return true
	}

	if t.HasList() {
		list := t.List()
		if t.Mask()&typesystem.MaskIntersection != 0 {
			for i := 0; i < list.Len(); i++ {
				if !v.check(list.At(i), value, depth+1) {
					return false
				}
			}
			return true
		}
		for i := 0; i < list.Len(); i++ {
			if v.check(list.At(i), value, depth+1) {
				return true
			}
		}
		return false
	}

	if t.HasClass() {
		inst, ok := value.(*runtime.Instance)
		if !ok {
			return false
		}
		class := v.resolve(t.ClassName())
		if class == nil {
			return false
		}
		return v.registry.InstanceOf(inst.Class, class.Name)
	}

	return v.matchMask(t.Mask().Pure(), value)
}

// matchMask maps a value's concrete kind onto the primitive bitset.
func (v *Validator) matchMask(mask typesystem.Mask, value runtime.Object) bool {
	if mask&typesystem.MaskMixed != 0 {
		return true
	}

	switch obj := value.(type) {
	case *runtime.Nil:
		return mask&typesystem.MaskNull != 0

	case *runtime.Boolean:
		// true/false match both the specific and the general boolean bit.
		if obj.Value {
			return mask&(typesystem.MaskTrue|typesystem.MaskBool) != 0
		}
		return mask&(typesystem.MaskFalse|typesystem.MaskBool) != 0

	case *runtime.Integer:
		return mask&typesystem.MaskInt != 0

	case *runtime.Float:
		return mask&typesystem.MaskFloat != 0

	case *runtime.String:
		return mask&typesystem.MaskString != 0

	case *runtime.Array:
		return mask&(typesystem.MaskArray|typesystem.MaskIterable) != 0

	case *runtime.Closure:
		return mask&(typesystem.MaskCallable|typesystem.MaskObject) != 0

	case *runtime.Instance:
		if mask&typesystem.MaskObject != 0 {
			return true
		}
		if mask&typesystem.MaskIterable != 0 && v.registry.Iterable(obj.Class) {
			return true
		}
		return false

	case *runtime.Resource:
		return mask&typesystem.MaskResource != 0

	default:
		return false
	}
}

// resolve looks a class name up once per validator and caches it. Misses
// are not cached: the class may legitimately be defined later.
func (v *Validator) resolve(name string) *runtime.Class {
	if class, ok := v.resolved[name]; ok {
		return class
	}
	class, ok := v.registry.Lookup(name)
	if !ok {
		return nil
	}
	v.resolved[name] = class
	return class
}

func elemKey(e typesystem.ShapeElement) runtime.Key {
	if e.IsIntKey {
		return runtime.IndexKey(e.IntKey)
	}
	return runtime.StringKey(e.Key)
}

// deref unwraps one level of by-reference indirection.
func deref(value runtime.Object) runtime.Object {
	if ref, ok := value.(*runtime.Reference); ok {
		return ref.Deref()
	}
	return value
}

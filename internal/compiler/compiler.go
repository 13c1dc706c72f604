// Package compiler transforms type-expression ASTs into type descriptors.
//
// Compilation runs once per declaration. It is the only producer of
// typesystem.Value trees: descriptors leave here immutable, refcounted at 1,
// owned by the declaration that requested compilation.
package compiler

import (
	"strconv"

	"github.com/funvibe/shapetypes/internal/ast"
	"github.com/funvibe/shapetypes/internal/config"
	"github.com/funvibe/shapetypes/internal/diagnostics"
	"github.com/funvibe/shapetypes/internal/token"
	"github.com/funvibe/shapetypes/internal/typesystem"
)

// Compile transforms node into a type descriptor. Any error is fatal for
// the whole declaration: partially built descriptors are released before
// returning, so a failed Compile never leaks.
//
// persistent selects long-lived storage: class names and shape keys are
// interned through the process-wide table. Scratch compilations (probing,
// tests) skip interning.
func Compile(node ast.Type, persistent bool) (typesystem.Value, error) {
	return compile(node, persistent, 0)
}

func compile(node ast.Type, persistent bool, depth int) (typesystem.Value, error) {
	if node == nil {
		return typesystem.None, diagnostics.NewError("C002", token.Token{}, "invalid type node <nil>")
	}
	if depth > config.MaxNestingDepth {
		return typesystem.None, diagnostics.NewError("C005", node.GetToken(),
			"type nesting exceeds %d levels", config.MaxNestingDepth)
	}

	switch n := node.(type) {
	case *ast.PrimitiveType:
		mask := typesystem.MaskForCode(n.Code)
		if mask == 0 {
			return typesystem.None, diagnostics.NewError("C001", n.Token,
				"unknown primitive type code %d", n.Code)
		}
		return typesystem.NewPrimitive(mask), nil

	case *ast.ClassType:
		// Resolution to a concrete class is deferred to check time: the
		// class may not exist yet when the declaration compiles.
		name := n.Name
		if persistent {
			name = typesystem.Intern(name)
		}
		return typesystem.NewClass(name), nil

	case *ast.NullableType:
		inner, err := compile(n.Inner, persistent, depth+1)
		if err != nil {
			return typesystem.None, err
		}
		return inner.WithNull(), nil

	case *ast.UnionType:
		members, err := compileList(n.Types, persistent, depth)
		if err != nil {
			return typesystem.None, err
		}
		// A union of plain primitives folds into one mask, so int|null and
		// ?int compile to the same descriptor. The list form is only needed
		// once a member carries a payload or class name.
		if mask, ok := foldMask(members); ok {
			return typesystem.NewPrimitive(mask), nil
		}
		return typesystem.NewUnion(members), nil

	case *ast.IntersectionType:
		members, err := compileList(n.Types, persistent, depth)
		if err != nil {
			return typesystem.None, err
		}
		return typesystem.NewIntersection(members), nil

	case *ast.ArrayOfType:
		elem, err := compile(n.Element, persistent, depth+1)
		if err != nil {
			return typesystem.None, err
		}
		return typesystem.NewArrayOf(elem), nil

	case *ast.ShapeType:
		return compileShape(n, persistent, depth)

	default:
		// Unrecognized node kinds abort the declaration; there is no local
		// recovery from a malformed type tree.
		return typesystem.None, diagnostics.NewError("C002", node.GetToken(),
			"invalid type node %T", node)
	}
}

func foldMask(members []typesystem.Value) (typesystem.Mask, bool) {
	var mask typesystem.Mask
	for _, m := range members {
		if m.HasClass() || m.HasList() || m.HasExtendedArray() {
			return 0, false
		}
		mask |= m.Mask().Pure()
	}
	return mask, true
}

func compileList(nodes []ast.Type, persistent bool, depth int) ([]typesystem.Value, error) {
	members := make([]typesystem.Value, 0, len(nodes))
	for _, m := range nodes {
		v, err := compile(m, persistent, depth+1)
		if err != nil {
			for _, built := range members {
				typesystem.Release(built)
			}
			return nil, err
		}
		members = append(members, v)
	}
	return members, nil
}

func compileShape(n *ast.ShapeType, persistent bool, depth int) (typesystem.Value, error) {
	elements := make([]typesystem.ShapeElement, 0, len(n.Elements))

	fail := func(err error) (typesystem.Value, error) {
		for _, built := range elements {
			typesystem.Release(built.Type)
		}
		return typesystem.None, err
	}

	for _, el := range n.Elements {
		elem := typesystem.ShapeElement{
			IntKey:   el.IntKey,
			IsIntKey: el.IsIntKey,
			Optional: el.Optional,
		}
		if !el.IsIntKey {
			if persistent {
				elem.Key = typesystem.Intern(el.Key)
			} else {
				elem.Key = el.Key
			}
		}
		if el.IsIntKey && el.IntKey < 0 {
			return fail(diagnostics.NewError("C003", el.Token,
				"shape key must be a string or non-negative integer"))
		}

		for _, prev := range elements {
			if prev.SameKey(elem) {
				return fail(diagnostics.NewError("C004", el.Token,
					"duplicate shape key %s", keyLabel(elem)))
			}
		}

		typ, err := compile(el.Type, persistent, depth+1)
		if err != nil {
			return fail(err)
		}
		elem.Type = typ
		elements = append(elements, elem)
	}

	return typesystem.NewShape(elements), nil
}

func keyLabel(e typesystem.ShapeElement) string {
	if e.IsIntKey {
		return strconv.FormatInt(e.IntKey, 10)
	}
	return "'" + e.Key + "'"
}

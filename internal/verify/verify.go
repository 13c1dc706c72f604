// Package verify is the call-boundary wrapper around the validator. It
// binds a validation outcome to its call context (which function, which
// argument or the return value) and renders one of three diagnostic
// shapes as a structured error. The stringifier runs only on failure.
package verify

import (
	"fmt"
	"strings"

	"github.com/funvibe/shapetypes/internal/runtime"
	"github.com/funvibe/shapetypes/internal/typesystem"
	"github.com/funvibe/shapetypes/internal/validator"
)

// TypeMismatchError carries the structured diagnostic fields alongside
// the rendered message. Formatting layers read the fields; everything
// else just prints Error().
type TypeMismatchError struct {
	// Owner is the declaring function, e.g. "move" or "Point::move".
	Owner string
	// Argument is the 1-based argument position, 0 for the return value.
	Argument int
	// Param is the declared parameter name; empty for the return value.
	Param string

	Category validator.Category

	// Expected is the canonical string of the narrowest failing type:
	// the whole declared type for a kind mismatch, the element type for
	// a wrong-typed key or element. Empty for a missing key.
	Expected string
	// Actual is the offending value's kind name. Empty for a missing key.
	Actual string
	// Key identifies the shape key for missing-key and key-level
	// failures, rendered as 'name' or a bare integer.
	Key string
	// Path locates the failure inside nested containers, e.g. [0]['user'].
	Path string
}

func (e *TypeMismatchError) Error() string {
	var out strings.Builder
	out.WriteString(e.Owner)
	out.WriteString("(): ")
	if e.Argument > 0 {
		fmt.Fprintf(&out, "Argument #%d ($%s) ", e.Argument, e.Param)
	} else {
		out.WriteString("Return value ")
	}

	switch e.Category {
	case validator.MissingKey:
		fmt.Fprintf(&out, "missing required key %s", e.Key)
		if e.Path != "" {
			fmt.Fprintf(&out, " at %s", e.Path)
		}

	case validator.WrongType:
		fmt.Fprintf(&out, "key %s must be of type %s, %s given", e.Key, e.Expected, e.Actual)

	default:
		given := "given"
		if e.Argument == 0 {
			given = "returned"
		}
		fmt.Fprintf(&out, "must be of type %s, %s %s", e.Expected, e.Actual, given)
	}
	return out.String()
}

// Verifier checks declared types at call boundaries.
type Verifier struct {
	v *validator.Validator
}

func New(registry *runtime.Registry) *Verifier {
	return &Verifier{v: validator.New(registry)}
}

// Argument verifies the n-th (1-based) argument of owner against t.
// Returns nil on pass, a *TypeMismatchError on failure.
func (vf *Verifier) Argument(owner string, n int, param string, t typesystem.Value, value runtime.Object) error {
	return vf.verify(owner, n, param, t, value)
}

// Return verifies owner's return value against t.
func (vf *Verifier) Return(owner string, t typesystem.Value, value runtime.Object) error {
	return vf.verify(owner, 0, "", t, value)
}

func (vf *Verifier) verify(owner string, n int, param string, t typesystem.Value, value runtime.Object) error {
	out := vf.v.Validate(t, value)
	if out.Pass {
		return nil
	}

	err := &TypeMismatchError{
		Owner:    owner,
		Argument: n,
		Param:    param,
		Category: out.Category,
	}

	switch out.Category {
	case validator.MissingKey:
		err.Key = out.Key.Inspect()
		err.Path = out.PathString()

	case validator.WrongType:
		err.Expected = typesystem.Stringify(out.Expected)
		err.Actual = runtime.KindName(out.Actual)
		err.Key = failingKey(out.Path)
		if len(out.Path) > 1 {
			err.Path = out.PathString()
		}

	default:
		err.Expected = typesystem.Stringify(t)
		err.Actual = runtime.KindName(value)
	}
	return err
}

// failingKey renders the slot where the wrong-typed value sits: the bare
// key for a depth-one failure, the full bracket chain when nested.
func failingKey(path []runtime.Key) string {
	if len(path) == 1 {
		return path[0].Inspect()
	}
	var out strings.Builder
	for _, k := range path {
		out.WriteByte('[')
		out.WriteString(k.Inspect())
		out.WriteByte(']')
	}
	return out.String()
}

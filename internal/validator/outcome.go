package validator

import (
	"strings"

	"github.com/funvibe/shapetypes/internal/runtime"
	"github.com/funvibe/shapetypes/internal/typesystem"
)

// Category classifies a validation failure.
type Category int

const (
	// KindMismatch: the value's kind satisfies no part of the declared type
	// (including a non-array where array<T> or a shape was required).
	KindMismatch Category = iota
	// MissingKey: a required shape key is absent.
	MissingKey
	// WrongType: a resolved key or element holds a value of the wrong type.
	WrongType
)

// Outcome is the validator's result. A failed outcome is an expected,
// recoverable value; callers decide whether to surface it or probe with it.
type Outcome struct {
	Pass     bool
	Category Category

	// Path locates the first failure: array indices and shape keys from the
	// outermost container down to the failing slot.
	Path []runtime.Key

	// Expected is the narrowest failing declared type: the element type for
	// an array-of failure, the declared element type for a shape key, the
	// whole type for a top-level kind mismatch. Unset for MissingKey.
	Expected typesystem.Value

	// Key is the missing key's identity when Category is MissingKey.
	Key runtime.Key

	// Actual is the offending value. Nil for MissingKey.
	Actual runtime.Object
}

func pass() Outcome { return Outcome{Pass: true} }

// PathString renders the failure path for diagnostics, e.g. [1]['user']['id'].
func (o Outcome) PathString() string {
	var out strings.Builder
	for _, k := range o.Path {
		out.WriteByte('[')
		out.WriteString(k.Inspect())
		out.WriteByte(']')
	}
	return out.String()
}

// Package shapetypes is the embedding surface for host integrations.
// It re-exports the compile / validate / stringify / equivalence /
// release cycle over compiled type descriptors without exposing the
// internal packages directly.
package shapetypes

import (
	"github.com/funvibe/shapetypes/internal/ast"
	"github.com/funvibe/shapetypes/internal/compiler"
	"github.com/funvibe/shapetypes/internal/parser"
	"github.com/funvibe/shapetypes/internal/runtime"
	"github.com/funvibe/shapetypes/internal/typesystem"
	"github.com/funvibe/shapetypes/internal/validator"
	"github.com/funvibe/shapetypes/internal/verify"
)

// Type is a compiled type descriptor. Immutable once constructed; the
// holder releases it exactly once when done.
type Type = typesystem.Value

// Node is a parsed type-expression tree, the compiler's input.
type Node = ast.Type

// Object is a live runtime value under validation.
type Object = runtime.Object

// Outcome is a validation result with first-failure detail.
type Outcome = validator.Outcome

// TypeMismatchError is the structured call-boundary diagnostic.
type TypeMismatchError = verify.TypeMismatchError

// Failure categories, re-exported for Outcome consumers.
const (
	KindMismatch = validator.KindMismatch
	MissingKey   = validator.MissingKey
	WrongType    = validator.WrongType
)

// ParseType parses a type expression into its syntax tree.
func ParseType(input string) (Node, error) {
	return parser.Parse(input)
}

// CompileType compiles a parsed type expression. Persistent marks
// long-lived declaration metadata; its class names are interned.
func CompileType(node Node, persistent bool) (Type, error) {
	return compiler.Compile(node, persistent)
}

// CompileString parses and compiles a type expression in one step.
func CompileString(input string, persistent bool) (Type, error) {
	node, err := parser.Parse(input)
	if err != nil {
		return typesystem.None, err
	}
	return compiler.Compile(node, persistent)
}

// Validate matches value against t, capturing the first failure.
// Validators cache class resolution; use NewValidator for repeated
// checks at one call site.
func Validate(t Type, value Object) Outcome {
	return validator.New(runtime.NewRegistry()).Validate(t, value)
}

// NewValidator returns a validator bound to a class registry.
func NewValidator(registry *runtime.Registry) *validator.Validator {
	return validator.New(registry)
}

// NewVerifier returns the call-boundary facade bound to a class registry.
func NewVerifier(registry *runtime.Registry) *verify.Verifier {
	return verify.New(registry)
}

// Stringify renders t canonically.
func Stringify(t Type) string { return typesystem.Stringify(t) }

// Equivalent reports structural equivalence of two compiled types.
func Equivalent(a, b Type) bool { return typesystem.Equivalent(a, b) }

// AddRef takes an additional reference on t's owned descriptors, for
// duplicating a signature that embeds t.
func AddRef(t Type) { typesystem.AddRef(t) }

// Release drops one reference on t's owned descriptors, freeing them
// recursively at zero. Call exactly once per owned reference.
func Release(t Type) { typesystem.Release(t) }

package config

// Type codes carried on primitive AST nodes. The compiler maps each code to
// its mask bit.
const (
	TypeCodeNull = iota
	TypeCodeFalse
	TypeCodeTrue
	TypeCodeBool
	TypeCodeInt
	TypeCodeFloat
	TypeCodeString
	TypeCodeArray
	TypeCodeObject
	TypeCodeResource
	TypeCodeCallable
	TypeCodeIterable
	TypeCodeVoid
	TypeCodeNever
	TypeCodeMixed
)

// TypeKeywords maps type-expression keywords to type codes. Any identifier
// not in this table parses as a class reference.
var TypeKeywords = map[string]int{
	"null":     TypeCodeNull,
	"false":    TypeCodeFalse,
	"true":     TypeCodeTrue,
	"bool":     TypeCodeBool,
	"int":      TypeCodeInt,
	"float":    TypeCodeFloat,
	"string":   TypeCodeString,
	"array":    TypeCodeArray,
	"object":   TypeCodeObject,
	"resource": TypeCodeResource,
	"callable": TypeCodeCallable,
	"iterable": TypeCodeIterable,
	"void":     TypeCodeVoid,
	"never":    TypeCodeNever,
	"mixed":    TypeCodeMixed,
}

// TraversableName is the interface an object must implement for a value to
// satisfy 'iterable'.
const TraversableName = "Traversable"

// MaxNestingDepth bounds type nesting in the compiler and recursion in the
// validator. Source nesting bounds depth already; this is a hard stop for
// pathological inputs.
const MaxNestingDepth = 64

package typesystem

import "github.com/funvibe/shapetypes/internal/config"

// Mask is the primitive-kind bitset of a type descriptor. Low bits encode
// which concrete kinds a plain type accepts; high bits tag the extended
// payloads and composite lists.
type Mask uint32

const (
	MaskNull Mask = 1 << iota
	MaskFalse
	MaskTrue
	MaskBool
	MaskInt
	MaskFloat
	MaskString
	MaskArray
	MaskObject
	MaskResource
	MaskCallable
	MaskIterable
	MaskVoid
	MaskNever
	MaskMixed
)

const (
	// MaskArrayOf tags an array<T> descriptor. Implies MaskArray.
	MaskArrayOf Mask = 1 << 24
	// MaskShape tags an array{...} descriptor. Implies MaskArray.
	MaskShape Mask = 1 << 25
	// MaskUnion tags a composite list with union semantics.
	MaskUnion Mask = 1 << 26
	// MaskIntersection tags a composite list with intersection semantics.
	MaskIntersection Mask = 1 << 27

	// MaskExtendedArray covers either extended array tag.
	MaskExtendedArray = MaskArrayOf | MaskShape

	// maskPure selects only the primitive-kind bits.
	maskPure Mask = (1 << 24) - 1
)

// Pure strips the tag bits, leaving only primitive-kind bits.
func (m Mask) Pure() Mask { return m & maskPure }

// Has reports whether all bits of other are set.
func (m Mask) Has(other Mask) bool { return m&other == other }

var codeMasks = map[int]Mask{
	config.TypeCodeNull:     MaskNull,
	config.TypeCodeFalse:    MaskFalse,
	config.TypeCodeTrue:     MaskTrue,
	config.TypeCodeBool:     MaskBool,
	config.TypeCodeInt:      MaskInt,
	config.TypeCodeFloat:    MaskFloat,
	config.TypeCodeString:   MaskString,
	config.TypeCodeArray:    MaskArray,
	config.TypeCodeObject:   MaskObject,
	config.TypeCodeResource: MaskResource,
	config.TypeCodeCallable: MaskCallable,
	config.TypeCodeIterable: MaskIterable,
	config.TypeCodeVoid:     MaskVoid,
	config.TypeCodeNever:    MaskNever,
	config.TypeCodeMixed:    MaskMixed,
}

// MaskForCode returns the mask bit for a primitive type code, or 0 for an
// unknown code.
func MaskForCode(code int) Mask {
	return codeMasks[code]
}

// maskKeywords drives the stringifier. Order matters: it fixes the canonical
// rendering of multi-bit masks.
var maskKeywords = []struct {
	bit  Mask
	name string
}{
	{MaskBool, "bool"},
	{MaskInt, "int"},
	{MaskFloat, "float"},
	{MaskString, "string"},
	{MaskArray, "array"},
	{MaskObject, "object"},
	{MaskResource, "resource"},
	{MaskCallable, "callable"},
	{MaskIterable, "iterable"},
	{MaskVoid, "void"},
	{MaskNever, "never"},
	{MaskNull, "null"},
	{MaskFalse, "false"},
	{MaskTrue, "true"},
	{MaskMixed, "mixed"},
}

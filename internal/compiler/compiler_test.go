package compiler

import (
	"testing"

	"github.com/funvibe/shapetypes/internal/ast"
	"github.com/funvibe/shapetypes/internal/parser"
	"github.com/funvibe/shapetypes/internal/typesystem"
)

func mustCompile(t *testing.T, input string) typesystem.Value {
	t.Helper()
	node, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	v, err := Compile(node, true)
	if err != nil {
		t.Fatalf("Compile(%q): %v", input, err)
	}
	return v
}

func TestCompileRoundTrip(t *testing.T) {
	// Stringify mirrors the compiler, so the canonical form must survive a
	// parse+compile round trip.
	tests := []struct {
		input string
		want  string
	}{
		{"int", "int"},
		{"?int", "?int"},
		{"int|null", "?int"},
		{"int|string", "int|string"},
		{"Countable&Traversable", "Countable&Traversable"},
		{"array<int>", "array<int>"},
		{"array<array<array<int>>>", "array<array<array<int>>>"},
		{"array{id: int, name?: string}", "array{id: int, name?: string}"},
		{"array{0: bool}", "array{0: bool}"},
		{"array<array{id: int}>", "array<array{id: int}>"},
		{"array{user: array{id: int}, tags: array<string>}", "array{user: array{id: int}, tags: array<string>}"},
		{"array<int>|array{id: int}", "array<int>|array{id: int}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := mustCompile(t, tt.input)
			defer typesystem.Release(v)
			if got := typesystem.Stringify(v); got != tt.want {
				t.Errorf("Stringify = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileDepth(t *testing.T) {
	tests := []struct {
		input string
		depth int
	}{
		{"array<int>", 1},
		{"array<array<int>>", 2},
		{"array<array<array<int>>>", 3},
		{"array<array{id: int}>", 1}, // shape elements do not add depth
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := mustCompile(t, tt.input)
			defer typesystem.Release(v)
			if got := v.ArrayOf().Depth(); got != tt.depth {
				t.Errorf("depth = %d, want %d", got, tt.depth)
			}
		})
	}
}

func TestCompileMaskBits(t *testing.T) {
	v := mustCompile(t, "array<int>")
	defer typesystem.Release(v)
	// The extended tag always implies the plain array bit.
	if !v.Mask().Has(typesystem.MaskArrayOf | typesystem.MaskArray) {
		t.Errorf("array<int> mask = %#x", v.Mask())
	}

	s := mustCompile(t, "array{id: int}")
	defer typesystem.Release(s)
	if !s.Mask().Has(typesystem.MaskShape | typesystem.MaskArray) {
		t.Errorf("shape mask = %#x", s.Mask())
	}
}

func TestCompileDuplicateShapeKey(t *testing.T) {
	for _, input := range []string{
		"array{id: int, id: string}",
		"array{1: int, 1: string}",
	} {
		node, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		before, beforeShapes := typesystem.LiveDescriptors()
		if _, err := Compile(node, true); err == nil {
			t.Errorf("Compile(%q) should reject duplicate keys", input)
		}
		after, afterShapes := typesystem.LiveDescriptors()
		if before != after || beforeShapes != afterShapes {
			t.Errorf("failed compile leaked descriptors")
		}
	}
}

func TestCompileUnknownNode(t *testing.T) {
	if _, err := Compile(nil, true); err == nil {
		t.Error("Compile(nil) should fail")
	}
}

func TestCompileFailureReleasesMembers(t *testing.T) {
	// A union whose second member fails must release the first.
	node := &ast.UnionType{Types: []ast.Type{
		&ast.ArrayOfType{Element: &ast.PrimitiveType{Code: 4}}, // int
		&ast.PrimitiveType{Code: -1},                           // invalid
	}}
	before, _ := typesystem.LiveDescriptors()
	if _, err := Compile(node, true); err == nil {
		t.Fatal("Compile should fail")
	}
	after, _ := typesystem.LiveDescriptors()
	if before != after {
		t.Errorf("failed union compile leaked %d array-of descriptors", after-before)
	}
}

func TestIndependentCompilesAreEquivalent(t *testing.T) {
	a := mustCompile(t, "array{id: int, name: string}")
	b := mustCompile(t, "array{id: int, name: string}")
	defer typesystem.Release(a)
	defer typesystem.Release(b)
	if !typesystem.Equivalent(a, b) {
		t.Error("independently compiled identical shapes should be equivalent")
	}
}

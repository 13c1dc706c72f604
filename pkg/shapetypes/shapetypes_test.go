package shapetypes

import (
	"testing"

	"github.com/funvibe/shapetypes/internal/runtime"
)

func TestCompileValidateCycle(t *testing.T) {
	tv, err := CompileString("array{id: int, tags?: array<string>}", false)
	if err != nil {
		t.Fatal(err)
	}
	defer Release(tv)

	user := runtime.NewArray()
	user.Set(runtime.StringKey("id"), &runtime.Integer{Value: 7})
	if out := Validate(tv, user); !out.Pass {
		t.Errorf("valid value rejected: %v", out.Category)
	}

	user.Set(runtime.StringKey("tags"), &runtime.String{Value: "oops"})
	out := Validate(tv, user)
	if out.Pass {
		t.Fatal("invalid tags accepted")
	}
	if out.PathString() != "['tags']" {
		t.Errorf("path = %q, want ['tags']", out.PathString())
	}
}

func TestParseThenCompile(t *testing.T) {
	node, err := ParseType("array<array{x: int, y: int}>")
	if err != nil {
		t.Fatal(err)
	}
	tv, err := CompileType(node, false)
	if err != nil {
		t.Fatal(err)
	}
	defer Release(tv)

	if got := Stringify(tv); got != "array<array{x: int, y: int}>" {
		t.Errorf("Stringify = %q", got)
	}
}

func TestEquivalentIndependentCompiles(t *testing.T) {
	a, err := CompileString("array{id: int, name?: string}", false)
	if err != nil {
		t.Fatal(err)
	}
	defer Release(a)
	b, err := CompileString("array{id: int, name?: string}", false)
	if err != nil {
		t.Fatal(err)
	}
	defer Release(b)

	if !Equivalent(a, b) {
		t.Error("identical declarations not equivalent")
	}

	c, err := CompileString("array{name?: string, id: int}", false)
	if err != nil {
		t.Fatal(err)
	}
	defer Release(c)
	if Equivalent(a, c) {
		t.Error("key order is part of shape identity")
	}
}

func TestVerifierDiagnostics(t *testing.T) {
	tv, err := CompileString("array<int>", false)
	if err != nil {
		t.Fatal(err)
	}
	defer Release(tv)

	vf := NewVerifier(runtime.NewRegistry())
	err = vf.Argument("sum", 1, "values", tv, &runtime.String{Value: "nope"})
	if err == nil {
		t.Fatal("expected error")
	}
	mismatch, ok := err.(*TypeMismatchError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if mismatch.Expected != "array<int>" || mismatch.Actual != "string" {
		t.Errorf("expected/actual = %q/%q", mismatch.Expected, mismatch.Actual)
	}
}

func TestAddRefRelease(t *testing.T) {
	tv, err := CompileString("array<array{id: int}>", false)
	if err != nil {
		t.Fatal(err)
	}

	AddRef(tv)
	Release(tv)

	// Still alive under the second reference.
	if got := Stringify(tv); got != "array<array{id: int}>" {
		t.Errorf("Stringify after partial release = %q", got)
	}
	Release(tv)
}

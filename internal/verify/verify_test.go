package verify

import (
	"errors"
	"testing"

	"github.com/funvibe/shapetypes/internal/compiler"
	"github.com/funvibe/shapetypes/internal/parser"
	"github.com/funvibe/shapetypes/internal/runtime"
	"github.com/funvibe/shapetypes/internal/typesystem"
	"github.com/funvibe/shapetypes/internal/validator"
)

func mustCompile(t *testing.T, input string) typesystem.Value {
	t.Helper()
	node, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	tv, err := compiler.Compile(node, false)
	if err != nil {
		t.Fatalf("compile %q: %v", input, err)
	}
	return tv
}

func TestArgumentPass(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "array<int>")
	defer typesystem.Release(tv)

	value := runtime.ArrayOf(&runtime.Integer{Value: 1})
	if err := vf.Argument("move", 1, "steps", tv, value); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestArgumentKindMismatch(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "array<int>")
	defer typesystem.Release(tv)

	err := vf.Argument("move", 1, "steps", tv, &runtime.String{Value: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "move(): Argument #1 ($steps) must be of type array<int>, string given"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}

	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatal("error is not a *TypeMismatchError")
	}
	if mismatch.Category != validator.KindMismatch {
		t.Errorf("category = %v, want KindMismatch", mismatch.Category)
	}
	if mismatch.Expected != "array<int>" || mismatch.Actual != "string" {
		t.Errorf("expected/actual = %q/%q", mismatch.Expected, mismatch.Actual)
	}
}

func TestArgumentMissingKey(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "array{id: int, name: string}")
	defer typesystem.Release(tv)

	value := runtime.NewArray()
	value.Set(runtime.StringKey("id"), &runtime.Integer{Value: 1})

	err := vf.Argument("save", 2, "user", tv, value)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "save(): Argument #2 ($user) missing required key 'name'"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestArgumentWrongKeyType(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "array{id: int}")
	defer typesystem.Release(tv)

	value := runtime.NewArray()
	value.Set(runtime.StringKey("id"), &runtime.String{Value: "1"})

	err := vf.Argument("save", 1, "user", tv, value)
	if err == nil {
		t.Fatal("expected error")
	}
	// The narrowest failing type, not the whole declaration.
	want := "save(): Argument #1 ($user) key 'id' must be of type int, string given"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestArgumentNestedWrongType(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "array{user: array{id: int}}")
	defer typesystem.Release(tv)

	inner := runtime.NewArray()
	inner.Set(runtime.StringKey("id"), &runtime.Float{Value: 1.5})
	value := runtime.NewArray()
	value.Set(runtime.StringKey("user"), inner)

	err := vf.Argument("save", 1, "payload", tv, value)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "save(): Argument #1 ($payload) key ['user']['id'] must be of type int, float given"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestArgumentWrongElementType(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "array<int>")
	defer typesystem.Release(tv)

	value := runtime.ArrayOf(&runtime.Integer{Value: 1}, &runtime.Boolean{Value: true})
	err := vf.Argument("sum", 1, "values", tv, value)
	if err == nil {
		t.Fatal("expected error")
	}
	want := "sum(): Argument #1 ($values) key 1 must be of type int, bool given"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestReturnValue(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "array{rows: array<int>}")
	defer typesystem.Release(tv)

	if err := vf.Return("load", tv, &runtime.Nil{}); err == nil {
		t.Fatal("expected error")
	} else {
		want := "load(): Return value must be of type array{rows: array<int>}, null returned"
		if err.Error() != want {
			t.Errorf("message = %q, want %q", err.Error(), want)
		}
	}

	good := runtime.NewArray()
	good.Set(runtime.StringKey("rows"), runtime.ArrayOf(&runtime.Integer{Value: 9}))
	if err := vf.Return("load", tv, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMethodOwner(t *testing.T) {
	vf := New(runtime.NewRegistry())
	tv := mustCompile(t, "int")
	defer typesystem.Release(tv)

	err := vf.Argument("Point::move", 1, "dx", tv, &runtime.String{Value: "3"})
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Point::move(): Argument #1 ($dx) must be of type int, string given"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

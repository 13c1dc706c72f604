package typesystem

import "testing"

func sampleShape(keys ...string) Value {
	elems := make([]ShapeElement, len(keys))
	for i, k := range keys {
		elems[i] = ShapeElement{Key: k, Type: NewPrimitive(MaskInt)}
	}
	return NewShape(elems)
}

func TestEquivalent(t *testing.T) {
	intType := NewPrimitive(MaskInt)
	stringType := NewPrimitive(MaskString)

	a := sampleShape("id", "name")
	b := sampleShape("id", "name")
	reordered := sampleShape("name", "id")
	extraOptional := NewShape([]ShapeElement{
		{Key: "id", Type: NewPrimitive(MaskInt)},
		{Key: "name", Type: NewPrimitive(MaskInt)},
		{Key: "email", Optional: true, Type: NewPrimitive(MaskString)},
	})
	defer func() {
		for _, v := range []Value{a, b, reordered, extraOptional} {
			Release(v)
		}
	}()

	arrayInt := NewArrayOf(intType)
	arrayInt2 := NewArrayOf(intType)
	arrayString := NewArrayOf(stringType)
	defer Release(arrayInt)
	defer Release(arrayInt2)
	defer Release(arrayString)

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"identical shapes compiled independently", a, b, true},
		{"reordered keys break equivalence", a, reordered, false},
		{"extra optional key breaks equivalence", a, extraOptional, false},
		{"array-of same element", arrayInt, arrayInt2, true},
		{"array-of different element", arrayInt, arrayString, false},
		{"array-of never matches shape", arrayInt, a, false},
		{"nullable array-of differs", arrayInt.WithNull(), arrayInt2, false},
		{"nullable shape differs", a.WithNull(), b, false},
		{"same masks", NewPrimitive(MaskInt | MaskNull), NewPrimitive(MaskInt | MaskNull), true},
		{"different masks", intType, stringType, false},
		{"class names case-insensitive", NewClass("Countable"), NewClass("countable"), true},
		{"class vs nameless", NewClass("Countable"), NewPrimitive(MaskObject), false},
		{"unions pairwise", NewUnion([]Value{intType, stringType}), NewUnion([]Value{intType, stringType}), true},
		{"union order matters", NewUnion([]Value{intType, stringType}), NewUnion([]Value{stringType, intType}), false},
		{"union vs intersection", NewUnion([]Value{intType, stringType}), NewIntersection([]Value{intType, stringType}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equivalent(tt.a, tt.b); got != tt.want {
				t.Errorf("Equivalent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapeHashPrefilter(t *testing.T) {
	a := sampleShape("id", "name")
	b := sampleShape("id", "name")
	c := sampleShape("name", "id")
	defer Release(a)
	defer Release(b)
	defer Release(c)

	if a.Shape().Hash() != b.Shape().Hash() {
		t.Errorf("identical shapes should hash identically")
	}
	if a.Shape().Hash() == c.Shape().Hash() {
		t.Errorf("declaration order should change the hash")
	}
}

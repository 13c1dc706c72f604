package runtime

import (
	"strconv"
	"strings"
)

// Key identifies one slot of an Array: a string key or a non-negative
// integer index, mutually exclusive.
type Key struct {
	Str      string
	Index    int64
	IsString bool
}

func StringKey(s string) Key { return Key{Str: s, IsString: true} }
func IndexKey(i int64) Key { return Key{Index: i} }

func (k Key) Inspect() string {
	if k.IsString {
		return "'" + k.Str + "'"
	}
	return strconv.FormatInt(k.Index, 10)
}

type entry struct {
	key   Key
	value Object
}

// Array is the host's ordered hash map: insertion-ordered entries with
// string or integer keys, O(1) lookup by key. Both lists and dictionaries
// of the host are this one structure.
type Array struct {
	entries []entry
	index   map[Key]int
	nextIdx int64
}

func NewArray() *Array {
	return &Array{index: make(map[Key]int)}
}

// ArrayOf builds a list-style array from values, with integer keys 0..n-1.
func ArrayOf(values ...Object) *Array {
	a := NewArray()
	for _, v := range values {
		a.Append(v)
	}
	return a
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }

func (a *Array) Inspect() string {
	var out strings.Builder
	out.WriteByte('[')
	for i, e := range a.entries {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(e.key.Inspect())
		out.WriteString(" => ")
		out.WriteString(e.value.Inspect())
	}
	out.WriteByte(']')
	return out.String()
}

func (a *Array) Hash() uint32 {
	h := uint32(1)
	for _, e := range a.entries {
		if e.key.IsString {
			h = 31*h + hashString(e.key.Str)
		} else {
			h = 31*h + uint32(e.key.Index)
		}
		h = 31*h + e.value.Hash()
	}
	return h
}

func (a *Array) Len() int { return len(a.entries) }

// At returns the i-th entry in insertion order.
func (a *Array) At(i int) (Key, Object) {
	e := a.entries[i]
	return e.key, e.value
}

// Set inserts or replaces the slot for key, preserving insertion order on
// replace.
func (a *Array) Set(key Key, value Object) {
	if i, ok := a.index[key]; ok {
		a.entries[i].value = value
		return
	}
	a.index[key] = len(a.entries)
	a.entries = append(a.entries, entry{key: key, value: value})
	if !key.IsString && key.Index >= a.nextIdx {
		a.nextIdx = key.Index + 1
	}
}

// Append inserts value at the next free integer index.
func (a *Array) Append(value Object) {
	a.Set(IndexKey(a.nextIdx), value)
}

func (a *Array) Get(key Key) (Object, bool) {
	if i, ok := a.index[key]; ok {
		return a.entries[i].value, true
	}
	return nil, false
}

func (a *Array) GetString(key string) (Object, bool) { return a.Get(StringKey(key)) }
func (a *Array) GetIndex(i int64) (Object, bool) { return a.Get(IndexKey(i)) }

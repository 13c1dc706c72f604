package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/shapetypes/internal/typesystem"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
functions:
  - name: move
    params:
      - name: point
        type: "array{x: int, y: int}"
      - name: steps
        type: "array<int>"
        optional: true
    return: "?array{x: int, y: int}"
  - name: tags
    return: "array<string>"
`)
	cfg, err := ParseConfig(data, "signatures.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Functions, 2)

	move := cfg.Functions[0]
	assert.Equal(t, "move", move.Name)
	require.Len(t, move.Params, 2)
	assert.Equal(t, "array{x: int, y: int}", move.Params[0].Type)
	assert.True(t, move.Params[1].Optional)
	assert.Equal(t, "?array{x: int, y: int}", move.Return)

	assert.Empty(t, cfg.Functions[1].Params)
}

func TestParseConfigRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing function name", "functions:\n  - params:\n      - {name: x, type: int}\n"},
		{"duplicate function", "functions:\n  - name: f\n  - name: f\n"},
		{"missing param type", "functions:\n  - name: f\n    params:\n      - {name: x}\n"},
		{"missing param name", "functions:\n  - name: f\n    params:\n      - {type: int}\n"},
		{"duplicate param", "functions:\n  - name: f\n    params:\n      - {name: x, type: int}\n      - {name: x, type: string}\n"},
		{"not yaml", ": ["},
	}
	for _, tt := range tests {
		_, err := ParseConfig([]byte(tt.data), "signatures.yaml")
		assert.Error(t, err, tt.name)
	}
}

func TestDefineAndLookup(t *testing.T) {
	r := New(nil)
	sig, err := r.Define(FunctionDecl{
		Name: "move",
		Params: []ParamDecl{
			{Name: "point", Type: "array{x: int, y: int}"},
		},
		Return: "array<int>",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sig.ID)

	got, ok := r.Lookup("move")
	require.True(t, ok)
	assert.Same(t, sig, got)
	assert.True(t, got.Params[0].Type.IsShape())
	assert.True(t, got.HasReturn)
	assert.Equal(t, "array<int>", typesystem.Stringify(got.Return))

	r.Remove("move")
	_, ok = r.Lookup("move")
	assert.False(t, ok)
}

func TestDefineCompileError(t *testing.T) {
	beforeArr, beforeShapes := typesystem.LiveDescriptors()
	r := New(nil)
	_, err := r.Define(FunctionDecl{
		Name: "broken",
		Params: []ParamDecl{
			{Name: "ok", Type: "array{id: int}"},
			{Name: "bad", Type: "array<"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `param "bad"`)

	// The successfully compiled first param must not leak.
	afterArr, afterShapes := typesystem.LiveDescriptors()
	assert.Equal(t, beforeArr, afterArr)
	assert.Equal(t, beforeShapes, afterShapes)
	_, ok := r.Lookup("broken")
	assert.False(t, ok)
}

func TestCloneSharesDescriptors(t *testing.T) {
	beforeArr, beforeShapes := typesystem.LiveDescriptors()
	r := New(nil)
	_, err := r.Define(FunctionDecl{
		Name:   "load",
		Params: []ParamDecl{{Name: "filter", Type: "array{tag?: string}"}},
		Return: "array<array{id: int}>",
	})
	require.NoError(t, err)

	clone, err := r.Clone("load")
	require.NoError(t, err)
	orig, _ := r.Lookup("load")
	assert.NotEqual(t, orig.ID, clone.ID)

	// Shared payloads: the clone sees the same descriptor trees.
	assert.True(t, typesystem.Equivalent(orig.Params[0].Type, clone.Params[0].Type))

	// Releasing the clone must not tear down the original's descriptors.
	Release(clone)
	sig, ok := r.Lookup("load")
	require.True(t, ok)
	assert.True(t, sig.Params[0].Type.IsShape())
	assert.Equal(t, "array<array{id: int}>", typesystem.Stringify(sig.Return))

	r.Remove("load")
	afterArr, afterShapes := typesystem.LiveDescriptors()
	assert.Equal(t, beforeArr, afterArr)
	assert.Equal(t, beforeShapes, afterShapes)
}

func TestRedefineReleasesOld(t *testing.T) {
	beforeArr, beforeShapes := typesystem.LiveDescriptors()
	r := New(nil)

	_, err := r.Define(FunctionDecl{Name: "f", Return: "array<int>"})
	require.NoError(t, err)
	_, err = r.Define(FunctionDecl{Name: "f", Return: "array<string>"})
	require.NoError(t, err)

	sig, ok := r.Lookup("f")
	require.True(t, ok)
	assert.Equal(t, "array<string>", typesystem.Stringify(sig.Return))

	r.Remove("f")
	afterArr, afterShapes := typesystem.LiveDescriptors()
	assert.Equal(t, beforeArr, afterArr)
	assert.Equal(t, beforeShapes, afterShapes)
}

func TestCloneUnknown(t *testing.T) {
	r := New(nil)
	_, err := r.Clone("nope")
	assert.Error(t, err)
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	r := New(nil)
	r.Remove("nope")
}

func TestLoadConfigIntoRegistry(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
functions:
  - name: save
    params:
      - name: user
        type: "array{id: int, name: string, tags?: array<string>}"
`), "signatures.yaml")
	require.NoError(t, err)

	r := New(nil)
	require.NoError(t, r.Load(cfg))
	assert.Equal(t, []string{"save"}, r.Names())
}

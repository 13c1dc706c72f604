package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/funvibe/shapetypes/internal/compiler"
	"github.com/funvibe/shapetypes/internal/logging"
	"github.com/funvibe/shapetypes/internal/parser"
	"github.com/funvibe/shapetypes/internal/typesystem"
)

// Param is a compiled parameter declaration.
type Param struct {
	Name     string
	Type     typesystem.Value
	Optional bool
}

// Signature is a compiled function declaration. Its type values own
// references to their descriptors; the registry releases them when the
// signature is removed. HasReturn distinguishes a declared return type
// from an undeclared one.
type Signature struct {
	ID        string
	Name      string
	Params    []Param
	Return    typesystem.Value
	HasReturn bool
}

// Registry maps function names to compiled signatures. Compilation
// happens once per declaration; lookups hand out the shared compiled
// values without copying.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Signature
	logger *slog.Logger
}

func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{
		byName: make(map[string]*Signature),
		logger: logger,
	}
}

// Load compiles and registers every declaration in cfg. On a compile
// error nothing from the failing declaration is kept.
func (r *Registry) Load(cfg *Config) error {
	for _, fn := range cfg.Functions {
		if _, err := r.Define(fn); err != nil {
			return err
		}
	}
	return nil
}

// Define compiles one declaration and registers it under its name.
func (r *Registry) Define(decl FunctionDecl) (*Signature, error) {
	sig := &Signature{
		ID:     uuid.NewString(),
		Name:   decl.Name,
		Params: make([]Param, 0, len(decl.Params)),
	}

	for _, p := range decl.Params {
		tv, err := compileExpr(p.Type)
		if err != nil {
			sig.release()
			return nil, fmt.Errorf("%s: param %q: %w", decl.Name, p.Name, err)
		}
		sig.Params = append(sig.Params, Param{Name: p.Name, Type: tv, Optional: p.Optional})
	}

	if decl.Return != "" {
		tv, err := compileExpr(decl.Return)
		if err != nil {
			sig.release()
			return nil, fmt.Errorf("%s: return: %w", decl.Name, err)
		}
		sig.Return = tv
		sig.HasReturn = true
	}

	r.mu.Lock()
	old, replaced := r.byName[decl.Name]
	r.byName[decl.Name] = sig
	r.mu.Unlock()
	if replaced {
		old.release()
	}

	r.logger.Debug("signature defined", "name", sig.Name, "id", sig.ID, "params", len(sig.Params))
	return sig, nil
}

// Lookup returns the registered signature for name.
func (r *Registry) Lookup(name string) (*Signature, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sig, ok := r.byName[name]
	return sig, ok
}

// Clone duplicates a registered signature under a fresh ID. The clone
// shares the compiled descriptors, with their refcounts bumped, so the
// original and the clone release independently.
func (r *Registry) Clone(name string) (*Signature, error) {
	r.mu.RLock()
	sig, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown signature %q", name)
	}

	dup := &Signature{
		ID:        uuid.NewString(),
		Name:      sig.Name,
		Params:    make([]Param, len(sig.Params)),
		Return:    sig.Return,
		HasReturn: sig.HasReturn,
	}
	copy(dup.Params, sig.Params)

	for _, p := range dup.Params {
		typesystem.AddRef(p.Type)
	}
	if dup.HasReturn {
		typesystem.AddRef(dup.Return)
	}
	return dup, nil
}

// Remove unregisters name and releases its compiled descriptors.
// Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	sig, ok := r.byName[name]
	delete(r.byName, name)
	r.mu.Unlock()
	if ok {
		sig.release()
		r.logger.Debug("signature removed", "name", name, "id", sig.ID)
	}
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Release releases a detached signature (a Clone the caller owns).
func Release(sig *Signature) { sig.release() }

func (s *Signature) release() {
	for _, p := range s.Params {
		typesystem.Release(p.Type)
	}
	s.Params = nil
	if s.HasReturn {
		typesystem.Release(s.Return)
		s.HasReturn = false
	}
}

// compileExpr parses and compiles one type expression as persistent
// metadata, interning class names.
func compileExpr(input string) (typesystem.Value, error) {
	node, err := parser.Parse(input)
	if err != nil {
		return typesystem.None, err
	}
	return compiler.Compile(node, true)
}

package typesystem

import "sync"

// Interner deduplicates strings used as type identities (class names, shape
// keys) so repeated compilations of the same declaration share storage and
// compare cheaply. Lifetime is the lifetime of the table, not of any single
// declaration.
type Interner struct {
	mu      sync.RWMutex
	strings map[string]string
}

func NewInterner() *Interner {
	return &Interner{strings: make(map[string]string)}
}

func (in *Interner) Intern(s string) string {
	in.mu.RLock()
	if interned, ok := in.strings[s]; ok {
		in.mu.RUnlock()
		return interned
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if interned, ok := in.strings[s]; ok {
		return interned
	}
	in.strings[s] = s
	return s
}

// defaultInterner is the documented process-wide table. Compilation is the
// only writer; readers never observe partial state.
var defaultInterner = NewInterner()

// Intern deduplicates s through the process-wide table.
func Intern(s string) string {
	return defaultInterner.Intern(s)
}

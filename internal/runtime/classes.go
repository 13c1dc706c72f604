package runtime

import (
	"strings"
	"sync"

	"github.com/funvibe/shapetypes/internal/config"
)

// Class describes a host class or interface: name, optional parent, and the
// interfaces it implements directly.
type Class struct {
	Name        string
	Parent      string
	Interfaces  []string
	IsInterface bool
}

// Registry resolves class names to descriptors. Lookups are
// case-insensitive, matching the host's class semantics. Type descriptors
// store bare names at compile time and resolve through a Registry lazily at
// check time, so a declaration may reference a class defined later.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
}

func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

func (r *Registry) Define(c *Class) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[strings.ToLower(c.Name)] = c
}

func (r *Registry) Lookup(name string) (*Class, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[strings.ToLower(name)]
	return c, ok
}

// InstanceOf reports whether class satisfies a requirement named want: the
// class itself, any ancestor, or any interface reachable through the
// ancestry (including interface parents).
func (r *Registry) InstanceOf(class *Class, want string) bool {
	for c := class; c != nil; {
		if strings.EqualFold(c.Name, want) {
			return true
		}
		for _, iface := range c.Interfaces {
			if r.interfaceSatisfies(iface, want) {
				return true
			}
		}
		if c.Parent == "" {
			return false
		}
		parent, ok := r.Lookup(c.Parent)
		if !ok {
			return false
		}
		c = parent
	}
	return false
}

func (r *Registry) interfaceSatisfies(iface, want string) bool {
	if strings.EqualFold(iface, want) {
		return true
	}
	c, ok := r.Lookup(iface)
	if !ok {
		return false
	}
	for _, parent := range c.Interfaces {
		if r.interfaceSatisfies(parent, want) {
			return true
		}
	}
	return false
}

// Iterable reports whether instances of class can be iterated: the class
// implements the traversable interface.
func (r *Registry) Iterable(class *Class) bool {
	return r.InstanceOf(class, config.TraversableName)
}

// Instance is an object value: a reference to its class descriptor plus an
// identity. Properties are irrelevant to type checking and omitted.
type Instance struct {
	Class *Class
	ID    uint32
}

func (i *Instance) Type() ObjectType { return INSTANCE_OBJ }
func (i *Instance) Inspect() string { return "object(" + i.Class.Name + ")" }
func (i *Instance) Hash() uint32 { return hashString(i.Class.Name) ^ i.ID }

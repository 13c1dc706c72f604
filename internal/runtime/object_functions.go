package runtime

// Closure is an opaque callable value. The checker only cares that it is
// callable; bodies live in the host interpreter.
type Closure struct {
	Name string
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string {
	if c.Name != "" {
		return "Closure(" + c.Name + ")"
	}
	return "Closure"
}
func (c *Closure) Hash() uint32 { return hashString(c.Name) }

// Resource is an opaque handle to an external facility.
type Resource struct {
	Kind string
}

func (r *Resource) Type() ObjectType { return RESOURCE_OBJ }
func (r *Resource) Inspect() string { return "resource(" + r.Kind + ")" }
func (r *Resource) Hash() uint32 { return hashString(r.Kind) }

// Reference is a by-reference binding: one level of indirection the checker
// dereferences before inspecting a value's kind.
type Reference struct {
	Target Object
}

func (r *Reference) Type() ObjectType { return REFERENCE_OBJ }
func (r *Reference) Inspect() string { return "&" + r.Target.Inspect() }
func (r *Reference) Hash() uint32 { return r.Target.Hash() }

func (r *Reference) Deref() Object { return r.Target }

package runtime

import "hash/fnv"

type ObjectType string

const (
	NIL_OBJ       = "NIL"
	BOOLEAN_OBJ   = "BOOLEAN"
	INTEGER_OBJ   = "INTEGER"
	FLOAT_OBJ     = "FLOAT"
	STRING_OBJ    = "STRING"
	ARRAY_OBJ     = "ARRAY"
	INSTANCE_OBJ  = "INSTANCE"
	CLOSURE_OBJ   = "CLOSURE"
	RESOURCE_OBJ  = "RESOURCE"
	REFERENCE_OBJ = "REFERENCE"
)

// Object is a live value of the host runtime, the thing type declarations
// are checked against.
type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// KindName returns the host-visible kind name used in diagnostics
// ("int given", "string given", ...). Instances report their class name.
func KindName(o Object) string {
	switch obj := o.(type) {
	case *Nil:
		return "null"
	case *Boolean:
		return "bool"
	case *Integer:
		return "int"
	case *Float:
		return "float"
	case *String:
		return "string"
	case *Array:
		return "array"
	case *Instance:
		return obj.Class.Name
	case *Closure:
		return "Closure"
	case *Resource:
		return "resource"
	case *Reference:
		return KindName(obj.Deref())
	default:
		return string(o.Type())
	}
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

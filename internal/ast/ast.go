package ast

import (
	"github.com/funvibe/shapetypes/internal/token"
)

// Type represents a type-expression node.
// E.g. int, ?string, array<int>, array{id: int, name?: string}, A|B, A&B.
type Type interface {
	typeNode()
	GetToken() token.Token
}

// PrimitiveType represents a built-in type keyword like 'int' or 'string'.
// Code is the type code resolved by the parser from the keyword table.
type PrimitiveType struct {
	Token token.Token // The keyword's token
	Code  int
}

func (pt *PrimitiveType) typeNode()             {}
func (pt *PrimitiveType) GetToken() token.Token { return pt.Token }

// ClassType represents a class or interface reference, e.g. 'Countable'.
type ClassType struct {
	Token token.Token
	Name  string
}

func (ct *ClassType) typeNode()             {}
func (ct *ClassType) GetToken() token.Token { return ct.Token }

// NullableType represents ?T.
type NullableType struct {
	Token token.Token // The '?' token
	Inner Type
}

func (nt *NullableType) typeNode()             {}
func (nt *NullableType) GetToken() token.Token { return nt.Token }

// UnionType represents T|U|V (at least 2 members).
type UnionType struct {
	Token token.Token // first member's token
	Types []Type
}

func (ut *UnionType) typeNode()             {}
func (ut *UnionType) GetToken() token.Token { return ut.Token }

// IntersectionType represents T&U&V (at least 2 members).
type IntersectionType struct {
	Token token.Token
	Types []Type
}

func (it *IntersectionType) typeNode()             {}
func (it *IntersectionType) GetToken() token.Token { return it.Token }

// ArrayOfType represents array<T>.
type ArrayOfType struct {
	Token   token.Token // The 'array' token
	Element Type
}

func (at *ArrayOfType) typeNode()             {}
func (at *ArrayOfType) GetToken() token.Token { return at.Token }

// ShapeType represents array{key: T, key2?: U, ...}.
type ShapeType struct {
	Token    token.Token // The 'array' token
	Elements []*ShapeElement
}

func (st *ShapeType) typeNode()             {}
func (st *ShapeType) GetToken() token.Token { return st.Token }

// ShapeElement is a single key: type pair inside a shape.
// Exactly one of Key (string) or a non-negative IntKey is the identity;
// IsIntKey selects which.
type ShapeElement struct {
	Token    token.Token // The key's token
	Key      string
	IntKey   int64
	IsIntKey bool
	Optional bool
	Type     Type
}

func (se *ShapeElement) GetToken() token.Token { return se.Token }

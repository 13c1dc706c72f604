package parser

import (
	"strconv"

	"github.com/funvibe/shapetypes/internal/ast"
	"github.com/funvibe/shapetypes/internal/config"
	"github.com/funvibe/shapetypes/internal/diagnostics"
	"github.com/funvibe/shapetypes/internal/lexer"
	"github.com/funvibe/shapetypes/internal/token"
)

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*diagnostics.Error
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	// Read two tokens so curToken and peekToken are both set.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses one complete type expression from input.
func Parse(input string) (ast.Type, error) {
	p := New(lexer.New(input))
	t := p.ParseType()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if t == nil {
		return nil, diagnostics.NewError("T001", p.curToken, "empty type expression")
	}
	if !p.curTokenIs(token.EOF) {
		return nil, diagnostics.NewError("T002", p.curToken, "unexpected %q after type expression", p.curToken.Lexeme)
	}
	return t, nil
}

func (p *Parser) Errors() []*diagnostics.Error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("T003", "expected %q, got %q", string(t), p.peekToken.Lexeme)
	return false
}

func (p *Parser) addError(code string, format string, args ...interface{}) {
	p.errors = append(p.errors, diagnostics.NewError(code, p.curToken, format, args...))
}

// ParseType parses a full type expression and leaves curToken on the token
// AFTER the expression.
func (p *Parser) ParseType() ast.Type {
	t := p.parseIntersectionType()
	if t == nil {
		return nil
	}

	if !p.curTokenIs(token.PIPE) {
		return t
	}

	types := []ast.Type{t}
	for p.curTokenIs(token.PIPE) {
		p.nextToken() // consume '|'
		next := p.parseIntersectionType()
		if next == nil {
			return nil
		}
		types = append(types, next)
	}
	return &ast.UnionType{Token: t.GetToken(), Types: types}
}

func (p *Parser) parseIntersectionType() ast.Type {
	t := p.parseAtomType()
	if t == nil {
		return nil
	}

	if !p.curTokenIs(token.AMP) {
		return t
	}

	types := []ast.Type{t}
	for p.curTokenIs(token.AMP) {
		p.nextToken() // consume '&'
		next := p.parseAtomType()
		if next == nil {
			return nil
		}
		types = append(types, next)
	}
	return &ast.IntersectionType{Token: t.GetToken(), Types: types}
}

// parseAtomType parses one non-composite type and leaves curToken on the
// token after it.
func (p *Parser) parseAtomType() ast.Type {
	switch p.curToken.Type {
	case token.QUESTION:
		tok := p.curToken
		p.nextToken()
		inner := p.parseAtomType()
		if inner == nil {
			return nil
		}
		return &ast.NullableType{Token: tok, Inner: inner}

	case token.LPAREN:
		p.nextToken()
		t := p.ParseType()
		if t == nil {
			return nil
		}
		if !p.curTokenIs(token.RPAREN) {
			p.addError("T004", "expected ')', got %q", p.curToken.Lexeme)
			return nil
		}
		p.nextToken()
		return t

	case token.IDENT:
		return p.parseNamedType()

	default:
		p.addError("T005", "unexpected %q in type expression", p.curToken.Lexeme)
		return nil
	}
}

func (p *Parser) parseNamedType() ast.Type {
	tok := p.curToken
	name := p.curToken.Lexeme

	code, isKeyword := config.TypeKeywords[name]
	if isKeyword && code == config.TypeCodeArray {
		if p.peekTokenIs(token.LT) {
			return p.parseArrayOfType(tok)
		}
		if p.peekTokenIs(token.LBRACE) {
			return p.parseShapeType(tok)
		}
	}

	p.nextToken()
	if isKeyword {
		return &ast.PrimitiveType{Token: tok, Code: code}
	}
	return &ast.ClassType{Token: tok, Name: name}
}

// parseArrayOfType parses array<T>; curToken is 'array', peekToken '<'.
func (p *Parser) parseArrayOfType(tok token.Token) ast.Type {
	p.nextToken() // onto '<'
	p.nextToken() // onto element type
	elem := p.ParseType()
	if elem == nil {
		return nil
	}
	if !p.curTokenIs(token.GT) {
		p.addError("T006", "expected '>' to close array<...>, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()
	return &ast.ArrayOfType{Token: tok, Element: elem}
}

// parseShapeType parses array{key: T, ...}; curToken is 'array', peekToken '{'.
func (p *Parser) parseShapeType(tok token.Token) ast.Type {
	p.nextToken() // onto '{'
	p.nextToken() // onto first key

	var elements []*ast.ShapeElement
	for !p.curTokenIs(token.RBRACE) {
		elem := p.parseShapeElement()
		if elem == nil {
			return nil
		}
		elements = append(elements, elem)

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.curTokenIs(token.RBRACE) {
			p.addError("T007", "expected ',' or '}' in shape, got %q", p.curToken.Lexeme)
			return nil
		}
	}
	p.nextToken() // consume '}'

	if len(elements) == 0 {
		p.addError("T008", "shape must declare at least one element")
		return nil
	}
	return &ast.ShapeType{Token: tok, Elements: elements}
}

func (p *Parser) parseShapeElement() *ast.ShapeElement {
	elem := &ast.ShapeElement{Token: p.curToken}

	switch p.curToken.Type {
	case token.IDENT, token.STRING:
		elem.Key = p.curToken.Literal
	case token.INT:
		n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil || n < 0 {
			p.addError("T009", "shape key must be a string or non-negative integer")
			return nil
		}
		elem.IntKey = n
		elem.IsIntKey = true
	default:
		p.addError("T009", "shape key must be a string or integer, got %q", p.curToken.Lexeme)
		return nil
	}

	if p.peekTokenIs(token.QUESTION) {
		p.nextToken()
		elem.Optional = true
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken() // onto element type

	elem.Type = p.ParseType()
	if elem.Type == nil {
		return nil
	}
	return elem
}

package parser

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/token"
)

var primitiveTypeNames = map[string]bool{
	"int": true, "i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"double": true, "bool": true, "string": true, "str": true, "void": true,
}

// parseTypeExpr parses a type annotation: a primitive/named base, optionally
// wrapped in `ref` or followed by array suffixes (§4.2). The parser does not
// resolve names to declarations; that is the analyzer's job.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	if p.curTokenIs(token.REF) {
		tok := p.curToken
		p.nextToken()
		elem := p.parseTypeExpr()
		return &ast.RefTypeExpr{Token: tok, Elem: elem}
	}
	base := p.parseTypeExprPrimary()
	return p.parseArraySuffixes(base)
}

// parseTypeExprPrimary parses the base of a type expression (before any `[`
// array suffix or preceding `ref`), used directly by `new T[n]`.
func (p *Parser) parseTypeExprPrimary() ast.TypeExpr {
	if !p.curTokenIs(token.IDENT) {
		p.errorf(diag.ParseUnexpectedToken, "expected a type name, found %s %q", p.curToken.Type, p.curToken.Lexeme)
		return nil
	}
	tok := p.curToken
	if primitiveTypeNames[tok.Lexeme] {
		return &ast.PrimitiveTypeExpr{Token: tok, Name: tok.Lexeme}
	}

	path := []string{tok.Lexeme}
	for p.peekTokenIs(token.DOT) {
		p.nextToken() // consume '.'
		if !p.expectPeek(token.IDENT) {
			p.recover()
			return &ast.NamedTypeExpr{Token: tok, Path: path, Name: path[len(path)-1]}
		}
		path = append(path, p.curToken.Lexeme)
	}
	if len(path) > 2 {
		p.errorf(diag.ParseInvalidTypePath, "type path %q has more than one namespace segment", joinDotted(path))
	}
	return &ast.NamedTypeExpr{Token: tok, Path: path, Name: path[len(path)-1]}
}

// parseArraySuffixes consumes zero or more trailing `[]` / `[N]` suffixes,
// left-associative: `int[2][]` is an unsized array of 2-element int arrays.
func (p *Parser) parseArraySuffixes(base ast.TypeExpr) ast.TypeExpr {
	for p.peekTokenIs(token.LBRACKET) {
		tok := p.peekToken
		p.nextToken() // consume '['
		if p.peekTokenIs(token.RBRACKET) {
			p.nextToken()
			base = &ast.ArrayTypeExpr{Token: tok, Elem: base}
			continue
		}
		p.nextToken()
		size := p.parseExpression(LOWEST)
		if !p.expectPeek(token.RBRACKET) {
			p.recover()
			return base
		}
		base = &ast.ArrayTypeExpr{Token: tok, Elem: base, Size: size}
	}
	return base
}

func joinDotted(path []string) string {
	out := path[0]
	for _, s := range path[1:] {
		out += "." + s
	}
	return out
}

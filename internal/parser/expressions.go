package parser

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.errorf(diag.ParseUnexpectedToken, "expression nested too deeply")
		return nil
	}

	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(diag.ParseUnexpectedToken, "unexpected token %q in expression position", p.curToken.Lexeme)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) identifierFromToken(tok token.Token) *ast.Identifier {
	return &ast.Identifier{Token: tok, Value: tok.Lexeme}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	if tok.Type == token.FLOAT {
		v, _ := tok.Literal.(float64)
		return &ast.NumberLiteral{Token: tok, IsFloat: true, FltValue: v}
	}
	v, _ := tok.Literal.(int64)
	return &ast.NumberLiteral{Token: tok, IntValue: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	s, _ := tok.Literal.(string)
	return &ast.StringLiteral{Token: tok, Value: s}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		p.recover()
		return exp
	}
	return exp
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	return &ast.UnaryExpression{Token: tok, Operator: tok.Lexeme, Right: right}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	return &ast.PrefixExpression{Token: tok, Operator: tok.Lexeme, Right: right}
}

func (p *Parser) parsePostfixExpression(left ast.Expression) ast.Expression {
	return &ast.PostfixExpression{Token: p.curToken, Left: left, Operator: p.curToken.Lexeme}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	precedence := p.curPrecedence()
	op := tok.Lexeme
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	tok := p.curToken // '?'
	p.nextToken()
	cons := p.parseExpression(TERNARY)
	if !p.expectPeek(token.COLON) {
		p.recover()
		return nil
	}
	p.nextToken()
	alt := p.parseExpression(TERNARY)
	return &ast.TernaryExpression{Token: tok, Condition: cond, Consequence: cons, Alternative: alt}
}

// parseAssignExpression handles `=`, `+=`, `-=`, `*=`, `/=`, dispatching to
// the node shape appropriate for the assignment target (§4.2's
// InvalidAssignmentTarget covers everything that isn't an identifier,
// member, or index expression).
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	compound := ""
	switch tok.Type {
	case token.PLUS_ASSIGN:
		compound = "+"
	case token.MINUS_ASSIGN:
		compound = "-"
	case token.STAR_ASSIGN:
		compound = "*"
	case token.SLASH_ASSIGN:
		compound = "/"
	}
	p.nextToken()
	value := p.parseExpression(ASSIGN)

	switch t := left.(type) {
	case *ast.Identifier:
		return &ast.AssignExpression{Token: tok, Target: t, Value: value, CompoundOp: compound}
	case *ast.MemberExpression:
		return &ast.MemberAssignExpression{Token: tok, Object: t.Object, Property: t.Property, PropertyIndex: -1, Value: value}
	case *ast.IndexExpression:
		return &ast.IndexAssignExpression{Token: tok, Left: t.Left, Index: t.Index, Value: value}
	default:
		p.errorf(diag.ParseInvalidAssignment, "invalid assignment target")
		return nil
	}
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	tok := p.curToken // '('
	args := p.parseExpressionList(token.RPAREN)
	if method, ok := fn.(*ast.MemberExpression); ok {
		return &ast.MethodCallExpression{Token: tok, Receiver: method.Object, Method: method.Property, Arguments: args}
	}
	return &ast.CallExpression{Token: tok, Function: fn, Arguments: args}
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		p.recover()
	}
	return list
}

func (p *Parser) parseDotExpression(obj ast.Expression) ast.Expression {
	tok := p.curToken // '.'
	if !p.expectPeek(token.IDENT) {
		p.recover()
		return nil
	}
	prop := p.identifierFromToken(p.curToken)
	return &ast.MemberExpression{Token: tok, Object: obj, Property: prop, PropertyIndex: -1}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken // '['
	p.nextToken()
	idx := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		p.recover()
		return nil
	}
	return &ast.IndexExpression{Token: tok, Left: left, Index: idx}
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.curToken // '{'
	lit := &ast.ObjectLiteral{Token: tok}
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT) {
			p.recover()
			return lit
		}
		key := p.identifierFromToken(p.curToken)
		if !p.expectPeek(token.COLON) {
			p.recover()
			return lit
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		lit.Fields = append(lit.Fields, ast.ObjectLiteralField{Key: key, Value: value})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RBRACE) {
		p.recover()
	}
	return lit
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.curToken // '['
	return &ast.ArrayLiteral{Token: tok, Elements: p.parseExpressionList(token.RBRACKET)}
}

func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken // 'new'
	p.nextToken()
	elemType := p.parseTypeExprPrimary()
	if !p.expectPeek(token.LBRACKET) {
		p.recover()
		return nil
	}
	p.nextToken()
	size := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		p.recover()
		return nil
	}
	return &ast.NewExpression{Token: tok, ElemType: elemType, SizeExpr: size}
}

func (p *Parser) parseDeleteExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(PREFIX)
	return &ast.DeleteExpression{Token: tok, Value: value}
}

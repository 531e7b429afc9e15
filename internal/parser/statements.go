package parser

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarDeclaration()
	case token.FUNCTION, token.EXTERNAL:
		return p.parseFunctionDeclaration(false)
	case token.STRUCT:
		return p.parseStructDeclaration(false)
	case token.ENUM:
		return p.parseEnumDeclaration(false)
	case token.TRAIT:
		return p.parseTraitDeclaration(false)
	case token.IMPL:
		return p.parseImplDeclaration()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.EXPORT:
		return p.parseExportStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		stmt := &ast.BreakStatement{Token: p.curToken}
		p.expectSemicolon()
		return stmt
	case token.CONTINUE:
		stmt := &ast.ContinueStatement{Token: p.curToken}
		p.expectSemicolon()
		return stmt
	case token.RETURN:
		return p.parseReturnStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	p.expectSemicolon()
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken() // consume '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		before := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.curToken == before {
			p.errorf(diag.ParseStuckPosition, "parser made no progress at %q; skipping token", p.curToken.Lexeme)
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.EOF) {
		p.nextToken() // consume '}'
	} else {
		p.errorf(diag.ParseUnexpectedToken, "unterminated block, expected %s before end of file", token.RBRACE)
	}
	return block
}

func (p *Parser) parseVarDeclaration() ast.Statement {
	tok := p.curToken
	var kind ast.VarKind
	switch tok.Type {
	case token.VAR:
		kind = ast.VarKindVar
	case token.LET:
		kind = ast.VarKindLet
	case token.CONST:
		kind = ast.VarKindConst
	}
	if !p.expectPeek(token.IDENT) {
		p.recover()
		return nil
	}
	name := p.identifierFromToken(p.curToken)

	var declared ast.TypeExpr
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		declared = p.parseTypeExpr()
	}

	var value ast.Expression
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}
	p.expectSemicolon()
	return &ast.VarDeclaration{Token: tok, Kind: kind, Name: name, Declared: declared, Value: value}
}

// parseFunctionDeclaration parses `function name(params): ret { body }` or
// `external function name(params): ret;` (no body, §4.2's IsExternal).
func (p *Parser) parseFunctionDeclaration(exported bool) ast.Statement {
	tok := p.curToken
	isExternal := false
	if p.curTokenIs(token.EXTERNAL) {
		isExternal = true
		if !p.expectPeek(token.FUNCTION) {
			p.recover()
			return nil
		}
	}
	if !p.expectPeek(token.IDENT) {
		p.recover()
		return nil
	}
	name := p.identifierFromToken(p.curToken)

	if !p.expectPeek(token.LPAREN) {
		p.recover()
		return nil
	}
	params := p.parseParameterList()

	var retType ast.TypeExpr
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		retType = p.parseTypeExpr()
	}

	fn := &ast.FunctionDeclaration{
		Token: tok, Name: name, Params: params, ReturnType: retType,
		IsExported: exported, IsExternal: isExternal,
	}

	if isExternal {
		p.expectSemicolon()
		return fn
	}
	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return fn
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseParameterList() []*ast.Parameter {
	var params []*ast.Parameter
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseParameter())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParameter())
	}
	if !p.expectPeek(token.RPAREN) {
		p.recover()
	}
	return params
}

func (p *Parser) parseParameter() *ast.Parameter {
	name := p.identifierFromToken(p.curToken)
	param := &ast.Parameter{Name: name}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		param.Declared = p.parseTypeExpr()
	}
	return param
}

// parseStructDeclaration handles `struct Name { field: Type [= default]; …
// methods }`: a body entry starting with `function` is a method body,
// collected into decl.Methods under its declared name; the analyzer renames
// each to `StructName.methodName` when it registers the struct (§4.2).
func (p *Parser) parseStructDeclaration(exported bool) ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.recover()
		return nil
	}
	name := p.identifierFromToken(p.curToken)
	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return nil
	}
	decl := &ast.StructDeclaration{Token: tok, Name: name, IsExported: exported}
	p.nextToken() // consume '{', land on the first member or '}'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.FUNCTION) {
			method := p.parseFunctionDeclaration(false)
			if fn, ok := method.(*ast.FunctionDeclaration); ok {
				decl.Methods = append(decl.Methods, fn)
			}
			continue
		}
		if !p.curTokenIs(token.IDENT) {
			p.errorf(diag.ParseUnexpectedToken, "expected a field name or method, found %q", p.curToken.Lexeme)
			p.recover()
			return decl
		}
		field := &ast.StructField{Name: p.identifierFromToken(p.curToken)}
		if !p.expectPeek(token.COLON) {
			p.recover()
			return decl
		}
		p.nextToken()
		field.Declared = p.parseTypeExpr()
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			field.Default = p.parseExpression(LOWEST)
		}
		decl.Fields = append(decl.Fields, field)
		p.nextToken() // land on ',' / ';' / next member / '}'
		if p.curTokenIs(token.COMMA) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.EOF) {
		p.nextToken() // consume '}'
	} else {
		p.errorf(diag.ParseUnexpectedToken, "unterminated struct declaration, expected %s before end of file", token.RBRACE)
	}
	return decl
}

func (p *Parser) parseEnumDeclaration(exported bool) ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.recover()
		return nil
	}
	name := p.identifierFromToken(p.curToken)
	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return nil
	}
	decl := &ast.EnumDeclaration{Token: tok, Name: name, IsExported: exported}
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		if !p.curTokenIs(token.IDENT) {
			p.errorf(diag.ParseUnexpectedToken, "expected a variant name, found %q", p.curToken.Lexeme)
			p.recover()
			return decl
		}
		variant := &ast.EnumVariant{Name: p.identifierFromToken(p.curToken)}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			variant.Value = p.parseExpression(LOWEST)
		}
		decl.Variants = append(decl.Variants, variant)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RBRACE) {
		p.recover()
		return decl
	}
	if !p.curTokenIs(token.EOF) {
		p.nextToken() // consume '}'
	}
	return decl
}

func (p *Parser) parseTraitDeclaration(exported bool) ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		p.recover()
		return nil
	}
	name := p.identifierFromToken(p.curToken)
	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return nil
	}
	decl := &ast.TraitDeclaration{Token: tok, Name: name, IsExported: exported}
	p.nextToken() // consume '{', land on the first signature or '}'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.FUNCTION) {
			p.errorf(diag.ParseUnexpectedToken, "expected a method signature, found %q", p.curToken.Lexeme)
			p.recover()
			return decl
		}
		if !p.expectPeek(token.IDENT) {
			p.recover()
			return decl
		}
		sig := &ast.TraitMethodSignature{Name: p.identifierFromToken(p.curToken)}
		if !p.expectPeek(token.LPAREN) {
			p.recover()
			return decl
		}
		sig.Params = p.parseParameterList()
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			sig.ReturnType = p.parseTypeExpr()
		}
		decl.Methods = append(decl.Methods, sig)
		p.expectSemicolon()
	}
	if !p.curTokenIs(token.EOF) {
		p.nextToken() // consume '}'
	} else {
		p.errorf(diag.ParseUnexpectedToken, "unterminated trait declaration, expected %s before end of file", token.RBRACE)
	}
	return decl
}

// parseImplDeclaration handles both `impl Trait for Target { ... }` and the
// inherent form `impl Target { ... }`.
func (p *Parser) parseImplDeclaration() ast.Statement {
	tok := p.curToken
	p.nextToken()

	first := p.parseTypeExprPrimary()
	decl := &ast.ImplDeclaration{Token: tok}

	if p.peekTokenIs(token.FOR) {
		named, ok := first.(*ast.NamedTypeExpr)
		if !ok {
			p.errorf(diag.ParseUnexpectedToken, "trait name in impl must be a plain identifier")
		}
		decl.Trait = named
		p.nextToken() // consume 'for'
		p.nextToken()
		decl.Target = p.parseTypeExpr()
	} else {
		decl.Target = p.parseArraySuffixes(first)
	}

	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return decl
	}
	p.nextToken() // consume '{'
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.FUNCTION) {
			p.errorf(diag.ParseUnexpectedToken, "expected a method, found %q", p.curToken.Lexeme)
			p.recover()
			continue
		}
		method := p.parseFunctionDeclaration(false)
		if fn, ok := method.(*ast.FunctionDeclaration); ok {
			decl.Methods = append(decl.Methods, fn)
		}
	}
	if !p.curTokenIs(token.EOF) {
		p.nextToken() // consume '}'
	}
	return decl
}

// parseImportStatement handles `import id from "path"` and the
// builtin-namespace form `import id from @io`; id becomes a namespace-import
// binding, resolved member-by-member as `id.member` is encountered
// (§4.3's namespace access protocol) — path resolution itself is the
// module loader's job, not the parser's.
func (p *Parser) parseImportStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.ImportStatement{Token: tok}

	if !p.expectPeek(token.IDENT) {
		p.recover()
		return stmt
	}
	stmt.Name = p.identifierFromToken(p.curToken)

	if !p.expectPeek(token.FROM) {
		p.recover()
		return stmt
	}

	if p.peekTokenIs(token.AT) {
		p.nextToken() // consume '@'
		if !p.expectPeek(token.IDENT) {
			p.recover()
			return stmt
		}
		stmt.IsBuiltin = true
		stmt.Path = p.curToken.Lexeme
	} else {
		if !p.expectPeek(token.STRING) {
			p.recover()
			return stmt
		}
		stmt.Path, _ = p.curToken.Literal.(string)
	}
	p.expectSemicolon()
	return stmt
}

// parseExportStatement wraps a top-level function, external function,
// const/var/let, struct, enum, or trait declaration.
func (p *Parser) parseExportStatement() ast.Statement {
	tok := p.curToken
	p.nextToken()
	switch p.curToken.Type {
	case token.FUNCTION, token.EXTERNAL:
		return &ast.ExportStatement{Token: tok, Decl: p.parseFunctionDeclaration(true)}
	case token.CONST, token.VAR, token.LET:
		return &ast.ExportStatement{Token: tok, Decl: p.parseVarDeclaration()}
	case token.STRUCT:
		return &ast.ExportStatement{Token: tok, Decl: p.parseStructDeclaration(true)}
	case token.ENUM:
		return &ast.ExportStatement{Token: tok, Decl: p.parseEnumDeclaration(true)}
	case token.TRAIT:
		return &ast.ExportStatement{Token: tok, Decl: p.parseTraitDeclaration(true)}
	default:
		p.errorf(diag.ParseUnexpectedToken, "export can only wrap a function, const, struct, enum, or trait declaration")
		p.recover()
		return nil
	}
}

func (p *Parser) parseIfStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		p.recover()
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		p.recover()
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return nil
	}
	cons := p.parseBlockStatement()

	stmt := &ast.IfStatement{Token: tok, Condition: cond, Consequence: cons}
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			stmt.Alternative = p.parseIfStatement()
		} else if p.expectPeek(token.LBRACE) {
			stmt.Alternative = p.parseBlockStatement()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		p.recover()
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		p.recover()
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		p.recover()
		return nil
	}
	p.nextToken()

	stmt := &ast.ForStatement{Token: tok}
	if !p.curTokenIs(token.SEMICOLON) {
		stmt.Init = p.parseStatement()
	} else {
		p.nextToken()
	}

	if !p.curTokenIs(token.SEMICOLON) {
		stmt.Condition = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		p.recover()
		return stmt
	}
	p.nextToken()

	if !p.curTokenIs(token.RPAREN) {
		stmt.Update = p.parseExpressionStatementNoSemi()
	}
	if !p.expectPeek(token.RPAREN) {
		p.recover()
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		p.recover()
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// parseExpressionStatementNoSemi parses a bare expression without consuming
// a trailing semicolon, for the `for (...; ...; update)` clause.
func (p *Parser) parseExpressionStatementNoSemi() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	stmt := &ast.ReturnStatement{Token: tok}
	if !p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	p.expectSemicolon()
	return stmt
}

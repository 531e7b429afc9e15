// Package parser implements JSasta's recursive-descent, Pratt-precedence
// parser (§4.2): it never panics, recovers from an unexpected token by
// skipping to the next statement boundary, and forcibly advances out of a
// stuck position (a token that was neither consumed nor produced an error).
package parser

import (
	"fmt"

	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/diag"
	"github.com/nanov/jsasta/internal/lexer"
	"github.com/nanov/jsasta/internal/token"
)

// MaxRecursionDepth bounds parseExpression's recursion so a pathological
// input (deeply nested parens) fails cleanly instead of overflowing the
// Go call stack.
const MaxRecursionDepth = 250

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds the two-token lookahead window and the accumulated
// diagnostics for one file.
type Parser struct {
	lx       *lexer.Lexer
	filename string

	curToken  token.Token
	peekToken token.Token

	errors []diag.Diagnostic
	depth  int

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// Parse lexes and parses one file, returning its AST (best-effort, even in
// the presence of errors) and every diagnostic recorded along the way.
func Parse(lx *lexer.Lexer, filename string) (*ast.Program, []diag.Diagnostic) {
	p := &Parser{lx: lx, filename: filename}
	p.prefixFns = make(map[token.Type]prefixParseFn)
	p.infixFns = make(map[token.Type]infixParseFn)
	p.registerPrefix()
	p.registerInfix()

	p.peekToken = p.lx.NextToken()
	p.nextToken()

	prog := &ast.Program{File: filename}
	for !p.curTokenIs(token.EOF) {
		before := p.curToken
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.curToken == before {
			// Stuck position (§4.2): nothing was consumed parsing this
			// statement. Force progress so the loop always terminates.
			p.errorf(diag.ParseStuckPosition, "parser made no progress at %q; skipping token", p.curToken.Lexeme)
			p.nextToken()
		}
	}
	return prog, p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lx.NextToken()
	if p.curToken.Type == token.ILLEGAL {
		msg, _ := p.curToken.Literal.(string)
		if msg == "" {
			msg = "illegal token"
		}
		code := diag.LexIllegalByte
		if msg == "unterminated string literal" {
			code = diag.LexUnterminatedQuote
		}
		p.errors = append(p.errors, diag.Diagnostic{
			Code: code, Severity: diag.Error, Pos: p.curToken.Pos, Message: msg,
		})
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances onto peek if it matches t, otherwise records an
// UnexpectedToken diagnostic and leaves the cursor in place for recovery.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(diag.ParseUnexpectedToken, "expected %s, found %s %q", t, p.peekToken.Type, p.peekToken.Lexeme)
	return false
}

func (p *Parser) errorf(code, format string, args ...interface{}) {
	p.errors = append(p.errors, diag.Diagnostic{
		Code: code, Severity: diag.Error, Pos: p.curToken.Pos, Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) warnf(code, format string, args ...interface{}) {
	p.errors = append(p.errors, diag.Diagnostic{
		Code: code, Severity: diag.Warning, Pos: p.curToken.Pos, Message: fmt.Sprintf(format, args...),
	})
}

// recover skips forward to the next statement boundary (`;`, `}`, or EOF)
// after an unexpected token, so one bad statement never aborts the file.
func (p *Parser) recover() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
	if p.curTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// expectSemicolon consumes a trailing `;` if present; its absence is only
// a warning, matching §4.2's "MissingSemicolon (warn-level)". Either way the
// cursor ends up past the statement, on the next statement's first token —
// the same contract parseBlockStatement's own closing-brace consumption
// gives callers for brace-bodied statements.
func (p *Parser) expectSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	} else {
		p.warnf(diag.ParseMissingSemicolon, "missing semicolon after statement")
	}
	p.nextToken()
}

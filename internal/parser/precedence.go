package parser

import "github.com/nanov/jsasta/internal/token"

const (
	_ int = iota
	LOWEST
	ASSIGN
	TERNARY
	LOGICAL_OR
	LOGICAL_AND
	BITWISE_OR
	BITWISE_XOR
	BITWISE_AND
	EQUALITY
	COMPARE
	SHIFT
	SUM
	PRODUCT
	PREFIX
	POSTFIX
	CALL
)

var precedences = map[token.Type]int{
	token.ASSIGN:       ASSIGN,
	token.PLUS_ASSIGN:  ASSIGN,
	token.MINUS_ASSIGN: ASSIGN,
	token.STAR_ASSIGN:  ASSIGN,
	token.SLASH_ASSIGN: ASSIGN,
	token.QUESTION:     TERNARY,
	token.OR:           LOGICAL_OR,
	token.AND:          LOGICAL_AND,
	token.PIPE:         BITWISE_OR,
	token.CARET:        BITWISE_XOR,
	token.AMP:          BITWISE_AND,
	token.EQ:           EQUALITY,
	token.NOT_EQ:       EQUALITY,
	token.LT:           COMPARE,
	token.GT:           COMPARE,
	token.LTE:          COMPARE,
	token.GTE:          COMPARE,
	token.SHL:          SHIFT,
	token.SHR:          SHIFT,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.STAR:         PRODUCT,
	token.SLASH:        PRODUCT,
	token.PERCENT:      PRODUCT,
	token.INCREMENT:    POSTFIX,
	token.DECREMENT:    POSTFIX,
	token.LPAREN:       CALL,
	token.DOT:          CALL,
	token.LBRACKET:     CALL,
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) registerPrefix() {
	p.prefixFns[token.IDENT] = p.parseIdentifier
	p.prefixFns[token.INT] = p.parseNumberLiteral
	p.prefixFns[token.FLOAT] = p.parseNumberLiteral
	p.prefixFns[token.STRING] = p.parseStringLiteral
	p.prefixFns[token.TRUE] = p.parseBooleanLiteral
	p.prefixFns[token.FALSE] = p.parseBooleanLiteral
	p.prefixFns[token.LPAREN] = p.parseGroupedExpression
	p.prefixFns[token.LBRACE] = p.parseObjectLiteral
	p.prefixFns[token.LBRACKET] = p.parseArrayLiteral
	p.prefixFns[token.MINUS] = p.parseUnaryExpression
	p.prefixFns[token.BANG] = p.parseUnaryExpression
	p.prefixFns[token.REF] = p.parseUnaryExpression
	p.prefixFns[token.INCREMENT] = p.parsePrefixExpression
	p.prefixFns[token.DECREMENT] = p.parsePrefixExpression
	p.prefixFns[token.NEW] = p.parseNewExpression
	p.prefixFns[token.DELETE] = p.parseDeleteExpression
}

func (p *Parser) registerInfix() {
	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR, token.AMP, token.PIPE, token.CARET, token.SHL, token.SHR,
	} {
		p.infixFns[t] = p.parseBinaryExpression
	}
	for _, t := range []token.Type{token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN} {
		p.infixFns[t] = p.parseAssignExpression
	}
	p.infixFns[token.LPAREN] = p.parseCallExpression
	p.infixFns[token.DOT] = p.parseDotExpression
	p.infixFns[token.LBRACKET] = p.parseIndexExpression
	p.infixFns[token.QUESTION] = p.parseTernaryExpression
	p.infixFns[token.INCREMENT] = p.parsePostfixExpression
	p.infixFns[token.DECREMENT] = p.parsePostfixExpression
}

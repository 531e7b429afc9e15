package lexer

import (
	"testing"

	"github.com/nanov/jsasta/internal/token"
)

func TestNextToken_Operators(t *testing.T) {
	input := `+ - * / % == != <= >= << >> && || ++ -- += -= *= /=`
	want := []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.SHL, token.SHR,
		token.AND, token.OR, token.INCREMENT, token.DECREMENT,
		token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN,
		token.EOF,
	}
	l := New("test.jsa", input)
	for i, wt := range want {
		tok := l.NextToken()
		if tok.Type != wt {
			t.Fatalf("token %d: got %v, want %v (lexeme %q)", i, tok.Type, wt, tok.Lexeme)
		}
	}
}

func TestNextToken_Identifiers_And_Keywords(t *testing.T) {
	input := `function foo let x = 1;`
	l := New("test.jsa", input)

	expectIdent := func(typ token.Type, lexeme string) {
		t.Helper()
		tok := l.NextToken()
		if tok.Type != typ || tok.Lexeme != lexeme {
			t.Fatalf("got {%v %q}, want {%v %q}", tok.Type, tok.Lexeme, typ, lexeme)
		}
	}
	expectIdent(token.FUNCTION, "function")
	expectIdent(token.IDENT, "foo")
	expectIdent(token.LET, "let")
	expectIdent(token.IDENT, "x")
	expectIdent(token.ASSIGN, "=")
	expectIdent(token.INT, "1")
	expectIdent(token.SEMICOLON, ";")
	expectIdent(token.EOF, "")
}

func TestNextToken_Numbers(t *testing.T) {
	cases := []struct {
		src     string
		typ     token.Type
		literal interface{}
	}{
		{"42", token.INT, int64(42)},
		{"3.14", token.FLOAT, 3.14},
		{"0", token.INT, int64(0)},
	}
	for _, c := range cases {
		l := New("test.jsa", c.src)
		tok := l.NextToken()
		if tok.Type != c.typ {
			t.Fatalf("%q: type = %v, want %v", c.src, tok.Type, c.typ)
		}
		if tok.Literal != c.literal {
			t.Fatalf("%q: literal = %v (%T), want %v (%T)", c.src, tok.Literal, tok.Literal, c.literal, c.literal)
		}
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	l := New("test.jsa", `"hi\n\tthere"`)
	tok := l.NextToken()
	if tok.Type != token.STRING {
		t.Fatalf("expected a STRING token, got %v", tok.Type)
	}
	if tok.Literal != "hi\n\tthere" {
		t.Fatalf("literal = %q, want %q", tok.Literal, "hi\n\tthere")
	}
}

func TestNextToken_UnterminatedString_IsIllegal(t *testing.T) {
	l := New("test.jsa", `"no closing quote`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for an unterminated string, got %v", tok.Type)
	}
}

func TestNextToken_LineComment_IsSkipped(t *testing.T) {
	l := New("test.jsa", "1 // trailing comment\n2")
	first := l.NextToken()
	second := l.NextToken()
	if first.Literal != int64(1) || second.Literal != int64(2) {
		t.Fatalf("expected 1 then 2 across the comment, got %v then %v", first.Literal, second.Literal)
	}
}

func TestNextToken_BlockComment_IsSkipped(t *testing.T) {
	l := New("test.jsa", "1 /* skip\nthis */ 2")
	first := l.NextToken()
	second := l.NextToken()
	if first.Literal != int64(1) || second.Literal != int64(2) {
		t.Fatalf("expected 1 then 2 across the block comment, got %v then %v", first.Literal, second.Literal)
	}
}

func TestNextToken_PositionTracksLinesAndColumns(t *testing.T) {
	l := New("test.jsa", "a\nb")
	first := l.NextToken()
	second := l.NextToken()
	if first.Pos.Line != 1 {
		t.Errorf("first token line = %d, want 1", first.Pos.Line)
	}
	if second.Pos.Line != 2 {
		t.Errorf("second token line = %d, want 2", second.Pos.Line)
	}
}

func TestNextToken_UnknownByte_IsIllegal(t *testing.T) {
	l := New("test.jsa", "#")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for an unrecognized byte, got %v", tok.Type)
	}
}

package consteval

import (
	"testing"

	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/token"
)

func numLit(v int64) *ast.NumberLiteral {
	return &ast.NumberLiteral{Token: token.Token{Pos: token.Position{Line: 1, Column: 1}}, IntValue: v}
}

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: token.Token{Pos: token.Position{Line: 1, Column: 1}, Lexeme: name}, Value: name}
}

func defineConst(scope *symbols.Table, name string, value ast.Expression) {
	decl := &ast.VarDeclaration{Kind: ast.VarKindConst, Name: ident(name), Value: value}
	scope.Define(&symbols.Entry{Name: name, IsConst: true, DeclaringNode: decl})
}

// Scenario 3: const W = 150; const H = 60; grid sized W * H == 9000.
func TestEval_ConstArraySize(t *testing.T) {
	scope := symbols.NewTable(nil)
	defineConst(scope, "W", numLit(150))
	defineConst(scope, "H", numLit(60))

	expr := &ast.BinaryExpression{
		Token:    token.Token{Pos: token.Position{Line: 3, Column: 1}},
		Left:     ident("W"),
		Operator: "*",
		Right:    ident("H"),
	}

	res := Eval(expr, scope, map[string]bool{})
	if res.Status != StatusSuccess {
		t.Fatalf("expected success, got status %d (msg %q)", res.Status, res.Msg)
	}
	if res.Value != 9000 {
		t.Errorf("W * H = %d, want 9000", res.Value)
	}
}

// Scenario 3's negative case: a non-const identifier used in a constant
// position produces an error result carrying a hint that mentions const.
func TestEval_NonConstIdentifier(t *testing.T) {
	scope := symbols.NewTable(nil)
	decl := &ast.VarDeclaration{Kind: ast.VarKindVar, Name: ident("w"), Value: numLit(150)}
	scope.Define(&symbols.Entry{Name: "w", IsConst: false, DeclaringNode: decl})

	res := Eval(ident("w"), scope, map[string]bool{})
	if res.Status != StatusError {
		t.Fatalf("expected StatusError, got %d", res.Status)
	}
	if res.Hint == "" {
		t.Errorf("expected a hint pointing at const, got none")
	}
	if res.Kind != KindNotConst {
		t.Errorf("expected Kind KindNotConst, got %d", res.Kind)
	}
}

// P6: a const that transitively references itself must yield StatusCycle,
// not hang.
func TestEval_CycleDetection(t *testing.T) {
	scope := symbols.NewTable(nil)
	// const A = B; const B = A;
	aRef := ident("B")
	bRef := ident("A")
	defineConst(scope, "A", aRef)
	defineConst(scope, "B", bRef)

	res := Eval(ident("A"), scope, map[string]bool{})
	if res.Status != StatusCycle {
		t.Fatalf("expected StatusCycle for a self-referential const chain, got status %d", res.Status)
	}
}

func TestEval_DivisionByZero(t *testing.T) {
	scope := symbols.NewTable(nil)
	expr := &ast.BinaryExpression{
		Token:    token.Token{Pos: token.Position{Line: 1, Column: 1}},
		Left:     numLit(10),
		Operator: "/",
		Right:    numLit(0),
	}
	res := Eval(expr, scope, map[string]bool{})
	if res.Status != StatusError {
		t.Fatalf("expected StatusError for division by zero, got %d", res.Status)
	}
	if res.Kind != KindDivByZero {
		t.Errorf("expected Kind KindDivByZero, got %d", res.Kind)
	}
}

func TestEval_NonPositiveArraySize(t *testing.T) {
	scope := symbols.NewTable(nil)
	expr := &ast.BinaryExpression{
		Token:    token.Token{Pos: token.Position{Line: 1, Column: 1}},
		Left:     numLit(3),
		Operator: "-",
		Right:    numLit(5),
	}
	res := Eval(expr, scope, map[string]bool{})
	if res.Status != StatusError {
		t.Fatalf("expected StatusError for a non-positive constant result, got %d", res.Status)
	}
	if res.Kind != KindNonPositive {
		t.Errorf("expected Kind KindNonPositive, got %d", res.Kind)
	}
}

func TestEval_WaitingOnUnresolvedIdentifier(t *testing.T) {
	scope := symbols.NewTable(nil)
	res := Eval(ident("NotYetDeclared"), scope, map[string]bool{})
	if res.Status != StatusWaiting {
		t.Fatalf("expected StatusWaiting for an identifier not yet in scope, got %d", res.Status)
	}
}

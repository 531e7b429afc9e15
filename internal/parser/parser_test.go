package parser

import (
	"testing"

	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/lexer"
)

func parse(t *testing.T, src string) (*ast.Program, int) {
	t.Helper()
	lx := lexer.New("test.jsa", src)
	prog, errs := Parse(lx, "test.jsa")
	return prog, len(errs)
}

func TestParse_FunctionDeclaration(t *testing.T) {
	prog, nerr := parse(t, `function add(a: int, b: int): int { return a + b; }`)
	if nerr != 0 {
		t.Fatalf("expected no parse errors, got %d", nerr)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(prog.Statements))
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected a FunctionDeclaration, got %T", prog.Statements[0])
	}
	if fn.Name.Value != "add" || len(fn.Params) != 2 {
		t.Fatalf("got function %q with %d params, want add/2", fn.Name.Value, len(fn.Params))
	}
}

func TestParse_ExportedFunction(t *testing.T) {
	prog, nerr := parse(t, `export function add(a: int, b: int): int { return a + b; }`)
	if nerr != 0 {
		t.Fatalf("expected no parse errors, got %d", nerr)
	}
	exp, ok := prog.Statements[0].(*ast.ExportStatement)
	if !ok {
		t.Fatalf("expected an ExportStatement, got %#v", prog.Statements[0])
	}
	fn, ok := exp.Decl.(*ast.FunctionDeclaration)
	if !ok || !fn.IsExported {
		t.Fatalf("expected an exported FunctionDeclaration, got %#v", exp.Decl)
	}
}

func TestParse_StructWithDefault(t *testing.T) {
	prog, nerr := parse(t, `struct Point { x: int, y: int = 0 }`)
	if nerr != 0 {
		t.Fatalf("expected no parse errors, got %d", nerr)
	}
	decl, ok := prog.Statements[0].(*ast.StructDeclaration)
	if !ok || len(decl.Fields) != 2 {
		t.Fatalf("expected a 2-field StructDeclaration, got %#v", prog.Statements[0])
	}
	if decl.Fields[1].Default == nil {
		t.Fatalf("expected field y to carry a default value expression")
	}
}

func TestParse_Import(t *testing.T) {
	prog, nerr := parse(t, `import m from "math.jsa";`)
	if nerr != 0 {
		t.Fatalf("expected no parse errors, got %d", nerr)
	}
	imp, ok := prog.Statements[0].(*ast.ImportStatement)
	if !ok {
		t.Fatalf("expected an ImportStatement, got %T", prog.Statements[0])
	}
	if imp.Name == nil || imp.Name.Value != "m" {
		t.Fatalf("expected Name \"m\", got %#v", imp.Name)
	}
	if imp.Path != "math.jsa" {
		t.Fatalf("Path = %q, want math.jsa", imp.Path)
	}
}

func TestParse_BuiltinImport(t *testing.T) {
	prog, nerr := parse(t, `import io from @io;`)
	if nerr != 0 {
		t.Fatalf("expected no parse errors, got %d", nerr)
	}
	imp, ok := prog.Statements[0].(*ast.ImportStatement)
	if !ok || !imp.IsBuiltin || imp.Path != "io" {
		t.Fatalf("expected a builtin import of io, got %#v", prog.Statements[0])
	}
	if imp.Name == nil || imp.Name.Value != "io" {
		t.Fatalf("expected Name \"io\", got %#v", imp.Name)
	}
}

// §4.2's recovery rule: an unexpected token inside one statement doesn't
// stop the rest of the file from parsing.
func TestParse_RecoversAfterBadStatement(t *testing.T) {
	prog, nerr := parse(t, `let x: int = ; function ok(): int { return 1; }`)
	if nerr == 0 {
		t.Fatalf("expected at least one parse error from the malformed let")
	}
	var foundOk bool
	for _, s := range prog.Statements {
		if fn, ok := s.(*ast.FunctionDeclaration); ok && fn.Name.Value == "ok" {
			foundOk = true
		}
	}
	if !foundOk {
		t.Fatalf("expected the function after the bad statement to still be parsed")
	}
}

func TestParse_MissingSemicolon_IsWarningNotError(t *testing.T) {
	lx := lexer.New("test.jsa", `let x: int = 1`)
	_, errs := Parse(lx, "test.jsa")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 diagnostic for a missing semicolon, got %d", len(errs))
	}
}

func TestParse_BinaryPrecedence(t *testing.T) {
	prog, nerr := parse(t, `function f(): int { return 1 + 2 * 3; }`)
	if nerr != 0 {
		t.Fatalf("expected no parse errors, got %d", nerr)
	}
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	bin, ok := ret.Value.(*ast.BinaryExpression)
	if !ok || bin.Operator != "+" {
		t.Fatalf("expected the outermost operator to be +, got %#v", ret.Value)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpression)
	if !ok || rhs.Operator != "*" {
		t.Fatalf("expected 2 * 3 to bind tighter than +, got %#v", bin.Right)
	}
}

package modules

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/token"
)

// importStatements collects every top-level import statement in program
// source order; imports are never wrapped in export (§4.2's export syntax
// only wraps function/const declarations).
func importStatements(prog *ast.Program) []*ast.ImportStatement {
	var out []*ast.ImportStatement
	for _, stmt := range prog.Statements {
		if imp, ok := stmt.(*ast.ImportStatement); ok {
			out = append(out, imp)
		}
	}
	return out
}

func posAt(filename string) token.Position {
	return token.Position{Filename: filename, Line: 1, Column: 1}
}

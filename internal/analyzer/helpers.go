package analyzer

import "github.com/nanov/jsasta/internal/ast"

// unwrapExport returns stmt's inner declaration if stmt is an
// *ast.ExportStatement wrapping one directly (export function/const/struct/
// enum/trait), and stmt itself otherwise.
func unwrapExport(stmt ast.Statement) ast.Statement {
	if exp, ok := stmt.(*ast.ExportStatement); ok && exp.Decl != nil {
		return exp.Decl
	}
	return stmt
}

// topLevelStatements returns prog's statements with any export wrapper
// removed. Function, struct, enum and trait declarations carry their own
// IsExported flag; a VarDeclaration has none, so runPass1 reads exported
// consts off the wrapper directly.
func topLevelStatements(prog *ast.Program) []ast.Statement {
	out := make([]ast.Statement, len(prog.Statements))
	for i, s := range prog.Statements {
		out[i] = unwrapExport(s)
	}
	return out
}

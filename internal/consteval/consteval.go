// Package consteval implements the compile-time constant expression
// evaluator used for array sizes and struct field dimensions (§4.6): a
// small integer expression interpreter with cycle detection and a
// three-valued result instead of a plain error return, since "not yet
// resolvable" is a distinct, retryable outcome from a genuine error.
package consteval

import (
	"github.com/nanov/jsasta/internal/ast"
	"github.com/nanov/jsasta/internal/config"
	"github.com/nanov/jsasta/internal/symbols"
	"github.com/nanov/jsasta/internal/token"
)

// Status is the three-valued (really four-valued, counting Cycle as its
// own diagnosable case) outcome of one evaluation attempt.
type Status int

const (
	StatusSuccess Status = iota
	StatusWaiting
	StatusCycle
	StatusError
)

// ErrorKind distinguishes the sub-kinds of StatusError, so a caller mapping
// a Result to a diagnostic code doesn't have to pattern-match Msg strings.
// Only meaningful when Status is StatusError.
type ErrorKind int

const (
	// KindTypeMismatch covers a non-integer literal, an unsupported
	// expression form, or anything else that isn't one of the more
	// specific kinds below.
	KindTypeMismatch ErrorKind = iota
	// KindNonPositive: the expression evaluated to a value <= 0, where
	// the constant position (an array size) requires a positive one.
	KindNonPositive
	// KindDivByZero: a `/` or `%` whose right-hand side evaluated to 0.
	KindDivByZero
	// KindNotConst: the expression referenced a var/let, not a const.
	KindNotConst
	// KindUnsupportedOp: an operator with no meaning in a constant
	// expression (e.g. anything but + - * / % and unary -).
	KindUnsupportedOp
)

// Result is returned by Eval. Value is only meaningful when Status is
// StatusSuccess; Kind is only meaningful when Status is StatusError.
type Result struct {
	Status Status
	Value  int64
	Pos    token.Position
	Msg    string
	Hint   string
	Kind   ErrorKind
}

func ok(v int64) Result { return Result{Status: StatusSuccess, Value: v} }

func waiting(pos token.Position, msg string) Result {
	return Result{Status: StatusWaiting, Pos: pos, Msg: msg}
}

func cycle(pos token.Position, msg string) Result {
	return Result{Status: StatusCycle, Pos: pos, Msg: msg}
}

func errf(pos token.Position, kind ErrorKind, msg string) Result {
	return Result{Status: StatusError, Pos: pos, Msg: msg, Kind: kind}
}

func errHint(pos token.Position, kind ErrorKind, msg, hint string) Result {
	return Result{Status: StatusError, Pos: pos, Msg: msg, Hint: hint, Kind: kind}
}

// Eval evaluates expr in the given scope. visiting tracks identifiers
// currently under evaluation on this call stack, to detect a const that
// transitively references itself (P6); it must be a fresh map per
// top-level declaration being resolved, not shared across declarations.
func Eval(expr ast.Expression, scope *symbols.Table, visiting map[string]bool) Result {
	return evalDepth(expr, scope, visiting, 0)
}

func evalDepth(expr ast.Expression, scope *symbols.Table, visiting map[string]bool, depth int) Result {
	if depth > config.MaxConstEvalDepth {
		return errf(expr.Pos(), KindTypeMismatch, "constant expression exceeded maximum recursion depth")
	}

	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if e.IsFloat {
			return errf(e.Pos(), KindTypeMismatch, "constant expression must be an integer, found a double literal")
		}
		return ok(e.IntValue)

	case *ast.StringLiteral:
		return errf(e.Pos(), KindTypeMismatch, "constant expression must be an integer, found a string literal")

	case *ast.BooleanLiteral:
		return errf(e.Pos(), KindTypeMismatch, "constant expression must be an integer, found a boolean literal")

	case *ast.Identifier:
		if visiting[e.Value] {
			return cycle(e.Pos(), "constant \""+e.Value+"\" transitively references itself")
		}
		entry, found := scope.Resolve(e.Value)
		if !found {
			return waiting(e.Pos(), "identifier \""+e.Value+"\" is not yet in scope")
		}
		if !entry.IsConst {
			return errHint(e.Pos(), KindNotConst, "\""+e.Value+"\" is not a compile-time constant",
				"declare it with const instead of var/let to use it in a constant expression")
		}
		init, ok := entry.DeclaringNode.(*ast.VarDeclaration)
		if !ok || init.Value == nil {
			return errf(e.Pos(), KindTypeMismatch, "internal: const symbol \""+e.Value+"\" has no initializer")
		}
		nextVisiting := make(map[string]bool, len(visiting)+1)
		for k := range visiting {
			nextVisiting[k] = true
		}
		nextVisiting[e.Value] = true
		return evalDepth(init.Value, scope, nextVisiting, depth+1)

	case *ast.BinaryExpression:
		left := evalDepth(e.Left, scope, visiting, depth+1)
		if left.Status != StatusSuccess {
			return left
		}
		right := evalDepth(e.Right, scope, visiting, depth+1)
		if right.Status != StatusSuccess {
			return right
		}
		return applyOp(e.Token.Pos, e.Operator, left.Value, right.Value)

	case *ast.UnaryExpression:
		if e.Operator != "-" {
			return errf(e.Pos(), KindUnsupportedOp, "operator \""+e.Operator+"\" is not supported in a constant expression")
		}
		inner := evalDepth(e.Right, scope, visiting, depth+1)
		if inner.Status != StatusSuccess {
			return inner
		}
		return checkPositive(e.Pos(), -inner.Value)

	default:
		return errf(expr.Pos(), KindTypeMismatch, "expression is not allowed in a constant position")
	}
}

func applyOp(pos token.Position, op string, a, b int64) Result {
	switch op {
	case "+":
		return checkPositive(pos, a+b)
	case "-":
		return checkPositive(pos, a-b)
	case "*":
		return checkPositive(pos, a*b)
	case "/":
		if b == 0 {
			return errf(pos, KindDivByZero, "division by zero in constant expression")
		}
		return checkPositive(pos, a/b)
	case "%":
		if b == 0 {
			return errf(pos, KindDivByZero, "modulo by zero in constant expression")
		}
		return checkPositive(pos, a%b)
	default:
		return errf(pos, KindUnsupportedOp, "operator \""+op+"\" is not supported in a constant expression")
	}
}

func checkPositive(pos token.Position, v int64) Result {
	if v <= 0 {
		return errf(pos, KindNonPositive, "constant expression must evaluate to a positive integer")
	}
	return ok(v)
}

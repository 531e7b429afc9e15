package analyzer

import (
	"github.com/nanov/jsasta/internal/consteval"
	"github.com/nanov/jsasta/internal/diag"
)

// constEvalCode maps a consteval.Result's error sub-kind to its stable
// diagnostic code (§4.6), so every StatusError is reported under the code
// that actually describes it instead of all collapsing onto one.
func constEvalCode(kind consteval.ErrorKind) string {
	switch kind {
	case consteval.KindNonPositive:
		return diag.ConstEvalNonPositive
	case consteval.KindDivByZero:
		return diag.ConstEvalDivByZero
	case consteval.KindNotConst:
		return diag.ConstEvalNotConst
	case consteval.KindUnsupportedOp:
		return diag.ConstEvalUnsupportedOp
	default:
		return diag.ConstEvalTypeMismatch
	}
}

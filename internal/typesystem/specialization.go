package typesystem

// Specialization is one monomorphic instance of a (possibly polymorphic)
// function: a concrete parameter-type tuple, its return type once known,
// and an independently-owned clone of the original body. The clone is an
// untyped back-pointer (*ast.FunctionDeclaration) for the same reason
// TypeInfo.FuncBody is: this package cannot import ast.
type Specialization struct {
	OriginalName  string
	MangledName   string
	ParamTypes    []*TypeInfo
	ReturnType    *TypeInfo
	Body          interface{} // cloned *ast.FunctionDeclaration, nil until created
	HasReturnType bool        // false until the body's return type has been inferred
	Next          *Specialization
}

// sameParamTypes compares two parameter-type tuples by pointer identity,
// which is valid once every type has passed through a TypeContext
// (invariant I1).
func sameParamTypes(a, b []*TypeInfo) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FindByTypes walks fn's specialization list for an exact parameter-type
// match (§4.8 find_by_types).
func FindByTypes(fn *TypeInfo, paramTypes []*TypeInfo) *Specialization {
	for s := fn.Specs; s != nil; s = s.Next {
		if sameParamTypes(s.ParamTypes, paramTypes) {
			return s
		}
	}
	return nil
}

// AddByTypes returns the existing specialization for paramTypes if one
// exists (P4, idempotence), or links in and returns a fresh one otherwise.
func AddByTypes(fn *TypeInfo, originalName, mangledName string, paramTypes []*TypeInfo) *Specialization {
	if existing := FindByTypes(fn, paramTypes); existing != nil {
		return existing
	}
	s := &Specialization{
		OriginalName: originalName,
		MangledName:  mangledName,
		ParamTypes:   append([]*TypeInfo(nil), paramTypes...),
		Next:         fn.Specs,
	}
	fn.Specs = s
	return s
}

// GetAllFor returns every specialization currently recorded on fn, in
// creation order (most-recent-first internally, reversed here so callers
// see a deterministic, creation-ordered list for P3's determinism
// requirement).
func GetAllFor(fn *TypeInfo) []*Specialization {
	var reversed []*Specialization
	for s := fn.Specs; s != nil; s = s.Next {
		reversed = append(reversed, s)
	}
	out := make([]*Specialization, len(reversed))
	for i, s := range reversed {
		out[len(reversed)-1-i] = s
	}
	return out
}

// MangleCrossModule composes the §4.3/P8 cross-module mangled name.
func MangleCrossModule(modulePrefix, name string) string {
	return modulePrefix + "__" + name
}

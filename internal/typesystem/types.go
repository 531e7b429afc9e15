// Package typesystem implements JSasta's structural, interned type
// universe: primitives, arrays, refs, objects/structs, and functions, plus
// the trait registry used for operator and indexing dispatch.
package typesystem

import (
	"fmt"
	"strings"
)

// Kind tags the shape of a TypeInfo. JSasta's type system has no
// unification variables: every TypeInfo is either fully known or the
// single Unknown singleton, so Kind is a closed tagged set rather than an
// interface hierarchy.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindRef
	KindObject
	KindFunction
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindRef:
		return "ref"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Primitive enumerates the built-in scalar types.
type Primitive int

const (
	PrimInt Primitive = iota
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimDouble
	PrimBool
	PrimString
	PrimStr
	PrimVoid
)

var primitiveNames = map[Primitive]string{
	PrimInt: "int", PrimI8: "i8", PrimI16: "i16", PrimI32: "i32", PrimI64: "i64",
	PrimU8: "u8", PrimU16: "u16", PrimU32: "u32", PrimU64: "u64",
	PrimDouble: "double", PrimBool: "bool", PrimString: "string", PrimStr: "str",
	PrimVoid: "void",
}

func (p Primitive) String() string {
	if s, ok := primitiveNames[p]; ok {
		return s
	}
	return fmt.Sprintf("primitive(%d)", int(p))
}

// LookupPrimitive maps a spelled primitive name to its Primitive tag.
func LookupPrimitive(name string) (Primitive, bool) {
	for p, n := range primitiveNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// Field is one (name, type) entry of an object/struct TypeInfo, in
// declaration order.
type Field struct {
	Name string
	Type *TypeInfo
}

// Type is the value every AST expression's Type slot and symbol table entry
// holds. TypeInfo instances are only ever constructed and interned by a
// TypeContext, so comparing two Type values with == is a valid structural
// equality check (invariant I1/I2) rather than a semantic one.
type Type = *TypeInfo

// TypeInfo is the single tagged record for every JSasta type. Only the
// fields relevant to Kind are meaningful; the zero value of the rest is
// ignored. Instances are only ever constructed and returned by a
// TypeContext, which is what makes pointer equality a valid structural
// equality check (invariant I1/I2).
type TypeInfo struct {
	Kind Kind

	// KindPrimitive
	Prim Primitive

	// KindArray
	Elem      *TypeInfo
	HasSize   bool
	ArraySize int64

	// KindRef
	Mutable bool // Elem reused as the ref target

	// KindObject
	StructName string
	Fields     []Field
	// StructDecl is the declaring *ast.StructDeclaration, carried as an
	// untyped back-pointer so this package never imports ast (ast already
	// imports typesystem for the Expression.Type slot).
	StructDecl interface{}

	// KindFunction
	Params       []*TypeInfo
	Return       *TypeInfo
	Variadic     bool
	IsFullyTyped bool
	// FuncBody is the declaring *ast.FunctionDeclaration, same rationale
	// as StructDecl.
	FuncBody interface{}
	Specs    *Specialization // head of the linked specialization list
}

// String renders a type the way diagnostics and mangled names want it.
func (t *TypeInfo) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Prim.String()
	case KindArray:
		if t.HasSize {
			return fmt.Sprintf("%s[%d]", t.Elem.String(), t.ArraySize)
		}
		return t.Elem.String() + "[]"
	case KindRef:
		return "ref " + t.Elem.String()
	case KindObject:
		return t.StructName
	case KindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		ret := "void"
		if t.Return != nil {
			ret = t.Return.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), ret)
	default:
		return "unknown"
	}
}

// MangleSuffix renders a type the way it appears inside a specialization's
// mangled name: `add_int_int` rather than `add_(int,int)`.
func (t *TypeInfo) MangleSuffix() string {
	if t == nil {
		return "unknown"
	}
	switch t.Kind {
	case KindPrimitive:
		return t.Prim.String()
	case KindArray:
		return t.Elem.MangleSuffix() + "arr"
	case KindRef:
		return "ref" + t.Elem.MangleSuffix()
	case KindObject:
		return t.StructName
	default:
		return "fn"
	}
}

// IsNumeric reports whether t is any integer or double primitive.
func (t *TypeInfo) IsNumeric() bool {
	return t != nil && t.Kind == KindPrimitive && t.Prim != PrimBool && t.Prim != PrimString && t.Prim != PrimStr && t.Prim != PrimVoid
}

// IsInteger reports whether t is any sized or unsized integer primitive.
func (t *TypeInfo) IsInteger() bool {
	return t != nil && t.Kind == KindPrimitive && t.Prim != PrimDouble && t.IsNumeric()
}

// structurallyEqual implements invariant I1's canonicalizer: two TypeInfo
// values with the same Kind and structurally-equal payload are considered
// the same type. visited breaks cycles in self-referential struct types by
// treating a pair already on the stack as equal (I1's "once both sides are
// in the visited set" rule).
func structurallyEqual(a, b *TypeInfo, visited map[[2]*TypeInfo]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	key := [2]*TypeInfo{a, b}
	if visited[key] {
		return true
	}
	visited[key] = true

	switch a.Kind {
	case KindPrimitive:
		return a.Prim == b.Prim
	case KindArray:
		if a.HasSize != b.HasSize || (a.HasSize && a.ArraySize != b.ArraySize) {
			return false
		}
		return structurallyEqual(a.Elem, b.Elem, visited)
	case KindRef:
		return a.Mutable == b.Mutable && structurallyEqual(a.Elem, b.Elem, visited)
	case KindObject:
		if a.StructName != b.StructName || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return false
			}
			if !structurallyEqual(a.Fields[i].Type, b.Fields[i].Type, visited) {
				return false
			}
		}
		return true
	case KindFunction:
		if a.Variadic != b.Variadic || len(a.Params) != len(b.Params) {
			return false
		}
		for i := range a.Params {
			if !structurallyEqual(a.Params[i], b.Params[i], visited) {
				return false
			}
		}
		return structurallyEqual(a.Return, b.Return, visited)
	default:
		return true // KindUnknown: the singleton covers this already via a==b
	}
}

package typesystem

// TypeUniverse owns the primitive singletons shared by every module's
// TypeContext in one compile. The source compiler keeps these as
// process-wide globals; per the rewrite's design notes we make them
// fields of a value constructed once at the start of a compile and passed
// down explicitly, so tests never share mutable state across runs.
type TypeUniverse struct {
	Int, I8, I16, I32, I64       *TypeInfo
	U8, U16, U32, U64            *TypeInfo
	Double, Bool, String, Str    *TypeInfo
	Void, Unknown                *TypeInfo
}

// NewTypeUniverse constructs the fourteen primitive singletons plus the
// Unknown marker type. Every *TypeInfo it returns satisfies invariant I2:
// equal primitives are the same pointer for the life of the universe.
func NewTypeUniverse() *TypeUniverse {
	mk := func(p Primitive) *TypeInfo { return &TypeInfo{Kind: KindPrimitive, Prim: p} }
	return &TypeUniverse{
		Int: mk(PrimInt), I8: mk(PrimI8), I16: mk(PrimI16), I32: mk(PrimI32), I64: mk(PrimI64),
		U8: mk(PrimU8), U16: mk(PrimU16), U32: mk(PrimU32), U64: mk(PrimU64),
		Double: mk(PrimDouble), Bool: mk(PrimBool), String: mk(PrimString), Str: mk(PrimStr),
		Void:    &TypeInfo{Kind: KindPrimitive, Prim: PrimVoid},
		Unknown: &TypeInfo{Kind: KindUnknown},
	}
}

// Primitive returns the universe's singleton for a primitive name, or nil
// if name does not name a built-in scalar.
func (u *TypeUniverse) Primitive(name string) *TypeInfo {
	p, ok := LookupPrimitive(name)
	if !ok {
		return nil
	}
	switch p {
	case PrimInt:
		return u.Int
	case PrimI8:
		return u.I8
	case PrimI16:
		return u.I16
	case PrimI32:
		return u.I32
	case PrimI64:
		return u.I64
	case PrimU8:
		return u.U8
	case PrimU16:
		return u.U16
	case PrimU32:
		return u.U32
	case PrimU64:
		return u.U64
	case PrimDouble:
		return u.Double
	case PrimBool:
		return u.Bool
	case PrimString:
		return u.String
	case PrimStr:
		return u.Str
	case PrimVoid:
		return u.Void
	}
	return nil
}

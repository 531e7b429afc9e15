package typesystem

// TypeContext is the per-module interning table: it returns a single
// canonical *TypeInfo per structural shape, so that within one context
// type equality reduces to pointer equality (invariant I1). Primitives are
// shared with every other module's context through the common
// TypeUniverse; only arrays, refs, objects, and function types are
// deduplicated per context, since struct and function identity is tied to
// the declaring module.
type TypeContext struct {
	Universe *TypeUniverse

	arrays  []*TypeInfo // interned by (elem identity, has_size, size)
	refs    []*TypeInfo // interned by (elem identity, mutable)
	objects []*TypeInfo // interned by name, or structurally for anonymous literals
	funcs   []*TypeInfo // interned by (params identity..., return identity, variadic)

	byName map[string]*TypeInfo // struct/function lookup by declared name
}

// NewTypeContext creates an empty context sharing the given universe.
func NewTypeContext(universe *TypeUniverse) *TypeContext {
	return &TypeContext{Universe: universe, byName: make(map[string]*TypeInfo)}
}

// Primitive resolves a primitive name through the shared universe.
func (c *TypeContext) Primitive(name string) *TypeInfo { return c.Universe.Primitive(name) }

// Array returns the canonical T[] (size < 0) or T[size] (size >= 0) type.
func (c *TypeContext) Array(elem *TypeInfo, hasSize bool, size int64) *TypeInfo {
	for _, t := range c.arrays {
		if t.HasSize == hasSize && (!hasSize || t.ArraySize == size) && structurallyEqual(t.Elem, elem, map[[2]*TypeInfo]bool{}) {
			return t
		}
	}
	t := &TypeInfo{Kind: KindArray, Elem: elem, HasSize: hasSize, ArraySize: size}
	c.arrays = append(c.arrays, t)
	return t
}

// Ref returns the canonical ref T (or mutable ref T) type.
func (c *TypeContext) Ref(elem *TypeInfo, mutable bool) *TypeInfo {
	for _, t := range c.refs {
		if t.Mutable == mutable && structurallyEqual(t.Elem, elem, map[[2]*TypeInfo]bool{}) {
			return t
		}
	}
	t := &TypeInfo{Kind: KindRef, Elem: elem, Mutable: mutable}
	c.refs = append(c.refs, t)
	return t
}

// NamedObject returns the canonical object type for a declared struct,
// registering it under its name. A second call for the same name returns
// the original (structs are declared once; Pass 0 enforces that).
func (c *TypeContext) NamedObject(name string, fields []Field, declNode interface{}) *TypeInfo {
	if t, ok := c.byName[name]; ok {
		return t
	}
	t := &TypeInfo{Kind: KindObject, StructName: name, Fields: fields, StructDecl: declNode}
	c.objects = append(c.objects, t)
	c.byName[name] = t
	return t
}

// AnonymousObject returns the canonical type for an object literal's shape
// with no declared struct backing it (used only transiently during
// inference before contextual typing resolves a literal to a declared
// struct type; §4.7 Pass 2 notes anonymous types should be avoided for
// contextually-typed literals).
func (c *TypeContext) AnonymousObject(fields []Field) *TypeInfo {
	candidate := &TypeInfo{Kind: KindObject, Fields: fields}
	for _, t := range c.objects {
		if t.StructName == "" && structurallyEqual(t, candidate, map[[2]*TypeInfo]bool{}) {
			return t
		}
	}
	c.objects = append(c.objects, candidate)
	return candidate
}

// LookupNamed finds a previously-interned struct or function type by name.
func (c *TypeContext) LookupNamed(name string) (*TypeInfo, bool) {
	t, ok := c.byName[name]
	return t, ok
}

// Function returns the canonical function type for a signature, registering
// it under name so a later call-site lookup can find it again.
func (c *TypeContext) Function(name string, params []*TypeInfo, ret *TypeInfo, variadic bool) *TypeInfo {
	candidate := &TypeInfo{Kind: KindFunction, Params: params, Return: ret, Variadic: variadic}
	for _, t := range c.funcs {
		if t.Variadic == variadic && len(t.Params) == len(params) && structurallyEqual(t, candidate, map[[2]*TypeInfo]bool{}) {
			if name != "" {
				c.byName[name] = t
			}
			return t
		}
	}
	c.funcs = append(c.funcs, candidate)
	if name != "" {
		c.byName[name] = candidate
	}
	return candidate
}

// Functions returns every function type interned in this context, for
// drivers that need to revisit every specialization of every function
// (Pass 5's re-walk).
func (c *TypeContext) Functions() []*TypeInfo { return c.funcs }

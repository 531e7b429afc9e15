package typesystem

// MethodKind distinguishes how a trait method's implementation is realized.
type MethodKind int

const (
	MethodExternal  MethodKind = iota // a C ABI symbol name
	MethodIntrinsic                   // a callback the codegen recognizes and lowers directly
	MethodScript                      // a JSasta-level AST body
)

// Method is one implementation of a trait's method slot.
type Method struct {
	Name string
	Kind MethodKind
	// Symbol is the external ABI name (MethodExternal) or intrinsic tag
	// (MethodIntrinsic); Body is the *ast.FunctionDeclaration (MethodScript),
	// carried untyped for the same import-cycle reason as TypeInfo.FuncBody.
	Symbol string
	Body   interface{}
}

// Trait declares a named contract: an optional list of type parameters
// (Add<Rhs>), an optional list of associated type names (Output), and the
// method slots implementations must provide.
type Trait struct {
	Name        string
	TypeParams  []string
	AssocTypes  []string
	MethodNames []string
}

// TraitImpl binds a trait to a concrete implementing type, with bindings
// for the trait's type parameters and associated types.
type TraitImpl struct {
	Trait          *Trait
	Self           *TypeInfo
	TypeParamBinds map[string]*TypeInfo
	AssocTypeBinds map[string]*TypeInfo
	Methods        []Method
}

// MethodNamed returns impl's method with the given name, if present.
func (impl *TraitImpl) MethodNamed(name string) (Method, bool) {
	for _, m := range impl.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// TraitRegistry holds every trait definition and every impl recorded so
// far, plus the built-in auto-impl rules for arrays and strings.
type TraitRegistry struct {
	traits map[string]*Trait
	impls  []*TraitImpl
}

// NewTraitRegistry builds the registry with every built-in trait from
// §4.5 pre-declared; impls (including Display for every primitive) are
// seeded by SeedBuiltinImpls, which needs a TypeUniverse and so runs
// separately from construction.
func NewTraitRegistry() *TraitRegistry {
	r := &TraitRegistry{traits: make(map[string]*Trait)}
	def := func(name string, typeParams, assoc, methods []string) {
		r.traits[name] = &Trait{Name: name, TypeParams: typeParams, AssocTypes: assoc, MethodNames: methods}
	}
	def("Add", []string{"Rhs"}, []string{"Output"}, []string{"add"})
	def("Sub", []string{"Rhs"}, []string{"Output"}, []string{"sub"})
	def("Mul", []string{"Rhs"}, []string{"Output"}, []string{"mul"})
	def("Div", []string{"Rhs"}, []string{"Output"}, []string{"div"})
	def("Rem", []string{"Rhs"}, []string{"Output"}, []string{"rem"})
	def("BitAnd", []string{"Rhs"}, []string{"Output"}, []string{"bitand"})
	def("BitOr", []string{"Rhs"}, []string{"Output"}, []string{"bitor"})
	def("BitXor", []string{"Rhs"}, []string{"Output"}, []string{"bitxor"})
	def("Shl", []string{"Rhs"}, []string{"Output"}, []string{"shl"})
	def("Shr", []string{"Rhs"}, []string{"Output"}, []string{"shr"})
	def("Eq", nil, nil, []string{"eq"})
	def("Ord", nil, nil, []string{"cmp"})
	def("Not", nil, []string{"Output"}, []string{"not"})
	def("Neg", nil, []string{"Output"}, []string{"neg"})
	def("AddAssign", []string{"Rhs"}, nil, []string{"add_assign"})
	def("SubAssign", []string{"Rhs"}, nil, []string{"sub_assign"})
	def("MulAssign", []string{"Rhs"}, nil, []string{"mul_assign"})
	def("DivAssign", []string{"Rhs"}, nil, []string{"div_assign"})
	def("Index", []string{"Idx"}, []string{"Output"}, []string{"index"})
	def("RefIndex", []string{"Idx"}, []string{"Output"}, []string{"ref_index"})
	def("Length", nil, []string{"Output"}, []string{"length"})
	def("Display", nil, nil, []string{"display"})
	return r
}

// Trait looks up a built-in or user-declared trait definition by name.
func (r *TraitRegistry) Trait(name string) (*Trait, bool) {
	t, ok := r.traits[name]
	return t, ok
}

// DeclareTrait registers a user-declared trait.
func (r *TraitRegistry) DeclareTrait(t *Trait) { r.traits[t.Name] = t }

// AddImpl records a new trait implementation.
func (r *TraitRegistry) AddImpl(impl *TraitImpl) { r.impls = append(r.impls, impl) }

// FindImpl resolves (trait, self_type, type_param_bindings) by identity
// comparison, per §4.5 "Lookup."
func (r *TraitRegistry) FindImpl(trait *Trait, self *TypeInfo, typeParams map[string]*TypeInfo) *TraitImpl {
	for _, impl := range r.impls {
		if impl.Trait != trait || impl.Self != self {
			continue
		}
		if bindingsMatch(impl.TypeParamBinds, typeParams) {
			return impl
		}
	}
	return nil
}

func bindingsMatch(a, b map[string]*TypeInfo) bool {
	if len(b) == 0 {
		return true // caller did not constrain on type params
	}
	for k, v := range b {
		if a[k] != v {
			return false
		}
	}
	return true
}

// GetAssocType returns the bound type for a trait's associated type name on
// a specific impl, or nil if unbound.
func (r *TraitRegistry) GetAssocType(trait *Trait, self *TypeInfo, typeParams map[string]*TypeInfo, name string) *TypeInfo {
	impl := r.FindImpl(trait, self, typeParams)
	if impl == nil {
		return nil
	}
	return impl.AssocTypeBinds[name]
}

// operatorTraits maps a binary/unary operator spelling to the trait that
// governs it, per §4.7 Pass 2's `operator_to_trait`.
var operatorTraits = map[string]string{
	"+": "Add", "-": "Sub", "*": "Mul", "/": "Div", "%": "Rem",
	"&": "BitAnd", "|": "BitOr", "^": "BitXor", "<<": "Shl", ">>": "Shr",
	"==": "Eq", "!=": "Eq", "<": "Ord", ">": "Ord", "<=": "Ord", ">=": "Ord",
	"!":           "Not",
	"+=":          "AddAssign",
	"-=":          "SubAssign",
	"*=":          "MulAssign",
	"/=":          "DivAssign",
}

// OperatorToTrait returns the trait name that governs operator op, and ok
// is false for `&&`/`||`, which always short-circuit to bool without
// consulting any trait.
func OperatorToTrait(op string) (string, bool) {
	if op == "&&" || op == "||" {
		return "", false
	}
	name, ok := operatorTraits[op]
	return name, ok
}

// EnsureIndexImpls synthesizes Index/RefIndex/Length auto-impls for arrays
// and strings the first time they're needed, per §4.5 "Auto-impl." It is
// idempotent: a second call for the same self type is a no-op because
// FindImpl already finds the impl created by the first call.
func (r *TraitRegistry) EnsureIndexImpls(u *TypeUniverse, ctx *TypeContext, self *TypeInfo) {
	indexTrait, _ := r.Trait("Index")
	refIndexTrait, _ := r.Trait("RefIndex")
	lengthTrait, _ := r.Trait("Length")

	var output *TypeInfo
	switch {
	case self.Kind == KindArray:
		output = self.Elem
	case self.Kind == KindPrimitive && self.Prim == PrimString:
		output = u.U8
	default:
		return
	}

	idxParams := map[string]*TypeInfo{"Idx": u.Int}
	if r.FindImpl(indexTrait, self, idxParams) == nil {
		r.AddImpl(&TraitImpl{
			Trait: indexTrait, Self: self,
			TypeParamBinds: idxParams,
			AssocTypeBinds: map[string]*TypeInfo{"Output": output},
			Methods:        []Method{{Name: "index", Kind: MethodIntrinsic, Symbol: "index"}},
		})
	}
	if self.Kind == KindArray {
		if r.FindImpl(refIndexTrait, self, idxParams) == nil {
			r.AddImpl(&TraitImpl{
				Trait: refIndexTrait, Self: self,
				TypeParamBinds: idxParams,
				AssocTypeBinds: map[string]*TypeInfo{"Output": output},
				Methods:        []Method{{Name: "ref_index", Kind: MethodIntrinsic, Symbol: "ref_index"}},
			})
		}
	}
	if r.FindImpl(lengthTrait, self, nil) == nil {
		r.AddImpl(&TraitImpl{
			Trait: lengthTrait, Self: self,
			AssocTypeBinds: map[string]*TypeInfo{"Output": u.Int},
			Methods:        []Method{{Name: "length", Kind: MethodIntrinsic, Symbol: "length"}},
		})
	}
}

// SeedBuiltinImpls pre-implements Display for every primitive, per §4.5.
func (r *TraitRegistry) SeedBuiltinImpls(u *TypeUniverse) {
	display, _ := r.Trait("Display")
	for _, prim := range []*TypeInfo{u.Int, u.I8, u.I16, u.I32, u.I64, u.U8, u.U16, u.U32, u.U64, u.Double, u.Bool, u.String, u.Str} {
		r.AddImpl(&TraitImpl{
			Trait:   display,
			Self:    prim,
			Methods: []Method{{Name: "display", Kind: MethodIntrinsic, Symbol: "display"}},
		})
	}
}

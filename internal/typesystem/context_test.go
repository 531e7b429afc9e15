package typesystem

import "testing"

// P1: structurally equal types built in the same TypeContext are the same
// pointer.
func TestArrayInterning_PointerIdentity(t *testing.T) {
	u := NewTypeUniverse()
	ctx := NewTypeContext(u)

	a := ctx.Array(u.Int, true, 10)
	b := ctx.Array(u.Int, true, 10)
	if a != b {
		t.Fatalf("two structurally equal array types were not interned to the same pointer")
	}

	c := ctx.Array(u.Int, true, 11)
	if a == c {
		t.Fatalf("arrays with different sizes were incorrectly interned to the same pointer")
	}

	d := ctx.Array(u.Double, true, 10)
	if a == d {
		t.Fatalf("arrays with different element types were incorrectly interned to the same pointer")
	}
}

func TestRefInterning_PointerIdentity(t *testing.T) {
	u := NewTypeUniverse()
	ctx := NewTypeContext(u)

	a := ctx.Ref(u.String, true)
	b := ctx.Ref(u.String, true)
	if a != b {
		t.Fatalf("two structurally equal ref types were not interned to the same pointer")
	}
	if c := ctx.Ref(u.String, false); c == a {
		t.Fatalf("mutable and immutable refs were incorrectly interned to the same pointer")
	}
}

func TestFunctionInterning_PointerIdentity(t *testing.T) {
	u := NewTypeUniverse()
	ctx := NewTypeContext(u)

	a := ctx.Function("add", []*TypeInfo{u.Int, u.Int}, u.Int, false)
	b := ctx.Function("", []*TypeInfo{u.Int, u.Int}, u.Int, false)
	if a != b {
		t.Fatalf("two structurally equal function signatures were not interned to the same pointer")
	}

	named, ok := ctx.LookupNamed("add")
	if !ok || named != a {
		t.Fatalf("Function did not register its named lookup entry")
	}
}

func TestNamedObject_DeclaredOnce(t *testing.T) {
	u := NewTypeUniverse()
	ctx := NewTypeContext(u)

	fields := []Field{{Name: "x", Type: u.Int}}
	a := ctx.NamedObject("Vec", fields, nil)
	b := ctx.NamedObject("Vec", []Field{{Name: "y", Type: u.Double}}, nil)
	if a != b {
		t.Fatalf("a second NamedObject call for the same name should return the original, not a new type")
	}
	if len(b.Fields) != 1 || b.Fields[0].Name != "x" {
		t.Fatalf("NamedObject's second call should not have overwritten the original fields")
	}
}

// P4: AddByTypes is idempotent — calling it twice with the same param types
// returns the same specialization, never a duplicate.
func TestAddByTypes_Idempotent(t *testing.T) {
	u := NewTypeUniverse()
	ctx := NewTypeContext(u)
	fnType := ctx.Function("add", []*TypeInfo{u.Int, u.Int}, u.Int, false)

	s1 := AddByTypes(fnType, "add", "add_int_int", []*TypeInfo{u.Int, u.Int})
	s2 := AddByTypes(fnType, "add", "add_int_int", []*TypeInfo{u.Int, u.Int})
	if s1 != s2 {
		t.Fatalf("AddByTypes produced two distinct specializations for the same param types")
	}

	all := GetAllFor(fnType)
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 specialization after two idempotent AddByTypes calls, got %d", len(all))
	}

	s3 := AddByTypes(fnType, "add", "add_double_double", []*TypeInfo{u.Double, u.Double})
	if s3 == s1 {
		t.Fatalf("a distinct param-type tuple must produce a distinct specialization")
	}
	if len(GetAllFor(fnType)) != 2 {
		t.Fatalf("expected 2 specializations for 2 distinct param-type tuples, got %d", len(GetAllFor(fnType)))
	}
}

func TestMangleCrossModule(t *testing.T) {
	got := MangleCrossModule("math", "add")
	want := "math__add"
	if got != want {
		t.Errorf("MangleCrossModule(math, add) = %q, want %q", got, want)
	}
}

package typesystem

import (
	"testing"
)

func TestTypeStrings(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TCon{Name: "int"}, "int"},
		{TPtr{Elem: TCon{Name: "int"}}, "int*"},
		{TApp{Ctor: "Vector", Args: []Type{TCon{Name: "int"}}}, "Vector<int>"},
		{TArray{Elem: TCon{Name: "int"}, Len: 5}, "Array<int, 5>"},
		{TPtr{Elem: TPtr{Elem: TCon{Name: "double"}}}, "double**"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKeyIdentity(t *testing.T) {
	a := TApp{Ctor: "Vector", Args: []Type{TCon{Name: "int"}}}
	b := TApp{Ctor: "Vector", Args: []Type{TCon{Name: "int"}}}
	if !Equal(a, b) {
		t.Errorf("identical descriptors should be equal")
	}

	// Array length participates in identity
	a0 := TArray{Elem: TCon{Name: "int"}, Len: 0}
	a5 := TArray{Elem: TCon{Name: "int"}, Len: 5}
	if Equal(a0, a5) {
		t.Errorf("Array<int, 0> should not equal Array<int, 5>")
	}

	// TVar keys never collide with TCon keys
	if Equal(TVar{Name: "a"}, TCon{Name: "a"}) {
		t.Errorf("pattern variable should not equal concrete type of same name")
	}
}

func TestHasVars(t *testing.T) {
	if HasVars(TPtr{Elem: TCon{Name: "int"}}) {
		t.Errorf("int* has no vars")
	}
	if !HasVars(TApp{Ctor: "Vector", Args: []Type{TVar{Name: "a"}}}) {
		t.Errorf("Vector<a> has vars")
	}
}

func TestMatch(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "string"}

	tests := []struct {
		name    string
		pattern Type
		target  Type
		want    bool
	}{
		{"exact con", intT, intT, true},
		{"con mismatch", intT, strT, false},
		{"var binds anything", TVar{Name: "a"}, TPtr{Elem: intT}, true},
		{"ptr pattern", TPtr{Elem: TVar{Name: "a"}}, TPtr{Elem: intT}, true},
		{"ptr pattern non-ptr", TPtr{Elem: TVar{Name: "a"}}, intT, false},
		{"app pattern", TApp{Ctor: "Vector", Args: []Type{TVar{Name: "a"}}}, TApp{Ctor: "Vector", Args: []Type{intT}}, true},
		{"app ctor mismatch", TApp{Ctor: "Vector", Args: []Type{TVar{Name: "a"}}}, TApp{Ctor: "Map", Args: []Type{intT}}, false},
		{"array len match", TArray{Elem: TVar{Name: "a"}, Len: 5}, TArray{Elem: intT, Len: 5}, true},
		{"array len mismatch", TArray{Elem: TVar{Name: "a"}, Len: 0}, TArray{Elem: intT, Len: 5}, false},
		{"consistent rebind", TApp{Ctor: "Pair", Args: []Type{TVar{Name: "a"}, TVar{Name: "a"}}}, TApp{Ctor: "Pair", Args: []Type{intT, intT}}, true},
		{"inconsistent rebind", TApp{Ctor: "Pair", Args: []Type{TVar{Name: "a"}, TVar{Name: "a"}}}, TApp{Ctor: "Pair", Args: []Type{intT, strT}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subst := make(Subst)
			if got := Match(tt.pattern, tt.target, subst); got != tt.want {
				t.Errorf("Match(%s, %s) = %v, want %v", tt.pattern, tt.target, got, tt.want)
			}
		})
	}
}

func TestMatchCaptures(t *testing.T) {
	subst := make(Subst)
	pattern := TApp{Ctor: "Vector", Args: []Type{TVar{Name: "a"}}}
	target := TApp{Ctor: "Vector", Args: []Type{TCon{Name: "int"}}}
	if !Match(pattern, target, subst) {
		t.Fatalf("expected match")
	}
	if !Equal(subst["a"], TCon{Name: "int"}) {
		t.Errorf("subst[a] = %v, want int", subst["a"])
	}

	// Apply round-trips the pattern to the target
	if got := subst.Apply(pattern); !Equal(got, target) {
		t.Errorf("Apply = %s, want %s", got, target)
	}
}

func TestUniverse(t *testing.T) {
	u := NewUniverse()
	intT := TCon{Name: "int"}
	u.MustRegister(intT, Shape{Class: ClassIntegral, Size: 4})
	u.MustRegister(TPtr{Elem: intT}, Shape{})

	if s, ok := u.Shape(intT); !ok || s.Class != ClassIntegral || s.Size != 4 {
		t.Errorf("Shape(int) = %+v, %v", s, ok)
	}
	if _, ok := u.Lookup("int*"); !ok {
		t.Errorf("Lookup(int*) failed")
	}
	if err := u.Register(TVar{Name: "a"}, Shape{}); err == nil {
		t.Errorf("registering a pattern variable should fail")
	}

	// Resolvability: composed of known parts
	if !u.Resolves(TPtr{Elem: TPtr{Elem: intT}}) {
		t.Errorf("int** should resolve through int")
	}
	if u.Resolves(TCon{Name: "Ghost"}) {
		t.Errorf("unregistered type should not resolve")
	}
}

func TestUniverseDeterministicOrder(t *testing.T) {
	u := NewUniverse()
	u.MustRegister(TCon{Name: "b"}, Shape{})
	u.MustRegister(TCon{Name: "a"}, Shape{})

	types := u.Types()
	if len(types) != 2 || types[0].String() != "b" || types[1].String() != "a" {
		t.Errorf("Types() should preserve registration order, got %v", types)
	}
	names := u.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() should be sorted, got %v", names)
	}
}

package predicate

import (
	"testing"

	"github.com/funvibe/funsel/internal/probe"
	"github.com/funvibe/funsel/internal/typesystem"
)

var (
	intT  = typesystem.TCon{Name: "int"}
	dblT  = typesystem.TCon{Name: "double"}
	boolT = typesystem.TCon{Name: "bool"}
	strT  = typesystem.TCon{Name: "string"}
)

func demoEnv() *Env {
	u := typesystem.NewUniverse()
	u.MustRegister(intT, typesystem.Shape{Class: typesystem.ClassIntegral, Size: 4})
	u.MustRegister(dblT, typesystem.Shape{Class: typesystem.ClassFloating, Size: 8})
	u.MustRegister(boolT, typesystem.Shape{Class: typesystem.ClassIntegral, Size: 1})
	u.MustRegister(strT, typesystem.Shape{Operators: map[string]bool{"print": true}})
	u.MustRegister(typesystem.TPtr{Elem: intT}, typesystem.Shape{Size: 8})
	return NewEnv(u)
}

func TestPrimitives(t *testing.T) {
	env := demoEnv()
	intPtr := typesystem.TPtr{Elem: intT}

	tests := []struct {
		pred Predicate
		typ  typesystem.Type
		want bool
	}{
		{IsIntegral, intT, true},
		{IsIntegral, dblT, false},
		{IsIntegral, boolT, true},
		{IsFloating, dblT, true},
		{IsFloating, intT, false},
		{IsArithmetic, intT, true},
		{IsArithmetic, dblT, true},
		{IsArithmetic, boolT, true},
		{IsArithmetic, strT, false},
		{IsPointer, intPtr, true},
		{IsPointer, intT, false},
		{IsSameAs(boolT), boolT, true},
		{IsSameAs(boolT), intT, false},
		{IsBool, boolT, true},
		{IsBool, intT, false},
		{SizeAtMost(4), intT, true},
		{SizeAtMost(4), dblT, false},
		{SizeAtMost(4), strT, false},
		{Always, strT, true},
		{Has(probe.Operator{Op: "print"}), strT, true},
		{Has(probe.Operator{Op: "print"}), intT, false},
	}
	for _, tt := range tests {
		got, err := env.Eval(tt.pred, tt.typ)
		if err != nil {
			t.Fatalf("%s(%s): %v", tt.pred.Name(), tt.typ, err)
		}
		if got != tt.want {
			t.Errorf("%s(%s) = %v, want %v", tt.pred.Name(), tt.typ, got, tt.want)
		}
	}
}

func TestTotalityOnUnknownTypes(t *testing.T) {
	env := demoEnv()
	ghost := typesystem.TCon{Name: "Ghost"}
	for _, p := range []Predicate{IsIntegral, IsFloating, IsArithmetic, SizeAtMost(8), Has(probe.MethodCall{Name: "frob"})} {
		got, err := env.Eval(p, ghost)
		if err != nil {
			t.Errorf("%s(Ghost) errored: %v", p.Name(), err)
		}
		if got {
			t.Errorf("%s(Ghost) = true, want false", p.Name())
		}
	}
}

func TestCombinators(t *testing.T) {
	env := demoEnv()

	isBoolish := And(IsArithmetic, IsSameAs(boolT))
	if got, _ := env.Eval(isBoolish, boolT); !got {
		t.Errorf("And failed for bool")
	}
	if got, _ := env.Eval(isBoolish, intT); got {
		t.Errorf("And(arithmetic, same-as-bool) should fail for int")
	}

	numeric := Or(IsIntegral, IsFloating)
	for _, typ := range []typesystem.Type{intT, dblT, boolT} {
		if got, _ := env.Eval(numeric, typ); !got {
			t.Errorf("Or failed for %s", typ)
		}
	}
	if got, _ := env.Eval(numeric, strT); got {
		t.Errorf("Or should fail for string")
	}

	if got, _ := env.Eval(Not(IsPointer), intT); !got {
		t.Errorf("Not(is_pointer) should hold for int")
	}
}

func TestMemoization(t *testing.T) {
	env := demoEnv()

	// The same sub-predicate under two combinators is evaluated once per type.
	p := And(IsArithmetic, Not(IsFloating))
	q := Or(IsArithmetic, IsPointer)
	if _, err := env.Eval(p, intT); err != nil {
		t.Fatal(err)
	}
	before := env.MemoSize()
	if _, err := env.Eval(q, intT); err != nil {
		t.Fatal(err)
	}
	// q adds itself and is_pointer; is_arithmetic is already memoized.
	if env.MemoSize() != before+2 {
		t.Errorf("memo grew by %d, want 2 (shared sub-predicate re-instantiated?)", env.MemoSize()-before)
	}

	// Memoized result is stable.
	a, _ := env.Eval(p, intT)
	b, _ := env.Eval(p, intT)
	if a != b {
		t.Errorf("memoized evaluation is not deterministic")
	}
}

func TestStructuralKeys(t *testing.T) {
	a := And(IsIntegral, IsPointer)
	b := And(IsIntegral, IsPointer)
	if a.Key() != b.Key() {
		t.Errorf("structurally identical predicates must share a key")
	}
	if a.Key() == Or(IsIntegral, IsPointer).Key() {
		t.Errorf("And and Or must not share a key")
	}
}

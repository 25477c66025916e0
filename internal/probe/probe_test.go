package probe

import (
	"errors"
	"testing"

	"github.com/funvibe/funsel/internal/typesystem"
)

var (
	intT = typesystem.TCon{Name: "int"}
	strT = typesystem.TCon{Name: "string"}
)

func demoUniverse() *typesystem.Universe {
	u := typesystem.NewUniverse()
	u.MustRegister(intT, typesystem.Shape{Class: typesystem.ClassIntegral, Size: 4})
	u.MustRegister(strT, typesystem.Shape{
		Operators: map[string]bool{"print": true},
	})

	vec := typesystem.TApp{Ctor: "Vector", Args: []typesystem.Type{intT}}
	u.MustRegister(vec, typesystem.Shape{
		Methods: []typesystem.Method{
			{Name: "push_back", Params: []typesystem.Type{intT}},
			{Name: "size", Result: intT},
		},
		Aliases: map[string]typesystem.Type{"value_type": intT},
	})

	arr := typesystem.TArray{Elem: intT, Len: 5}
	u.MustRegister(arr, typesystem.Shape{
		Methods: []typesystem.Method{{Name: "size", Result: intT}},
	})

	u.MustRegister(typesystem.TCon{Name: "NonPrintableStruct"}, typesystem.Shape{})
	return u
}

func TestMethodCallProbe(t *testing.T) {
	u := demoUniverse()
	vec, _ := u.Lookup("Vector<int>")
	arr, _ := u.Lookup("Array<int, 5>")

	tests := []struct {
		name  string
		probe Probe
		typ   typesystem.Type
		want  bool
	}{
		{"push_back on vector", MethodCall{Name: "push_back", Args: []typesystem.Type{intT}}, vec, true},
		{"push_back pattern arg", MethodCall{Name: "push_back", Args: []typesystem.Type{typesystem.TVar{Name: "a"}}}, vec, true},
		{"push_back on array", MethodCall{Name: "push_back", Args: []typesystem.Type{intT}}, arr, false},
		{"wrong arity", MethodCall{Name: "push_back", Args: nil}, vec, false},
		{"wrong arg type", MethodCall{Name: "push_back", Args: []typesystem.Type{strT}}, vec, false},
		{"size on both", MethodCall{Name: "size"}, arr, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(u, tt.probe, tt.typ)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval(%s, %s) = %v, want %v", tt.probe, tt.typ, got, tt.want)
			}
		})
	}
}

func TestOperatorProbe(t *testing.T) {
	u := demoUniverse()
	np, _ := u.Lookup("NonPrintableStruct")

	if ok, err := Eval(u, Operator{Op: "print"}, strT); err != nil || !ok {
		t.Errorf("string should be printable, got %v, %v", ok, err)
	}
	if ok, err := Eval(u, Operator{Op: "print"}, np); err != nil || ok {
		t.Errorf("NonPrintableStruct should not be printable, got %v, %v", ok, err)
	}
}

func TestNestedAliasProbe(t *testing.T) {
	u := demoUniverse()
	vec, _ := u.Lookup("Vector<int>")

	if ok, err := Eval(u, NestedAlias{Name: "value_type"}, vec); err != nil || !ok {
		t.Errorf("Vector<int>::value_type should exist, got %v, %v", ok, err)
	}
	if ok, err := Eval(u, NestedAlias{Name: "mapped_type"}, vec); err != nil || ok {
		t.Errorf("missing alias should be a soft false, got %v, %v", ok, err)
	}
}

func TestUnknownTypeIsSoftFalse(t *testing.T) {
	u := demoUniverse()
	ghost := typesystem.TCon{Name: "Ghost"}
	if ok, err := Eval(u, Operator{Op: "print"}, ghost); err != nil || ok {
		t.Errorf("probing an unknown type must be false without error, got %v, %v", ok, err)
	}
}

// A matched declaration whose signature mentions an unresolvable type is a
// hard error: the probe substituted successfully, so the failure is past the
// immediate context and must not be swallowed.
func TestHardErrorPastImmediateContext(t *testing.T) {
	u := demoUniverse()
	broken := typesystem.TCon{Name: "Broken"}
	ghost := typesystem.TCon{Name: "Ghost"}
	u.MustRegister(broken, typesystem.Shape{
		Methods: []typesystem.Method{{Name: "frob", Params: []typesystem.Type{intT}, Result: ghost}},
		Aliases: map[string]typesystem.Type{"inner": ghost},
	})

	_, err := Eval(u, MethodCall{Name: "frob", Args: []typesystem.Type{intT}}, broken)
	var hard *HardError
	if !errors.As(err, &hard) {
		t.Fatalf("expected HardError for unresolvable result type, got %v", err)
	}

	_, err = Eval(u, NestedAlias{Name: "inner"}, broken)
	if !errors.As(err, &hard) {
		t.Fatalf("expected HardError for dangling alias target, got %v", err)
	}

	// But a missing member on the same type stays soft.
	if ok, err := Eval(u, MethodCall{Name: "missing"}, broken); err != nil || ok {
		t.Errorf("missing member must stay a soft false, got %v, %v", ok, err)
	}
}

package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all type descriptors in our system.
// Descriptors are compile-time-only identities: they carry no values and are
// never materialized past resolution. Structural facts live in the Universe,
// not on the descriptor itself.
type Type interface {
	String() string
	// Key is the canonical identity used for map keys and memoization.
	// Two descriptors denote the same type iff their keys are equal.
	Key() string
}

// TCon represents a named concrete type (e.g. int, bool, CustomStruct).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }
func (t TCon) Key() string    { return t.Name }

// TVar represents a pattern variable (e.g. 'a'). It is only meaningful
// inside structural patterns handed to Match; a TVar never describes a
// concrete type in the universe.
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }
func (t TVar) Key() string    { return "'" + t.Name }

// TPtr represents a pointer type (e.g. int*).
type TPtr struct {
	Elem Type
}

func (t TPtr) String() string { return t.Elem.String() + "*" }
func (t TPtr) Key() string    { return "ptr(" + t.Elem.Key() + ")" }

// TApp represents an applied type constructor (e.g. Vector<int>).
type TApp struct {
	Ctor string
	Args []Type
}

func (t TApp) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Ctor, strings.Join(args, ", "))
}

func (t TApp) Key() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Key()
	}
	return fmt.Sprintf("app(%s,%s)", t.Ctor, strings.Join(args, ","))
}

// TArray represents a fixed-length array type (e.g. Array<int, 5>).
// Len participates in identity: Array<int, 0> and Array<int, 5> are
// distinct descriptors and may have distinct specializations.
type TArray struct {
	Elem Type
	Len  int
}

func (t TArray) String() string { return fmt.Sprintf("Array<%s, %d>", t.Elem.String(), t.Len) }
func (t TArray) Key() string    { return fmt.Sprintf("arr(%s,%d)", t.Elem.Key(), t.Len) }

// Equal reports whether two descriptors denote the same type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Key() == b.Key()
}

// HasVars reports whether t contains pattern variables.
// Concrete descriptors registered in a universe must not contain any.
func HasVars(t Type) bool {
	switch t := t.(type) {
	case TVar:
		return true
	case TPtr:
		return HasVars(t.Elem)
	case TArray:
		return HasVars(t.Elem)
	case TApp:
		for _, a := range t.Args {
			if HasVars(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

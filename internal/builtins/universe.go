// Package builtins constructs the demonstration universe and the standard
// operation set: the closed type domain and the dispatch table the CLI
// resolves against.
package builtins

import (
	"github.com/funvibe/funsel/internal/config"
	"github.com/funvibe/funsel/internal/typesystem"
)

// Descriptors of the demo universe.
var (
	Int               = typesystem.TCon{Name: config.IntTypeName}
	Double            = typesystem.TCon{Name: config.DoubleTypeName}
	String            = typesystem.TCon{Name: config.StringTypeName}
	Bool              = typesystem.TCon{Name: config.BoolTypeName}
	Char              = typesystem.TCon{Name: "char"}
	IntPtr            = typesystem.TPtr{Elem: Int}
	VectorInt         = typesystem.TApp{Ctor: config.VectorTypeName, Args: []typesystem.Type{Int}}
	ArrayInt5         = typesystem.TArray{Elem: Int, Len: 5}
	CustomStruct      = typesystem.TCon{Name: config.CustomStructName}
	NonPrintableStrct = typesystem.TCon{Name: config.NonPrintableStructName}
)

// Universe builds the closed demo domain with its structural facts.
func Universe() *typesystem.Universe {
	u := typesystem.NewUniverse()

	printable := map[string]bool{config.PrintOperatorName: true}

	u.MustRegister(Int, typesystem.Shape{
		Class:     typesystem.ClassIntegral,
		Size:      4,
		Operators: printable,
	})
	u.MustRegister(Double, typesystem.Shape{
		Class:     typesystem.ClassFloating,
		Size:      8,
		Operators: printable,
	})
	u.MustRegister(Bool, typesystem.Shape{
		Class:     typesystem.ClassIntegral,
		Size:      1,
		Operators: printable,
	})
	u.MustRegister(Char, typesystem.Shape{
		Class:     typesystem.ClassIntegral,
		Size:      1,
		Operators: printable,
	})
	u.MustRegister(String, typesystem.Shape{
		Operators: printable,
		Methods: []typesystem.Method{
			{Name: "size", Result: Int},
		},
	})
	u.MustRegister(IntPtr, typesystem.Shape{Size: 8})
	u.MustRegister(VectorInt, typesystem.Shape{
		Methods: []typesystem.Method{
			{Name: config.PushBackMethodName, Params: []typesystem.Type{Int}},
			{Name: "size", Result: Int},
		},
		Aliases: map[string]typesystem.Type{config.ValueTypeAliasName: Int},
	})
	u.MustRegister(ArrayInt5, typesystem.Shape{
		Methods: []typesystem.Method{
			{Name: "size", Result: Int},
		},
		Aliases: map[string]typesystem.Type{config.ValueTypeAliasName: Int},
	})
	u.MustRegister(CustomStruct, typesystem.Shape{
		Operators: printable,
		Methods: []typesystem.Method{
			{Name: config.SerializeMethodName, Result: String},
		},
	})
	u.MustRegister(NonPrintableStrct, typesystem.Shape{})

	return u
}

// Domain returns the closed test domain over which every standard
// operation is total.
func Domain() []typesystem.Type {
	return []typesystem.Type{Int, Double, String, IntPtr, Bool, VectorInt, CustomStruct}
}

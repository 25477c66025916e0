// Package inspect derives a descriptor universe from compiled Go packages.
//
// It maps exported named types to descriptors and their method sets to
// shapes, so probes and classification run against real code instead of
// the built-in demo domain. The mapping is structural only: descriptors
// carry no values, exactly as in the hand-built universe.
package inspect

import (
	"fmt"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/funvibe/funsel/internal/typesystem"
)

// Inspector loads Go packages and converts their exported types.
type Inspector struct {
	// dir is the module directory used for package loading.
	dir string
}

// NewInspector creates an inspector rooted at a Go module directory.
func NewInspector(dir string) *Inspector {
	return &Inspector{dir: dir}
}

// LoadUniverse loads the given package patterns and builds a universe from
// every exported named type, plus the basic types they reference.
func (ins *Inspector) LoadUniverse(patterns ...string) (*typesystem.Universe, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedImports,
		Dir: ins.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}

	u := typesystem.NewUniverse()
	registerBasics(u)

	for _, pkg := range pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			typeName, ok := obj.(*types.TypeName)
			if !ok || !obj.Exported() || typeName.IsAlias() {
				continue
			}
			named, ok := typeName.Type().(*types.Named)
			if !ok {
				continue
			}
			desc := descriptorFor(named)
			u.MustRegister(desc, shapeFor(named))
		}
	}
	return u, nil
}

// registerBasics seeds the universe with the Go basic types so method
// signatures over them resolve.
func registerBasics(u *typesystem.Universe) {
	printable := map[string]bool{"print": true}
	integral := func(size int) typesystem.Shape {
		return typesystem.Shape{Class: typesystem.ClassIntegral, Size: size, Operators: printable}
	}
	u.MustRegister(typesystem.TCon{Name: "bool"}, integral(1))
	u.MustRegister(typesystem.TCon{Name: "int8"}, integral(1))
	u.MustRegister(typesystem.TCon{Name: "int16"}, integral(2))
	u.MustRegister(typesystem.TCon{Name: "int32"}, integral(4))
	u.MustRegister(typesystem.TCon{Name: "rune"}, integral(4))
	u.MustRegister(typesystem.TCon{Name: "int"}, integral(8))
	u.MustRegister(typesystem.TCon{Name: "int64"}, integral(8))
	u.MustRegister(typesystem.TCon{Name: "uint8"}, integral(1))
	u.MustRegister(typesystem.TCon{Name: "byte"}, integral(1))
	u.MustRegister(typesystem.TCon{Name: "uint16"}, integral(2))
	u.MustRegister(typesystem.TCon{Name: "uint32"}, integral(4))
	u.MustRegister(typesystem.TCon{Name: "uint"}, integral(8))
	u.MustRegister(typesystem.TCon{Name: "uint64"}, integral(8))
	u.MustRegister(typesystem.TCon{Name: "uintptr"}, integral(8))
	u.MustRegister(typesystem.TCon{Name: "float32"},
		typesystem.Shape{Class: typesystem.ClassFloating, Size: 4, Operators: printable})
	u.MustRegister(typesystem.TCon{Name: "float64"},
		typesystem.Shape{Class: typesystem.ClassFloating, Size: 8, Operators: printable})
	u.MustRegister(typesystem.TCon{Name: "string"}, typesystem.Shape{Operators: printable})
	u.MustRegister(typesystem.TCon{Name: "error"}, typesystem.Shape{Operators: printable})
	u.MustRegister(typesystem.TCon{Name: "any"}, typesystem.Shape{})
}

// descriptorFor maps a Go type to a descriptor.
func descriptorFor(t types.Type) typesystem.Type {
	switch t := t.(type) {
	case *types.Basic:
		return typesystem.TCon{Name: t.Name()}
	case *types.Pointer:
		return typesystem.TPtr{Elem: descriptorFor(t.Elem())}
	case *types.Slice:
		return typesystem.TApp{Ctor: "Slice", Args: []typesystem.Type{descriptorFor(t.Elem())}}
	case *types.Array:
		return typesystem.TArray{Elem: descriptorFor(t.Elem()), Len: int(t.Len())}
	case *types.Map:
		return typesystem.TApp{Ctor: "Map", Args: []typesystem.Type{
			descriptorFor(t.Key()), descriptorFor(t.Elem()),
		}}
	case *types.Chan:
		return typesystem.TApp{Ctor: "Chan", Args: []typesystem.Type{descriptorFor(t.Elem())}}
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			// Universe types: error, any.
			return typesystem.TCon{Name: obj.Name()}
		}
		return typesystem.TCon{Name: obj.Pkg().Name() + "." + obj.Name()}
	case *types.Interface:
		if t.NumMethods() == 0 {
			return typesystem.TCon{Name: "any"}
		}
		return typesystem.TCon{Name: t.String()}
	default:
		return typesystem.TCon{Name: t.String()}
	}
}

// shapeFor extracts the structural facts of a named Go type.
func shapeFor(named *types.Named) typesystem.Shape {
	shape := typesystem.Shape{}

	switch u := named.Underlying().(type) {
	case *types.Basic:
		info := u.Info()
		if info&types.IsInteger != 0 || info&types.IsBoolean != 0 {
			shape.Class = typesystem.ClassIntegral
		}
		if info&types.IsFloat != 0 {
			shape.Class = typesystem.ClassFloating
		}
	case *types.Struct:
		// Exported fields become nested aliases: Field -> field type.
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if !f.Exported() {
				continue
			}
			if shape.Aliases == nil {
				shape.Aliases = make(map[string]typesystem.Type)
			}
			shape.Aliases[f.Name()] = descriptorFor(f.Type())
		}
	}

	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		fn, ok := mset.At(i).Obj().(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		sig := fn.Type().(*types.Signature)
		m := typesystem.Method{Name: fn.Name()}
		params := sig.Params()
		for j := 0; j < params.Len(); j++ {
			m.Params = append(m.Params, descriptorFor(params.At(j).Type()))
		}
		if results := sig.Results(); results.Len() > 0 {
			m.Result = descriptorFor(results.At(0).Type())
		}
		shape.Methods = append(shape.Methods, m)

		// fmt.Stringer makes the type printable.
		if fn.Name() == "String" && params.Len() == 0 {
			if shape.Operators == nil {
				shape.Operators = make(map[string]bool)
			}
			shape.Operators["print"] = true
		}
	}

	return shape
}

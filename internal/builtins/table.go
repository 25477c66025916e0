package builtins

import (
	"fmt"

	"github.com/funvibe/funsel/internal/config"
	"github.com/funvibe/funsel/internal/consteval"
	"github.com/funvibe/funsel/internal/dispatch"
	"github.com/funvibe/funsel/internal/predicate"
	"github.com/funvibe/funsel/internal/probe"
	"github.com/funvibe/funsel/internal/typesystem"
)

func text(s string) dispatch.Impl {
	return func(env *predicate.Env, t typesystem.Type, bindings typesystem.Subst) (dispatch.Result, error) {
		return dispatch.Result{Value: s, Text: s}, nil
	}
}

// Table builds the standard operation set. Every operation except toggle
// carries a universal fallback, so resolution is total over the demo
// domain; toggle exists only for bool, the capability a full
// specialization adds beyond the generic surface.
func Table() *dispatch.Table {
	t := dispatch.NewTable()

	registerClassify(t)
	registerProcessNumber(t)
	registerSerialize(t)
	registerAddElement(t)
	registerSafeDivide(t)
	registerToggle(t)

	return t
}

func registerClassify(t *dispatch.Table) {
	op := config.ClassifyOpName

	t.Exact(op, Bool, "classify.bool",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: "bool", Text: "Boolean type"}, nil
		})

	t.Structural(op, typesystem.TPtr{Elem: typesystem.TVar{Name: "a"}}, "classify.pointer",
		func(env *predicate.Env, typ typesystem.Type, bindings typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: bindings["a"], Text: "Pointer type"}, nil
		})

	t.Structural(op, typesystem.TApp{Ctor: config.VectorTypeName, Args: []typesystem.Type{typesystem.TVar{Name: "a"}}}, "classify.vector",
		func(env *predicate.Env, typ typesystem.Type, bindings typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: bindings["a"], Text: fmt.Sprintf("Vector of %s", bindings["a"])}, nil
		})

	t.Guarded(op, predicate.IsIntegral, dispatch.RankNormal, "classify.integral",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			shape, _ := env.Universe.Shape(typ)
			return dispatch.Result{Value: shape.Size, Text: fmt.Sprintf("Integral type, size %d", shape.Size)}, nil
		})

	t.Guarded(op, predicate.IsFloating, dispatch.RankNormal, "classify.floating",
		text("Floating point type"))

	t.Guarded(op, predicate.Always, dispatch.RankFallback, "classify.fallback",
		text("Unclassified type"))
}

func registerProcessNumber(t *dispatch.Table) {
	op := config.ProcessNumberOpName

	// The small-integral bound is itself a compile-time result: 2**1 bytes.
	smallBound, err := consteval.New(0).Power(2, 1)
	if err != nil {
		panic(err)
	}
	t.Guarded(op, predicate.And(predicate.IsIntegral, predicate.SizeAtMost(int(smallBound))),
		dispatch.RankHigh, "process_number.small",
		text(fmt.Sprintf("Processing small integral number (at most %d bytes)", smallBound)))

	t.Guarded(op, predicate.IsIntegral, dispatch.RankNormal, "process_number.integral",
		text("Processing integral number"))
	t.Guarded(op, predicate.IsFloating, dispatch.RankNormal, "process_number.floating",
		text("Processing floating point number"))
	t.Guarded(op, predicate.Always, dispatch.RankFallback, "process_number.fallback",
		text("Not a number"))
}

func registerSerialize(t *dispatch.Table) {
	op := config.SerializeOpName

	// A member serialize() wins over mere printability.
	t.Guarded(op, predicate.Has(probe.MethodCall{Name: config.SerializeMethodName}),
		dispatch.RankHigh, "serialize.member",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: typ.String(), Text: fmt.Sprintf("serialized %s via member serialize()", typ)}, nil
		})

	t.Guarded(op, predicate.Has(probe.Operator{Op: config.PrintOperatorName}),
		dispatch.RankNormal, "serialize.printable",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: typ.String(), Text: fmt.Sprintf("serialized %s via stream insertion", typ)}, nil
		})

	t.Guarded(op, predicate.Always, dispatch.RankFallback, "serialize.fallback",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: nil, Text: fmt.Sprintf("<non-serializable %s>", typ)}, nil
		})
}

func registerAddElement(t *dispatch.Table) {
	op := config.AddElementOpName

	pushBack := probe.MethodCall{Name: config.PushBackMethodName, Args: []typesystem.Type{typesystem.TVar{Name: "a"}}}
	t.Guarded(op, predicate.Has(pushBack), dispatch.RankNormal, "add_element.push_back",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			shape, _ := env.Universe.Shape(typ)
			elem, ok := shape.Alias(config.ValueTypeAliasName)
			if !ok {
				m, _ := shape.Method(config.PushBackMethodName)
				elem = m.Params[0]
			}
			return dispatch.Result{Value: elem, Text: fmt.Sprintf("added %s element via push_back", elem)}, nil
		})

	t.Guarded(op, predicate.Always, dispatch.RankFallback, "add_element.fallback",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: nil, Text: fmt.Sprintf("cannot add element to %s", typ)}, nil
		})
}

func registerSafeDivide(t *dispatch.Table) {
	op := config.SafeDivideOpName

	divisible := predicate.And(predicate.IsArithmetic, predicate.Not(predicate.IsBool))
	t.Guarded(op, divisible, dispatch.RankNormal, "safe_divide.arithmetic",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: typ.String(), Text: fmt.Sprintf("safe division over %s", typ)}, nil
		})

	t.Guarded(op, predicate.Always, dispatch.RankFallback, "safe_divide.fallback",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: nil, Text: fmt.Sprintf("division unsupported for %s", typ)}, nil
		})
}

func registerToggle(t *dispatch.Table) {
	// toggle exists only for bool; every other type resolves to
	// NoMatchError.
	t.Exact(config.ToggleOpName, Bool, "toggle.bool",
		func(env *predicate.Env, typ typesystem.Type, _ typesystem.Subst) (dispatch.Result, error) {
			return dispatch.Result{Value: true, Text: "toggled"}, nil
		})
}

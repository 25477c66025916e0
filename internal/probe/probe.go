// Package probe implements structural detection: testing whether an
// expression shape is well-formed for a descriptor without failing the
// whole resolution.
//
// The boundary rule is explicit. A probe answers false (soft failure) only
// when the failure is in the immediate context of the tested expression:
// the member does not exist, the arity is wrong, the argument types do not
// match the declared parameters, the operator or alias is absent. Anything
// deeper (a matched declaration whose own signature or alias target does
// not resolve in the universe) is a hard error and propagates. Callers
// must never treat a hard error as "capability absent".
package probe

import (
	"fmt"
	"strings"

	"github.com/funvibe/funsel/internal/typesystem"
)

// Probe describes one testable expression shape.
type Probe interface {
	String() string
	// Key is the structural identity of the probe, used for memoization.
	Key() string
}

// MethodCall probes for a member method with a given argument signature.
// Args may contain pattern variables: push_back('a) matches any
// single-parameter push_back declaration.
type MethodCall struct {
	Name string
	Args []typesystem.Type
}

func (p MethodCall) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf(".%s(%s)", p.Name, strings.Join(args, ", "))
}

func (p MethodCall) Key() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.Key()
	}
	return fmt.Sprintf("method(%s,%s)", p.Name, strings.Join(args, ","))
}

// Operator probes for an operator capability (e.g. "print" for stream
// insertion).
type Operator struct {
	Op string
}

func (p Operator) String() string { return "operator " + p.Op }
func (p Operator) Key() string    { return "op(" + p.Op + ")" }

// NestedAlias probes for a nested type alias (e.g. value_type).
type NestedAlias struct {
	Name string
}

func (p NestedAlias) String() string { return "::" + p.Name }
func (p NestedAlias) Key() string    { return "alias(" + p.Name + ")" }

// HardError is a declaration error reached only after the probed expression
// itself substituted successfully. It is a genuine failure, never a
// negative probe result.
type HardError struct {
	Type   typesystem.Type
	Probe  Probe
	Detail string
}

func (e *HardError) Error() string {
	return fmt.Sprintf("hard error probing %s on %s: %s", e.Probe, e.Type, e.Detail)
}

// Eval tests whether the probed expression is well-formed for t.
func Eval(u *typesystem.Universe, p Probe, t typesystem.Type) (bool, error) {
	shape, ok := u.Shape(t)
	if !ok {
		// Unknown descriptor: total predicates default to false.
		return false, nil
	}

	switch p := p.(type) {
	case MethodCall:
		return evalMethodCall(u, p, t, shape)

	case Operator:
		return shape.HasOperator(p.Op), nil

	case NestedAlias:
		target, ok := shape.Alias(p.Name)
		if !ok {
			return false, nil
		}
		// The alias exists; a dangling target is past the immediate context.
		if !u.Resolves(target) {
			return false, &HardError{Type: t, Probe: p,
				Detail: fmt.Sprintf("alias %s targets unresolvable type %s", p.Name, target)}
		}
		return true, nil
	}

	return false, fmt.Errorf("unknown probe kind %T", p)
}

func evalMethodCall(u *typesystem.Universe, p MethodCall, t typesystem.Type, shape typesystem.Shape) (bool, error) {
	m, ok := shape.Method(p.Name)
	if !ok {
		return false, nil
	}
	if len(m.Params) != len(p.Args) {
		return false, nil
	}
	subst := make(typesystem.Subst)
	for i, arg := range p.Args {
		if !typesystem.Match(arg, m.Params[i], subst) {
			return false, nil
		}
	}

	// Substitution succeeded: the declaration itself must now be sound.
	for _, param := range m.Params {
		if !u.Resolves(param) {
			return false, &HardError{Type: t, Probe: p,
				Detail: fmt.Sprintf("parameter type %s does not resolve", param)}
		}
	}
	if m.Result != nil && !u.Resolves(m.Result) {
		return false, &HardError{Type: t, Probe: p,
			Detail: fmt.Sprintf("result type %s does not resolve", m.Result)}
	}
	return true, nil
}

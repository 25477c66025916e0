package predicate

import "github.com/funvibe/funsel/internal/typesystem"

// Combinators compose predicates into capability classes. Operands are
// independently well-typed booleans, so no short-circuit is required for
// correctness; both evaluate through Env so a shared sub-predicate is
// instantiated once per type.

type andPred struct {
	p, q Predicate
}

func (c andPred) Name() string { return "(" + c.p.Name() + " and " + c.q.Name() + ")" }
func (c andPred) Key() string  { return "and(" + c.p.Key() + "," + c.q.Key() + ")" }

func (c andPred) Eval(env *Env, t typesystem.Type) (bool, error) {
	a, err := env.Eval(c.p, t)
	if err != nil {
		return false, err
	}
	b, err := env.Eval(c.q, t)
	if err != nil {
		return false, err
	}
	return a && b, nil
}

// And holds when both operands hold.
func And(p, q Predicate) Predicate { return andPred{p: p, q: q} }

type orPred struct {
	p, q Predicate
}

func (c orPred) Name() string { return "(" + c.p.Name() + " or " + c.q.Name() + ")" }
func (c orPred) Key() string  { return "or(" + c.p.Key() + "," + c.q.Key() + ")" }

func (c orPred) Eval(env *Env, t typesystem.Type) (bool, error) {
	a, err := env.Eval(c.p, t)
	if err != nil {
		return false, err
	}
	b, err := env.Eval(c.q, t)
	if err != nil {
		return false, err
	}
	return a || b, nil
}

// Or holds when either operand holds.
func Or(p, q Predicate) Predicate { return orPred{p: p, q: q} }

type notPred struct {
	p Predicate
}

func (c notPred) Name() string { return "not " + c.p.Name() }
func (c notPred) Key() string  { return "not(" + c.p.Key() + ")" }

func (c notPred) Eval(env *Env, t typesystem.Type) (bool, error) {
	a, err := env.Eval(c.p, t)
	if err != nil {
		return false, err
	}
	return !a, nil
}

// Not inverts a predicate.
func Not(p Predicate) Predicate { return notPred{p: p} }

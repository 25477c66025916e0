// Package predicate wraps detection probes and primitive classifications
// into named, memoized boolean predicates over type descriptors.
//
// Every predicate is total over the descriptors it is asked about: a
// valid-but-unexpected type yields false, never an error. The single
// exception is a probe hard error, which is a genuine declaration failure
// and propagates (see the probe package boundary rule).
package predicate

import (
	"fmt"

	"github.com/funvibe/funsel/internal/config"
	"github.com/funvibe/funsel/internal/probe"
	"github.com/funvibe/funsel/internal/typesystem"
)

// Predicate is a pure compile-time boolean function over a descriptor.
// Identical (Key, type) pairs always yield the identical result; there is
// no hidden state, so results are safe to memoize and to persist.
type Predicate interface {
	Name() string
	// Key is the structural identity of the predicate, used for memoization.
	Key() string
	Eval(env *Env, t typesystem.Type) (bool, error)
}

// Env carries the universe and the memo table for one resolution context.
// It is not safe for concurrent use; independent resolutions use
// independent Envs and are guaranteed identical results by referential
// transparency.
type Env struct {
	Universe *typesystem.Universe

	memo map[string]bool
}

// NewEnv creates an evaluation environment over a universe.
func NewEnv(u *typesystem.Universe) *Env {
	return &Env{Universe: u, memo: make(map[string]bool)}
}

// Eval evaluates p for t, memoizing by (predicate key, type key).
// Errors are never memoized.
func (e *Env) Eval(p Predicate, t typesystem.Type) (bool, error) {
	key := p.Key() + "|" + t.Key()
	if v, ok := e.memo[key]; ok {
		return v, nil
	}
	v, err := p.Eval(e, t)
	if err != nil {
		return false, err
	}
	e.memo[key] = v
	return v, nil
}

// MemoSize returns the number of memoized (predicate, type) results.
func (e *Env) MemoSize() int { return len(e.memo) }

// --- Primitive predicates ---

type classPred struct {
	name  string
	class typesystem.Class
}

func (p classPred) Name() string { return p.name }
func (p classPred) Key() string  { return p.name }

func (p classPred) Eval(env *Env, t typesystem.Type) (bool, error) {
	s, ok := env.Universe.Shape(t)
	return ok && s.Class == p.class, nil
}

// IsIntegral holds for descriptors of integral class (int, bool).
var IsIntegral Predicate = classPred{name: "is_integral", class: typesystem.ClassIntegral}

// IsFloating holds for descriptors of floating class (double).
var IsFloating Predicate = classPred{name: "is_floating", class: typesystem.ClassFloating}

type arithmeticPred struct{}

func (arithmeticPred) Name() string { return "is_arithmetic" }
func (arithmeticPred) Key() string  { return "is_arithmetic" }

func (arithmeticPred) Eval(env *Env, t typesystem.Type) (bool, error) {
	s, ok := env.Universe.Shape(t)
	return ok && s.Arithmetic(), nil
}

// IsArithmetic holds for integral and floating descriptors.
var IsArithmetic Predicate = arithmeticPred{}

type pointerPred struct{}

func (pointerPred) Name() string { return "is_pointer" }
func (pointerPred) Key() string  { return "is_pointer" }

func (pointerPred) Eval(env *Env, t typesystem.Type) (bool, error) {
	_, ok := t.(typesystem.TPtr)
	return ok, nil
}

// IsPointer holds for pointer descriptors, structurally.
var IsPointer Predicate = pointerPred{}

type samePred struct {
	target typesystem.Type
}

func (p samePred) Name() string { return "is_same_as " + p.target.String() }
func (p samePred) Key() string  { return "same(" + p.target.Key() + ")" }

func (p samePred) Eval(env *Env, t typesystem.Type) (bool, error) {
	return typesystem.Equal(t, p.target), nil
}

// IsSameAs holds exactly for the given descriptor.
func IsSameAs(target typesystem.Type) Predicate { return samePred{target: target} }

// IsBool holds exactly for the bool descriptor.
var IsBool Predicate = samePred{target: typesystem.TCon{Name: config.BoolTypeName}}

type hasPred struct {
	p probe.Probe
}

func (p hasPred) Name() string { return "has " + p.p.String() }
func (p hasPred) Key() string  { return "has(" + p.p.Key() + ")" }

func (p hasPred) Eval(env *Env, t typesystem.Type) (bool, error) {
	return probe.Eval(env.Universe, p.p, t)
}

// Has wraps a detection probe as a predicate. A soft probe failure is
// false; a hard probe error propagates.
func Has(p probe.Probe) Predicate { return hasPred{p: p} }

type sizePred struct {
	max int
}

func (p sizePred) Name() string { return fmt.Sprintf("size_at_most %d", p.max) }
func (p sizePred) Key() string  { return fmt.Sprintf("size<=%d", p.max) }

func (p sizePred) Eval(env *Env, t typesystem.Type) (bool, error) {
	s, ok := env.Universe.Shape(t)
	return ok && s.Size > 0 && s.Size <= p.max, nil
}

// SizeAtMost holds for descriptors whose reported size is in (0, max].
// The bound is typically a compile-time arithmetic result (see consteval).
func SizeAtMost(max int) Predicate { return sizePred{max: max} }

type alwaysPred struct{}

func (alwaysPred) Name() string { return "always" }
func (alwaysPred) Key() string  { return "always" }

func (alwaysPred) Eval(env *Env, t typesystem.Type) (bool, error) { return true, nil }

// Always is the universally-true fallback guard.
var Always Predicate = alwaysPred{}

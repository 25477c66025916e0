// Package consteval is the recursive evaluator: bounded numeric recursion
// and persistent type-level lists. It is used standalone and wherever a
// dispatch candidate needs a compile-time arithmetic or list result.
//
// Both recursion families are referentially transparent: identical inputs
// always produce identical results, so callers may cache results across
// independent resolution contexts without risk of divergence.
package consteval

import (
	"math"

	"github.com/funvibe/funsel/internal/config"
)

// Evaluator unfolds recursive definitions down to a registered base case,
// counting instantiation depth against a configurable bound.
type Evaluator struct {
	maxDepth int
}

// New creates an evaluator. maxDepth <= 0 selects the default bound.
func New(maxDepth int) *Evaluator {
	if maxDepth <= 0 {
		maxDepth = config.DefaultMaxDepth
	}
	return &Evaluator{maxDepth: maxDepth}
}

// MaxDepth returns the configured recursion bound.
func (e *Evaluator) MaxDepth() int { return e.maxDepth }

// Unfold evaluates f(n) given f(0) = base and f(n) = step(f(n-1), n).
// The index must be non-negative: the base case is registered at exactly 0,
// and an index that cannot reach it is a domain error, not divergence.
// A step error (typically a RangeError) aborts the unfold.
func (e *Evaluator) Unfold(fn string, n int64, base int64, step func(prev, n int64) (int64, error)) (int64, error) {
	if n < 0 {
		return 0, &DomainError{Fn: fn, Detail: "recursion index must be non-negative"}
	}
	if n > int64(e.maxDepth) {
		return 0, &OverflowError{Fn: fn, Depth: e.maxDepth}
	}
	acc := base
	for i := int64(1); i <= n; i++ {
		next, err := step(acc, i)
		if err != nil {
			return 0, err
		}
		acc = next
	}
	return acc, nil
}

// mul64 multiplies with overflow detection.
func mul64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	r := a * b
	if r/b != a {
		return 0, false
	}
	return r, true
}

// add64 adds with overflow detection.
func add64(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

// Factorial evaluates n! with factorial(0) = 1.
func (e *Evaluator) Factorial(n int64) (int64, error) {
	return e.Unfold(config.FactorialFuncName, n, 1, func(prev, i int64) (int64, error) {
		r, ok := mul64(prev, i)
		if !ok {
			return 0, &RangeError{Fn: config.FactorialFuncName, N: i}
		}
		return r, nil
	})
}

// Fibonacci evaluates the n-th Fibonacci number, fibonacci(0) = 0,
// fibonacci(1) = 1.
func (e *Evaluator) Fibonacci(n int64) (int64, error) {
	prev := int64(1) // seeds step(fib(0), 1) = fib(1) = 1
	return e.Unfold(config.FibonacciFuncName, n, 0, func(cur, i int64) (int64, error) {
		next, ok := add64(prev, cur)
		if !ok {
			return 0, &RangeError{Fn: config.FibonacciFuncName, N: i}
		}
		prev = cur
		return next, nil
	})
}

// Power evaluates base**exp for a non-negative exponent.
func (e *Evaluator) Power(base, exp int64) (int64, error) {
	return e.Unfold(config.PowerFuncName, exp, 1, func(prev, i int64) (int64, error) {
		r, ok := mul64(prev, base)
		if !ok {
			return 0, &RangeError{Fn: config.PowerFuncName, N: i}
		}
		return r, nil
	})
}

// GCD evaluates the greatest common divisor of two non-negative integers
// by the Euclidean recursion gcd(a, 0) = a, gcd(a, b) = gcd(b, a mod b).
func (e *Evaluator) GCD(a, b int64) (int64, error) {
	if a < 0 || b < 0 {
		return 0, &DomainError{Fn: config.GCDFuncName, Detail: "arguments must be non-negative"}
	}
	for depth := 0; b != 0; depth++ {
		if depth >= e.maxDepth {
			return 0, &OverflowError{Fn: config.GCDFuncName, Depth: e.maxDepth}
		}
		a, b = b, a%b
	}
	return a, nil
}

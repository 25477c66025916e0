package builtins

import (
	"fmt"

	"github.com/funvibe/funsel/internal/config"
	"github.com/funvibe/funsel/internal/consteval"
)

// EvalNumeric dispatches one of the built-in compile-time arithmetic
// functions by name.
func EvalNumeric(e *consteval.Evaluator, name string, args []int64) (int64, error) {
	argc := map[string]int{
		config.FactorialFuncName: 1,
		config.FibonacciFuncName: 1,
		config.PowerFuncName:     2,
		config.GCDFuncName:       2,
	}
	want, ok := argc[name]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", name)
	}
	if len(args) != want {
		return 0, fmt.Errorf("%s takes %d argument(s), got %d", name, want, len(args))
	}

	switch name {
	case config.FactorialFuncName:
		return e.Factorial(args[0])
	case config.FibonacciFuncName:
		return e.Fibonacci(args[0])
	case config.PowerFuncName:
		return e.Power(args[0], args[1])
	default:
		return e.GCD(args[0], args[1])
	}
}

// NumericFuncNames lists the built-in arithmetic functions.
func NumericFuncNames() []string {
	return []string{
		config.FactorialFuncName,
		config.FibonacciFuncName,
		config.PowerFuncName,
		config.GCDFuncName,
	}
}

// ListFuncNames lists the built-in type-list functions.
func ListFuncNames() []string {
	return []string{
		config.FrontFuncName,
		config.TailFuncName,
		config.AppendFuncName,
		config.SizeFuncName,
	}
}

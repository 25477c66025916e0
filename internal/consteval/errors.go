package consteval

import "fmt"

// OverflowError reports recursion exceeding the configured depth bound.
// It is fatal and diagnosable; the evaluator never falls back to another
// result silently.
type OverflowError struct {
	Fn    string
	Depth int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s: recursion exceeded depth bound %d", e.Fn, e.Depth)
}

// DomainError reports an argument outside the function's domain
// (negative recursion index, front/tail of an empty list).
type DomainError struct {
	Fn     string
	Detail string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Fn, e.Detail)
}

// RangeError reports an intermediate or final value exceeding the 64-bit
// integer range. Like OverflowError it is fatal and diagnosable; a wrapped
// value is never returned.
type RangeError struct {
	Fn string
	N  int64 // recursion index at which the value left the range
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value exceeds 64-bit range at step %d", e.Fn, e.N)
}

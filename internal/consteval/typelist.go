package consteval

import (
	"strings"

	"github.com/funvibe/funsel/internal/config"
	"github.com/funvibe/funsel/internal/typesystem"
)

// List is a persistent, heterogeneous sequence of type descriptors:
// (head, tail) nodes sharing structure. The zero value (nil) is the empty
// list. Operations return new lists and never mutate the receiver.
type List struct {
	head typesystem.Type
	tail *List
}

// Cons prepends a descriptor, returning a new list.
func Cons(head typesystem.Type, tail *List) *List {
	return &List{head: head, tail: tail}
}

// FromTypes builds a list preserving the order of its arguments.
func FromTypes(types ...typesystem.Type) *List {
	var l *List
	for i := len(types) - 1; i >= 0; i-- {
		l = Cons(types[i], l)
	}
	return l
}

// IsEmpty reports whether the list has no elements.
func (l *List) IsEmpty() bool { return l == nil }

// Front returns the first element. Applying it to an empty list is a
// domain error, not a defined value.
func (l *List) Front() (typesystem.Type, error) {
	if l == nil {
		return nil, &DomainError{Fn: config.FrontFuncName, Detail: "empty list has no front"}
	}
	return l.head, nil
}

// Tail returns the list without its first element.
func (l *List) Tail() (*List, error) {
	if l == nil {
		return nil, &DomainError{Fn: config.TailFuncName, Detail: "empty list has no tail"}
	}
	return l.tail, nil
}

// Size counts elements, recursing once per element against the evaluator's
// depth bound.
func (e *Evaluator) Size(l *List) (int, error) {
	n := 0
	for node := l; node != nil; node = node.tail {
		if n >= e.maxDepth {
			return 0, &OverflowError{Fn: config.SizeFuncName, Depth: e.maxDepth}
		}
		n++
	}
	return n, nil
}

// Append returns a new list with one additional trailing element. The
// original list is unmodified; the spine up to the new node is rebuilt.
func (e *Evaluator) Append(l *List, t typesystem.Type) (*List, error) {
	n, err := e.Size(l)
	if err != nil {
		return nil, &OverflowError{Fn: config.AppendFuncName, Depth: e.maxDepth}
	}
	if n >= e.maxDepth {
		return nil, &OverflowError{Fn: config.AppendFuncName, Depth: e.maxDepth}
	}

	elems := make([]typesystem.Type, 0, n+1)
	for node := l; node != nil; node = node.tail {
		elems = append(elems, node.head)
	}
	elems = append(elems, t)
	return FromTypes(elems...), nil
}

// String renders the list as [a, b, c].
func (l *List) String() string {
	var parts []string
	for node := l; node != nil; node = node.tail {
		parts = append(parts, node.head.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

package dispatch

import (
	"fmt"
	"strings"

	"github.com/funvibe/funsel/internal/typesystem"
)

// NoMatchError indicates zero viable candidates for (operation, type):
// no specialization applied and no guard held.
type NoMatchError struct {
	Op   string
	Type typesystem.Type
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no candidate for operation %q over type %s", e.Op, e.Type)
}

// AmbiguousMatchError indicates two or more equally-specific candidates:
// either two structural specializations matching the same concrete type
// (an authoring error), or two true guards at the same declared rank.
type AmbiguousMatchError struct {
	Op         string
	Type       typesystem.Type
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous candidates for operation %q over type %s: %s",
		e.Op, e.Type, strings.Join(e.Candidates, ", "))
}

// UnknownOperationError indicates the operation name is not registered.
type UnknownOperationError struct {
	Op string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Op)
}

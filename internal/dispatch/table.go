// Package dispatch implements the specialization table and the resolver
// that selects exactly one implementation per (operation, type).
//
// The table is an explicit, constructed value: every dispatch set is built
// by code, so resolution order is part of the visible program structure and
// never depends on declaration order across files.
package dispatch

import (
	"fmt"
	"sort"

	"github.com/funvibe/funsel/internal/predicate"
	"github.com/funvibe/funsel/internal/typesystem"
)

// Result is the value produced by a selected implementation: the computed
// value plus its text representation for display.
type Result struct {
	Value any
	Text  string
}

// Impl is a candidate implementation body. Bindings carries pattern
// variable captures when the candidate was selected structurally, and is
// empty otherwise.
type Impl func(env *predicate.Env, t typesystem.Type, bindings typesystem.Subst) (Result, error)

// Kind classifies how a candidate was registered.
type Kind int

const (
	KindExact      Kind = 0 // full specialization, exact descriptor
	KindStructural Kind = 1 // partial specialization, structural pattern
	KindGuarded    Kind = 2 // predicate-guarded generic candidate
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindStructural:
		return "structural"
	case KindGuarded:
		return "guarded"
	}
	return "unknown"
}

// Rank is the explicit declared priority of a guarded candidate. It
// replaces compiler overload-specificity tie-breaking: two true guards at
// the same rank are ambiguous, full stop.
type Rank int

const (
	RankFallback Rank = 0
	RankLow      Rank = 1
	RankNormal   Rank = 2
	RankHigh     Rank = 3
)

func (r Rank) String() string {
	switch r {
	case RankFallback:
		return "fallback"
	case RankLow:
		return "low"
	case RankNormal:
		return "normal"
	case RankHigh:
		return "high"
	}
	return "unknown"
}

// ParseRank converts a rank name from configuration.
func ParseRank(s string) (Rank, error) {
	switch s {
	case "fallback":
		return RankFallback, nil
	case "low":
		return RankLow, nil
	case "normal":
		return RankNormal, nil
	case "high":
		return RankHigh, nil
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

type exactEntry struct {
	label string
	typ   typesystem.Type
	impl  Impl
}

type structuralEntry struct {
	label   string
	pattern typesystem.Type
	impl    Impl
}

type guardedEntry struct {
	label string
	guard predicate.Predicate
	rank  Rank
	impl  Impl
	seq   int // registration order, for deterministic listing only
}

type opSet struct {
	exact      map[string]exactEntry // descriptor key -> entry
	structural []structuralEntry
	guarded    []guardedEntry
}

// Table is the registry of dispatch sets, one per operation name.
type Table struct {
	ops map[string]*opSet
}

// NewTable creates an empty specialization table.
func NewTable() *Table {
	return &Table{ops: make(map[string]*opSet)}
}

func (t *Table) opSetFor(op string) *opSet {
	set, ok := t.ops[op]
	if !ok {
		set = &opSet{exact: make(map[string]exactEntry)}
		t.ops[op] = set
	}
	return set
}

// Exact registers a full specialization for one concrete descriptor.
// Highest precedence. Re-registering the same descriptor replaces the entry.
func (t *Table) Exact(op string, typ typesystem.Type, label string, impl Impl) {
	set := t.opSetFor(op)
	set.exact[typ.Key()] = exactEntry{label: label, typ: typ, impl: impl}
}

// Structural registers a partial specialization matching a structural
// pattern (e.g. TPtr{'a}, Vector<'a>). Two structural patterns matching
// the same concrete type is an authoring error surfaced at resolution.
func (t *Table) Structural(op string, pattern typesystem.Type, label string, impl Impl) {
	set := t.opSetFor(op)
	set.structural = append(set.structural, structuralEntry{label: label, pattern: pattern, impl: impl})
}

// Guarded registers a predicate-guarded generic candidate at an explicit
// rank. A dispatch set intended to be total must include at least one
// candidate guarded by predicate.Always (conventionally at RankFallback).
func (t *Table) Guarded(op string, guard predicate.Predicate, rank Rank, label string, impl Impl) {
	set := t.opSetFor(op)
	set.guarded = append(set.guarded, guardedEntry{
		label: label, guard: guard, rank: rank, impl: impl, seq: len(set.guarded),
	})
}

// SetRank overrides the declared rank of a guarded candidate, used for
// funsel.yaml rank overrides keyed by candidate label.
func (t *Table) SetRank(op, label string, rank Rank) error {
	set, ok := t.ops[op]
	if !ok {
		return &UnknownOperationError{Op: op}
	}
	for i := range set.guarded {
		if set.guarded[i].label == label {
			set.guarded[i].rank = rank
			return nil
		}
	}
	return fmt.Errorf("operation %q has no guarded candidate %q", op, label)
}

// Operations returns all registered operation names, sorted.
func (t *Table) Operations() []string {
	ops := make([]string, 0, len(t.ops))
	for op := range t.ops {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// Candidates returns the labels of all candidates for an operation, exact
// first, then structural, then guarded by descending rank. Diagnostic use.
func (t *Table) Candidates(op string) []string {
	set, ok := t.ops[op]
	if !ok {
		return nil
	}
	var labels []string
	exactKeys := make([]string, 0, len(set.exact))
	for key := range set.exact {
		exactKeys = append(exactKeys, key)
	}
	sort.Strings(exactKeys)
	for _, key := range exactKeys {
		labels = append(labels, set.exact[key].label)
	}
	for _, e := range set.structural {
		labels = append(labels, e.label)
	}
	guarded := append([]guardedEntry(nil), set.guarded...)
	sort.SliceStable(guarded, func(i, j int) bool { return guarded[i].rank > guarded[j].rank })
	for _, e := range guarded {
		labels = append(labels, e.label)
	}
	return labels
}

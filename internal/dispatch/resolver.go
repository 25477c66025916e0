package dispatch

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/funvibe/funsel/internal/predicate"
	"github.com/funvibe/funsel/internal/typesystem"
)

// Selection records one resolution outcome: the winning candidate, how it
// won, the structural bindings, and the produced result. TraceID is a
// per-resolution diagnostic id; it never influences selection.
type Selection struct {
	Op       string
	Type     typesystem.Type
	Kind     Kind
	Label    string
	Rank     Rank
	Bindings typesystem.Subst
	Result   Result
	TraceID  string
}

// Store persists (operation, type) -> selected label across resolution
// contexts. Resolution is referentially transparent, so a stored label is
// valid forever for an unchanged table; a mismatch means the table changed
// under a stale cache and is reported as an error.
type Store interface {
	GetSelection(op, typeKey string) (label string, ok bool, err error)
	PutSelection(op, typeKey, label string) error
}

// Resolver selects exactly one implementation per (operation, type).
type Resolver struct {
	table *Table
	env   *predicate.Env
	store Store
}

// NewResolver creates a resolver over a table and an evaluation environment.
func NewResolver(table *Table, env *predicate.Env) *Resolver {
	return &Resolver{table: table, env: env}
}

// WithStore attaches a persistent selection store.
func (r *Resolver) WithStore(s Store) *Resolver {
	r.store = s
	return r
}

// Env returns the resolver's evaluation environment.
func (r *Resolver) Env() *predicate.Env { return r.env }

// Resolve picks the single implementation for (op, t) and runs it.
//
// Precedence: (1) exact specialization; (2) a uniquely-matching structural
// specialization, two matches being ambiguous; (3) guarded candidates by
// descending declared rank, two true guards at one rank being ambiguous;
// (4) nothing viable is a NoMatchError.
func (r *Resolver) Resolve(op string, t typesystem.Type) (*Selection, error) {
	set, ok := r.table.ops[op]
	if !ok {
		return nil, &UnknownOperationError{Op: op}
	}

	sel, err := r.selectCandidate(op, set, t)
	if err != nil {
		return nil, err
	}

	if err := r.checkStore(op, t, sel); err != nil {
		return nil, err
	}

	impl := sel.impl
	res, err := impl(r.env, t, sel.bindings)
	if err != nil {
		return nil, fmt.Errorf("operation %q over %s: %w", op, t, err)
	}

	return &Selection{
		Op:       op,
		Type:     t,
		Kind:     sel.kind,
		Label:    sel.label,
		Rank:     sel.rank,
		Bindings: sel.bindings,
		Result:   res,
		TraceID:  uuid.NewString(),
	}, nil
}

type chosen struct {
	kind     Kind
	label    string
	rank     Rank
	bindings typesystem.Subst
	impl     Impl
}

func (r *Resolver) selectCandidate(op string, set *opSet, t typesystem.Type) (*chosen, error) {
	// 1. Full specialization: exact descriptor match.
	if e, ok := set.exact[t.Key()]; ok {
		return &chosen{kind: KindExact, label: e.label, bindings: typesystem.Subst{}, impl: e.impl}, nil
	}

	// 2. Partial specialization: structural pattern match, required unique.
	var matches []structuralEntry
	var bindings typesystem.Subst
	for _, e := range set.structural {
		subst := make(typesystem.Subst)
		if typesystem.Match(e.pattern, t, subst) {
			matches = append(matches, e)
			bindings = subst
		}
	}
	if len(matches) > 1 {
		labels := make([]string, len(matches))
		for i, m := range matches {
			labels[i] = m.label
		}
		return nil, &AmbiguousMatchError{Op: op, Type: t, Candidates: labels}
	}
	if len(matches) == 1 {
		return &chosen{kind: KindStructural, label: matches[0].label, bindings: bindings, impl: matches[0].impl}, nil
	}

	// 3. Guarded candidates, by descending declared rank. All guards of one
	// rank are evaluated before deciding: a single true guard wins, two are
	// ambiguous regardless of registration order.
	ranks := make([]Rank, 0, 4)
	byRank := make(map[Rank][]guardedEntry)
	for _, e := range set.guarded {
		if _, seen := byRank[e.rank]; !seen {
			ranks = append(ranks, e.rank)
		}
		byRank[e.rank] = append(byRank[e.rank], e)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	for _, rank := range ranks {
		var hits []guardedEntry
		for _, e := range byRank[rank] {
			held, err := r.env.Eval(e.guard, t)
			if err != nil {
				return nil, fmt.Errorf("guard %s for %q over %s: %w", e.guard.Name(), op, t, err)
			}
			if held {
				hits = append(hits, e)
			}
		}
		if len(hits) > 1 {
			labels := make([]string, len(hits))
			for i, h := range hits {
				labels[i] = h.label
			}
			return nil, &AmbiguousMatchError{Op: op, Type: t, Candidates: labels}
		}
		if len(hits) == 1 {
			e := hits[0]
			return &chosen{kind: KindGuarded, label: e.label, rank: e.rank, bindings: typesystem.Subst{}, impl: e.impl}, nil
		}
	}

	// 4. Nothing viable.
	return nil, &NoMatchError{Op: op, Type: t}
}

// checkStore records the selection, or verifies it against a previous run.
func (r *Resolver) checkStore(op string, t typesystem.Type, sel *chosen) error {
	if r.store == nil {
		return nil
	}
	prev, ok, err := r.store.GetSelection(op, t.Key())
	if err != nil {
		return fmt.Errorf("selection store: %w", err)
	}
	if ok {
		if prev != sel.label {
			return fmt.Errorf("selection store: %q over %s previously resolved to %q, now %q (stale cache for a changed table?)",
				op, t, prev, sel.label)
		}
		return nil
	}
	if err := r.store.PutSelection(op, t.Key(), sel.label); err != nil {
		return fmt.Errorf("selection store: %w", err)
	}
	return nil
}

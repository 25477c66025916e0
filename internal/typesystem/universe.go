package typesystem

import (
	"fmt"
	"sort"
)

// Universe is the explicit registry of descriptors and their shapes.
// It is a constructed value: the set of known types is part of the visible
// program structure, never ambient declaration-order state, so resolution
// results cannot depend on which descriptor was registered first.
type Universe struct {
	shapes map[string]Shape
	types  map[string]Type // display name -> descriptor
	order  []string        // registration order of display names
}

// NewUniverse creates an empty universe.
func NewUniverse() *Universe {
	return &Universe{
		shapes: make(map[string]Shape),
		types:  make(map[string]Type),
	}
}

// Register adds a descriptor with its shape. Registering the same
// descriptor twice replaces the shape. Descriptors with pattern variables
// are rejected: the universe holds concrete types only.
func (u *Universe) Register(t Type, s Shape) error {
	if HasVars(t) {
		return fmt.Errorf("cannot register pattern %s in universe", t)
	}
	if _, seen := u.shapes[t.Key()]; !seen {
		u.order = append(u.order, t.String())
	}
	u.shapes[t.Key()] = s
	u.types[t.String()] = t
	return nil
}

// MustRegister is Register for static universe construction.
func (u *Universe) MustRegister(t Type, s Shape) {
	if err := u.Register(t, s); err != nil {
		panic(err)
	}
}

// Shape returns the registered shape of a descriptor.
func (u *Universe) Shape(t Type) (Shape, bool) {
	s, ok := u.shapes[t.Key()]
	return s, ok
}

// Lookup finds a descriptor by its display name (e.g. "int*", "Vector<int>").
func (u *Universe) Lookup(name string) (Type, bool) {
	t, ok := u.types[name]
	return t, ok
}

// Types returns all registered descriptors in registration order.
func (u *Universe) Types() []Type {
	out := make([]Type, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, u.types[name])
	}
	return out
}

// Names returns all registered display names, sorted for deterministic output.
func (u *Universe) Names() []string {
	names := make([]string, 0, len(u.types))
	for name := range u.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolves reports whether t is fully known to this universe: either
// registered directly, or composed of resolvable parts. A method signature
// or alias target that does not resolve is a hard declaration error, not a
// soft probe failure.
func (u *Universe) Resolves(t Type) bool {
	if t == nil {
		return false
	}
	if _, ok := u.shapes[t.Key()]; ok {
		return true
	}
	switch t := t.(type) {
	case TPtr:
		return u.Resolves(t.Elem)
	case TArray:
		return u.Resolves(t.Elem)
	case TApp:
		for _, a := range t.Args {
			if !u.Resolves(a) {
				return false
			}
		}
		return true
	}
	return false
}

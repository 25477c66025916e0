package typesystem

// Subst is a mapping from pattern variable names to concrete types.
type Subst map[string]Type

// Apply substitutes pattern variables in t. Unbound variables stay as-is.
func (s Subst) Apply(t Type) Type {
	switch t := t.(type) {
	case TVar:
		if bound, ok := s[t.Name]; ok {
			return bound
		}
		return t
	case TPtr:
		return TPtr{Elem: s.Apply(t.Elem)}
	case TArray:
		return TArray{Elem: s.Apply(t.Elem), Len: t.Len}
	case TApp:
		args := make([]Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = s.Apply(a)
		}
		return TApp{Ctor: t.Ctor, Args: args}
	default:
		return t
	}
}

// Match checks if pattern matches target, populating subst with variable
// bindings. Matching is one-way: variables occur only in the pattern, the
// target is always concrete.
//
// A variable bound twice must bind consistently: Pair<a, a> matches
// Pair<int, int> but not Pair<int, string>.
func Match(pattern, target Type, subst Subst) bool {
	switch p := pattern.(type) {
	case TVar:
		if existing, ok := subst[p.Name]; ok {
			return Equal(existing, target)
		}
		subst[p.Name] = target
		return true

	case TCon:
		tCon, ok := target.(TCon)
		return ok && p.Name == tCon.Name

	case TPtr:
		tPtr, ok := target.(TPtr)
		return ok && Match(p.Elem, tPtr.Elem, subst)

	case TArray:
		tArr, ok := target.(TArray)
		return ok && p.Len == tArr.Len && Match(p.Elem, tArr.Elem, subst)

	case TApp:
		tApp, ok := target.(TApp)
		if !ok || p.Ctor != tApp.Ctor || len(p.Args) != len(tApp.Args) {
			return false
		}
		for i := range p.Args {
			if !Match(p.Args[i], tApp.Args[i], subst) {
				return false
			}
		}
		return true
	}

	return Equal(pattern, target)
}

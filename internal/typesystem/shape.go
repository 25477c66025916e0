package typesystem

// Class is the primitive classification of a descriptor.
type Class int

const (
	ClassOther    Class = 0
	ClassIntegral Class = 1 // int, bool
	ClassFloating Class = 2 // double
)

// Method describes a member method declaration on a descriptor.
type Method struct {
	Name   string
	Params []Type
	Result Type
}

// Shape holds the structural facts of one descriptor: member methods,
// nested type aliases, applicable operators, and the primitive class.
// Probes answer questions against the Shape; the descriptor itself stays
// opaque.
type Shape struct {
	Class Class

	// Size is the byte size reported by classification (0 if not meaningful).
	Size int

	// Methods are the declared member methods, in declaration order.
	Methods []Method

	// Aliases maps nested type alias names to their targets
	// (e.g. value_type -> int on Vector<int>).
	Aliases map[string]Type

	// Operators is the set of operator capabilities (e.g. "print" for
	// stream insertion). Absent means not applicable.
	Operators map[string]bool
}

// Arithmetic reports whether the shape is of an arithmetic class.
func (s Shape) Arithmetic() bool {
	return s.Class == ClassIntegral || s.Class == ClassFloating
}

// Method returns the declared method with the given name.
func (s Shape) Method(name string) (Method, bool) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return Method{}, false
}

// HasOperator reports whether an operator capability is declared.
func (s Shape) HasOperator(op string) bool {
	return s.Operators[op]
}

// Alias returns the target of a nested type alias.
func (s Shape) Alias(name string) (Type, bool) {
	t, ok := s.Aliases[name]
	return t, ok
}

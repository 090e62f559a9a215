package java

// HasUnknownTypes reports whether any usage fact in the unit is marked
// unresolved, including type arguments of parameterized references. Hosts
// run this gate before rewriting; a unit with unknown types must be left
// alone, because missing attribution makes "unused" indistinguishable from
// "unattributed".
func HasUnknownTypes(unit *SourceUnit) bool {
	var unresolved func(t TypeUsage) bool
	unresolved = func(t TypeUsage) bool {
		if t.Unresolved {
			return true
		}
		for _, arg := range t.TypeArguments {
			if unresolved(arg) {
				return true
			}
		}
		return false
	}

	for _, t := range unit.Types {
		if unresolved(t) {
			return true
		}
	}
	for _, m := range unit.Methods {
		if m.Unresolved {
			return true
		}
	}
	for _, f := range unit.Fields {
		if f.Unresolved {
			return true
		}
	}
	return false
}

package java

import "strings"

// TypeUsage records that a type was referenced somewhere in the unit body.
// Usage facts come from an upstream attribution engine; this package never
// resolves references itself.
type TypeUsage struct {
	// FullyQualifiedName of the referenced type. Nested types may use
	// either source form ("a.b.Outer.Inner") or binary form
	// ("a.b.Outer$Inner"); comparisons tolerate both.
	FullyQualifiedName string

	// PackageName of the referenced type.
	PackageName string

	// Owner is the fully qualified name of the owning type for nested
	// types, or empty for top-level types.
	Owner string

	// ClassName is the simple class name, including the owning-type
	// prefix for nested types ("Outer.Inner").
	ClassName string

	// TypeArguments of a parameterized reference. Each argument is a
	// usage fact in its own right.
	TypeArguments []TypeUsage

	// Unresolved marks a reference the attribution engine could not
	// resolve. Any unresolved fact disables the whole rewrite.
	Unresolved bool
}

// SimpleName returns the innermost class name with any owning-type prefix
// stripped.
func (t TypeUsage) SimpleName() string {
	if i := strings.LastIndex(t.ClassName, "."); i >= 0 {
		return t.ClassName[i+1:]
	}
	return t.ClassName
}

// MethodUsage records an invocation of a method, attributed to the type
// declaring it.
type MethodUsage struct {
	DeclaringType string
	Name          string
	Static        bool
	Unresolved    bool
}

// FieldUsage records a reference to a field or field-like variable,
// attributed to the type declaring it. DeclaringType is empty for locals.
type FieldUsage struct {
	DeclaringType string
	Name          string
	Static        bool
	Unresolved    bool
}

// SourceUnit is one complete, already-attributed compilation unit. The
// rewrite consumes it read-only and returns either the same unit (no-op)
// or a replacement with a new import sequence.
type SourceUnit struct {
	// PackageName declared by the unit, empty for the default package.
	PackageName string

	// Imports in source order.
	Imports []Import

	// Usage facts aggregated from the whole unit body.
	Types   []TypeUsage
	Methods []MethodUsage
	Fields  []FieldUsage

	// HasTypeDecls reports whether the unit declares any types. It decides
	// whether a boundary re-layout is wanted when every import is removed.
	HasTypeDecls bool
}

// WithImports returns a copy of the unit with a replacement import
// sequence. The receiver is not modified.
func (u *SourceUnit) WithImports(imports []Import) *SourceUnit {
	cp := *u
	cp.Imports = imports
	return &cp
}

// toFullyQualifiedName normalizes binary nested-type names ("a.B$C") to
// source form ("a.B.C").
func toFullyQualifiedName(fqn string) string {
	return strings.ReplaceAll(fqn, "$", ".")
}

// fullyQualifiedNamesEqual compares two qualified names treating "$" and
// "." as the same separator, so source and binary forms of a nested type
// compare equal.
func fullyQualifiedNamesEqual(a, b string) bool {
	if a == b {
		return true
	}
	return toFullyQualifiedName(a) == toFullyQualifiedName(b)
}

// Package java decides which import declarations of a parsed, type-resolved
// Java source unit are unused and rewrites the import section accordingly,
// folding and unfolding wildcard imports against the configured layout style.
package java

import "strings"

// Wildcard is the simple name that marks a star import.
const Wildcard = "*"

// Import is one import declaration. It is an immutable value: rewriting
// produces replacement values, never edits in place.
type Import struct {
	// Static marks a "import static ..." declaration.
	Static bool

	// Qualifier is the dotted path before the final name: the package for
	// a type import ("java.util" in "java.util.List"), or the declaring
	// type for a static import ("java.util.Collections" in
	// "java.util.Collections.emptyList").
	Qualifier string

	// Name is the final simple name, or Wildcard for a star import.
	Name string

	// Prefix is the formatting (whitespace and comments) that precedes
	// the declaration in source. It travels with the declaration as an
	// explicit field rather than being inferred from position.
	Prefix string
}

// Qualid returns the full dotted form of the import, e.g. "java.util.List"
// or "java.util.Collections.*".
func (imp Import) Qualid() string {
	return imp.Qualifier + "." + imp.Name
}

// String returns the canonical source text of the declaration without its
// prefix, e.g. `import static java.util.Collections.emptyList;`. Two
// declarations with equal String() are duplicates.
func (imp Import) String() string {
	var sb strings.Builder
	sb.WriteString("import ")
	if imp.Static {
		sb.WriteString("static ")
	}
	sb.WriteString(imp.Qualid())
	sb.WriteString(";")
	return sb.String()
}

// TypeName returns the name of the type the import is about: the declaring
// type for a static import, the imported type for an explicit type import,
// and the qualifier for a wildcard.
func (imp Import) TypeName() string {
	if imp.Static || imp.Name == Wildcard {
		return imp.Qualifier
	}
	return imp.Qualid()
}

// PackageName returns the textual package portion of the import. For an
// import of a nested type this is the owning type path, which deliberately
// never compares equal to a real package name.
func (imp Import) PackageName() string {
	if imp.Static {
		i := strings.LastIndex(imp.Qualifier, ".")
		if i < 0 {
			return ""
		}
		return imp.Qualifier[:i]
	}
	return imp.Qualifier
}

// WithName returns a copy of the import with a different simple name.
func (imp Import) WithName(name string) Import {
	imp.Name = name
	return imp
}

// WithPrefix returns a copy of the import with different leading formatting.
func (imp Import) WithPrefix(prefix string) Import {
	imp.Prefix = prefix
	return imp
}

// Render prints the import sequence as source text. Each declaration
// contributes its prefix followed by its canonical text.
func Render(imports []Import) string {
	var sb strings.Builder
	for _, imp := range imports {
		sb.WriteString(imp.Prefix)
		sb.WriteString(imp.String())
	}
	return sb.String()
}

package java

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"aspect.build/javaimports/internal/logger"
	"aspect.build/javaimports/java/style"
)

// Rewriter removes unused imports from attributed source units. The zero
// value uses the default layout style and no boundary formatter.
type Rewriter struct {
	// Style controls wildcard fold/unfold thresholds. Nil means
	// style.Default().
	Style *style.ImportLayoutStyle

	// BoundaryFormatter, when set, is invoked on the result if the
	// rewrite removed every import while the unit still declares types,
	// so a host can re-layout the package/type boundary. The core itself
	// does no re-indentation beyond prefix carry-over.
	BoundaryFormatter func(*SourceUnit) *SourceUnit
}

// Rewrite removes unused imports from the unit. As a precaution against
// incorrect removals, units containing unresolved type references are
// returned unchanged. The input is never modified; when nothing changes the
// identical unit is returned.
func (r Rewriter) Rewrite(unit *SourceUnit) *SourceUnit {
	if HasUnknownTypes(unit) {
		logger.Debugf("skipping import rewrite: unit %q has unresolved types", unit.PackageName)
		return unit
	}
	return r.removeUnused(unit)
}

// RemoveUnusedImports is the core rewrite without the unknown-type gate.
// Callers are expected to have run the gate (or to know their attribution
// is complete). A nil style selects the defaults.
func RemoveUnusedImports(unit *SourceUnit, st *style.ImportLayoutStyle) *SourceUnit {
	return Rewriter{Style: st}.removeUnused(unit)
}

// importGroup is the unit of classification. A group starts with a single
// declaration; unfolding a wildcard replaces the one entry with many. The
// used flag only ever moves from true to false.
type importGroup struct {
	entries []Import
	used    bool
}

func (r Rewriter) removeUnused(unit *SourceUnit) *SourceUnit {
	st := r.Style
	if st == nil {
		st = style.Default()
	}

	idx := newUsageIndex(unit)

	groups := make([]*importGroup, 0, len(unit.Imports))
	for _, imp := range unit.Imports {
		// assume initially that every import is used
		groups = append(groups, &importGroup{entries: []Import{imp}, used: true})
	}

	changed := false
	checked := map[string]struct{}{}
	usedWildcards := map[string]struct{}{}
	usedStaticWildcards := map[string]struct{}{}

	// First pass: classify each group in source order.
	for _, group := range groups {
		imp := group.entries[0]

		if _, dup := checked[imp.String()]; dup {
			group.used = false
			changed = true
		} else if imp.Static {
			if r.classifyStatic(group, idx, st, usedStaticWildcards) {
				changed = true
			}
		} else {
			if r.classifyType(group, unit, idx, st, usedWildcards) {
				changed = true
			}
		}

		checked[imp.String()] = struct{}{}
	}

	// Second pass: drop explicit imports made redundant by a retained
	// wildcard. Decisions from the first pass are frozen inputs here.
	ambiguous := ambiguousStaticImportNames(unit)
	for _, group := range groups {
		if !group.used || len(group.entries) == 0 {
			continue
		}
		imp := group.entries[0]
		if imp.Name == Wildcard {
			continue
		}
		if imp.Static {
			_, wildcardUsed := usedStaticWildcards[imp.TypeName()]
			_, amb := ambiguous[imp.Name]
			if wildcardUsed && !amb {
				group.used = false
				changed = true
			}
		} else if len(usedWildcards) == 1 {
			_, wildcardUsed := usedWildcards[imp.PackageName()]
			if wildcardUsed && !importsNestedType(idx, imp) && !conflictsWithJavaLang(imp) {
				group.used = false
				changed = true
			}
		}
	}

	if !changed {
		return unit
	}
	return r.assemble(unit, groups, st)
}

// classifyStatic decides a static import group. Reports whether the
// decision changed the unit.
func (r Rewriter) classifyStatic(group *importGroup, idx *usageIndex, st *style.ImportLayoutStyle, usedStaticWildcards map[string]struct{}) bool {
	imp := group.entries[0]
	outer := imp.TypeName()
	members := idx.members(outer)

	// The textual target may disagree with the attributed binary name for
	// nested declaring types, so retry the lookup under name equivalence.
	target := imp.Qualifier
	modifiedTarget := target
	for fqn := range idx.membersByDeclaringType {
		if fullyQualifiedNamesEqual(target, fqn) {
			modifiedTarget = fqn
			break
		}
	}
	targetMembers := idx.members(modifiedTarget)

	var staticClasses []TypeUsage
	for _, t := range idx.types(target) {
		if t.Owner != "" && strings.HasPrefix(outer, toFullyQualifiedName(t.Owner)) {
			staticClasses = append(staticClasses, t)
		}
	}

	switch {
	case members == nil && targetMembers == nil && staticClasses == nil:
		group.used = false
		return true

	case imp.Name == Wildcard:
		if st.AlwaysFolded(imp.Qualid()) {
			usedStaticWildcards[outer] = struct{}{}
			return false
		}
		// Member evidence may be keyed by the textual target or by its
		// attributed binary name; merge both before counting so an unfold
		// never drops a used name.
		names := treeset.NewWithStringComparator()
		for _, name := range memberNames(members) {
			names.Add(name)
		}
		for _, name := range memberNames(targetMembers) {
			names.Add(name)
		}
		if names.Size()+len(staticClasses) < st.NameCountToUseStarImport {
			for _, sc := range staticClasses {
				names.Add(sc.SimpleName())
			}
			logger.Debugf("unfolding %s into %d static imports", imp.String(), names.Size())
			group.entries = unfoldEntries(imp, names)
			return true
		}
		usedStaticWildcards[outer] = struct{}{}
		return false

	default:
		for _, sc := range staticClasses {
			if fullyQualifiedNamesEqual(imp.Qualid(), sc.FullyQualifiedName) {
				return false
			}
		}
		if members != nil && members.Contains(imp.Name) {
			return false
		}
		if targetMembers != nil && targetMembers.Contains(imp.Name) {
			return false
		}
		group.used = false
		return true
	}
}

// classifyType decides a non-static import group. Reports whether the
// decision changed the unit.
func (r Rewriter) classifyType(group *importGroup, unit *SourceUnit, idx *usageIndex, st *style.ImportLayoutStyle, usedWildcards map[string]struct{}) bool {
	imp := group.entries[0]
	target := imp.Qualifier
	combined := idx.combinedTypes(target)

	var imported *TypeUsage
	for i := range combined {
		if fullyQualifiedNamesEqual(combined[i].FullyQualifiedName, imp.TypeName()) {
			imported = &combined[i]
			break
		}
	}

	// An import of a top-level type declared in the unit's own package is
	// redundant even when the type is referenced.
	samePackage := unit.PackageName == imp.PackageName() &&
		imported != nil &&
		imported.Owner == "" &&
		!strings.Contains(imported.FullyQualifiedName, "$")

	switch {
	case len(combined) == 0 || samePackage:
		group.used = false
		return true

	case imp.Name == Wildcard:
		if st.AlwaysFolded(imp.Qualid()) {
			usedWildcards[imp.PackageName()] = struct{}{}
			return false
		}
		if len(combined) < st.ClassCountToUseStarImport {
			names := treeset.NewWithStringComparator()
			for _, t := range combined {
				names.Add(t.SimpleName())
			}
			logger.Debugf("unfolding %s into %d imports", imp.String(), names.Size())
			group.entries = unfoldEntries(imp, names)
			return true
		}
		usedWildcards[target] = struct{}{}
		return false

	default:
		if imported == nil {
			group.used = false
			return true
		}
		return false
	}
}

// combinedTypes unions the scope lookups for the textual target and its
// canonicalized form, deduplicated by fully qualified name.
func (idx *usageIndex) combinedTypes(target string) []TypeUsage {
	canonical := toFullyQualifiedName(target)
	if canonical == target {
		return idx.types(target)
	}
	combined := append([]TypeUsage(nil), idx.types(target)...)
	for _, t := range idx.types(canonical) {
		dup := false
		for _, e := range combined {
			if e.FullyQualifiedName == t.FullyQualifiedName {
				dup = true
				break
			}
		}
		if !dup {
			combined = append(combined, t)
		}
	}
	return combined
}

// importsNestedType reports whether the explicit import resolves to a
// nested type. Unresolvable imports are treated as nested so they are never
// demoted into a wildcard.
func importsNestedType(idx *usageIndex, imp Import) bool {
	for _, scope := range []string{imp.Qualifier, toFullyQualifiedName(imp.Qualifier)} {
		for _, t := range idx.types(scope) {
			if fullyQualifiedNamesEqual(t.FullyQualifiedName, imp.TypeName()) {
				return t.Owner != "" || strings.Contains(t.FullyQualifiedName, "$")
			}
		}
	}
	return true
}

// unfoldEntries replaces a wildcard with one explicit entry per name, in
// the set's sorted order. The first entry inherits the wildcard's original
// prefix; the rest get a single line break.
func unfoldEntries(wildcard Import, names *treeset.Set) []Import {
	entries := make([]Import, 0, names.Size())
	it := names.Iterator()
	for it.Next() {
		entries = append(entries, wildcard.WithName(it.Value().(string)).WithPrefix("\n"))
	}
	if len(entries) > 0 {
		entries[0] = entries[0].WithPrefix(wildcard.Prefix)
	}
	return entries
}

// ambiguousStaticImportNames returns the member names reachable through
// more than one wildcard-imported declaring type actually referenced in
// the unit. Demoting an explicit import of such a name into a wildcard
// could silently change which member it binds to.
func ambiguousStaticImportNames(unit *SourceUnit) map[string]struct{} {
	wildcardOwners := map[string]struct{}{}
	for _, imp := range unit.Imports {
		if imp.Name == Wildcard {
			wildcardOwners[imp.TypeName()] = struct{}{}
		}
	}

	namesByOwner := map[string]map[string]struct{}{}
	for _, f := range unit.Fields {
		if f.DeclaringType == "" {
			continue
		}
		if _, ok := wildcardOwners[f.DeclaringType]; !ok {
			continue
		}
		names := namesByOwner[f.DeclaringType]
		if names == nil {
			names = map[string]struct{}{}
			namesByOwner[f.DeclaringType] = names
		}
		names[f.Name] = struct{}{}
	}

	seen := map[string]struct{}{}
	ambiguous := map[string]struct{}{}
	for _, names := range namesByOwner {
		for name := range names {
			if _, dup := seen[name]; dup {
				ambiguous[name] = struct{}{}
			} else {
				seen[name] = struct{}{}
			}
		}
	}
	return ambiguous
}

// assemble rebuilds the import sequence from the classified groups,
// carrying formatting across removed runs.
func (r Rewriter) assemble(unit *SourceUnit, groups []*importGroup, st *style.ImportLayoutStyle) *SourceUnit {
	var out []Import
	var carried string
	haveCarried := false

	for _, group := range groups {
		if group.used {
			for i, imp := range group.entries {
				if i == 0 && haveCarried && newlineCount(lastWhitespace(imp.Prefix)) <= st.CarriedPrefixNewlineLimit {
					imp = imp.WithPrefix(carried)
				}
				out = append(out, imp)
			}
			haveCarried = false
		} else if !haveCarried && len(group.entries) > 0 {
			// remember the formatting at the start of an unused run
			carried = group.entries[0].Prefix
			haveCarried = true
		}
	}

	result := unit.WithImports(out)
	if len(out) == 0 && result.HasTypeDecls && r.BoundaryFormatter != nil {
		result = r.BoundaryFormatter(result)
	}
	return result
}

// lastWhitespace returns the trailing run of whitespace in a prefix, i.e.
// everything after the last comment or other non-whitespace content.
func lastWhitespace(prefix string) string {
	for i := len(prefix) - 1; i >= 0; i-- {
		switch prefix[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return prefix[i+1:]
		}
	}
	return prefix
}

func newlineCount(s string) int {
	return strings.Count(s, "\n")
}

package java

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// usageIndex holds the two derived lookups the classification passes work
// from. It is rebuilt per invocation and never escapes it.
type usageIndex struct {
	// typesByScope groups referenced types by scope key: the package name
	// for top-level types, the owning type for nested types. Values are
	// deduplicated by fully qualified name.
	typesByScope map[string][]TypeUsage

	// membersByDeclaringType holds the sorted, deduplicated names of
	// static methods and field-like variables referenced through each
	// declaring type. The sort order is used directly when unfolding
	// wildcards.
	membersByDeclaringType map[string]*treeset.Set
}

// scopeKey returns the lookup key under which a referenced type is grouped.
func scopeKey(t TypeUsage) string {
	if t.Owner != "" {
		return toFullyQualifiedName(t.Owner)
	}
	return t.PackageName
}

// newUsageIndex derives the index from the unit's usage facts. The unit is
// not modified.
func newUsageIndex(unit *SourceUnit) *usageIndex {
	idx := &usageIndex{
		typesByScope:           map[string][]TypeUsage{},
		membersByDeclaringType: map[string]*treeset.Set{},
	}

	var addType func(t TypeUsage)
	addType = func(t TypeUsage) {
		key := scopeKey(t)
		existing := idx.typesByScope[key]
		dup := false
		for _, e := range existing {
			if e.FullyQualifiedName == t.FullyQualifiedName {
				dup = true
				break
			}
		}
		if !dup {
			idx.typesByScope[key] = append(existing, t)
		}
		for _, arg := range t.TypeArguments {
			addType(arg)
		}
	}
	for _, t := range unit.Types {
		addType(t)
	}

	addMember := func(declaringType, name string) {
		set, ok := idx.membersByDeclaringType[declaringType]
		if !ok {
			set = treeset.NewWithStringComparator()
			idx.membersByDeclaringType[declaringType] = set
		}
		set.Add(name)
	}
	for _, m := range unit.Methods {
		if m.Static && m.DeclaringType != "" {
			addMember(m.DeclaringType, m.Name)
		}
	}
	for _, f := range unit.Fields {
		if f.DeclaringType != "" {
			addMember(f.DeclaringType, f.Name)
		}
	}

	return idx
}

// members returns the member set for a declaring type, or nil.
func (idx *usageIndex) members(declaringType string) *treeset.Set {
	return idx.membersByDeclaringType[declaringType]
}

// types returns the referenced types grouped under the scope key.
func (idx *usageIndex) types(scope string) []TypeUsage {
	return idx.typesByScope[scope]
}

// memberNames returns the sorted member names of a set, or nil.
func memberNames(set *treeset.Set) []string {
	if set == nil {
		return nil
	}
	names := make([]string, 0, set.Size())
	it := set.Iterator()
	for it.Next() {
		names = append(names, it.Value().(string))
	}
	return names
}

package java

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUsageIndexScopes(t *testing.T) {
	unit := &SourceUnit{
		Types: []TypeUsage{
			typeRef("java.util.List"),
			typeRef("java.util.List"), // duplicate facts collapse
			nestedTypeRef("com.foo.Outer", "Inner"),
			{
				FullyQualifiedName: "java.util.Map",
				PackageName:        "java.util",
				ClassName:          "Map",
				TypeArguments: []TypeUsage{
					typeRef("com.bar.Key"),
					nestedTypeRef("com.bar.Holder", "Value"),
				},
			},
		},
	}

	idx := newUsageIndex(unit)

	fqns := func(scope string) []string {
		out := []string{}
		for _, t := range idx.types(scope) {
			out = append(out, t.FullyQualifiedName)
		}
		return out
	}

	if diff := cmp.Diff([]string{"java.util.List", "java.util.Map"}, fqns("java.util")); diff != "" {
		t.Errorf("java.util scope (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"com.foo.Outer.Inner"}, fqns("com.foo.Outer")); diff != "" {
		t.Errorf("nested types key by owning type (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"com.bar.Key"}, fqns("com.bar")); diff != "" {
		t.Errorf("type arguments key by their own scope (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"com.bar.Holder.Value"}, fqns("com.bar.Holder")); diff != "" {
		t.Errorf("nested type arguments key by owning type (-want, +got):\n%s", diff)
	}
}

func TestUsageIndexMembersSortedAndDeduplicated(t *testing.T) {
	unit := &SourceUnit{
		Methods: []MethodUsage{
			staticMethod("com.foo.Util", "zip"),
			staticMethod("com.foo.Util", "apply"),
			staticMethod("com.foo.Util", "zip"),
			{DeclaringType: "com.foo.Util", Name: "instanceOnly", Static: false},
		},
		Fields: []FieldUsage{
			field("com.foo.Util", "CONSTANT"),
			{Name: "local"}, // no declaring type, ignored
		},
	}

	idx := newUsageIndex(unit)

	want := []string{"CONSTANT", "apply", "zip"}
	if diff := cmp.Diff(want, memberNames(idx.members("com.foo.Util"))); diff != "" {
		t.Errorf("member names (-want, +got):\n%s", diff)
	}
	if idx.members("com.foo.Unknown") != nil {
		t.Errorf("unknown declaring type should have no member set")
	}
}

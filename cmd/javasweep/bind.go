package main

import (
	"aspect.build/javaimports/java"
	"aspect.build/javaimports/java/parser"
)

// bind turns a syntactic parse result into an attributed SourceUnit using
// only the file's own imports as evidence. This is a best-effort stand-in
// for a real attribution engine: explicit imports bind by simple name,
// unqualified names fall back to java.lang or the file's own package, and
// anything a wildcard import could supply is marked unresolved so the
// precondition gate leaves the file alone.
func bind(res *parser.ParseResult) *java.SourceUnit {
	unit := &java.SourceUnit{
		PackageName:  res.Package,
		Imports:      res.Imports,
		HasTypeDecls: res.HasTypeDecls,
	}

	// Simple name -> fully qualified type, from explicit imports.
	typeByName := map[string]string{}
	// Static member name -> declaring type, from explicit static imports.
	staticOwnerByMember := map[string]string{}
	// Explicit static imports by name; a static import can also bring a
	// nested class into scope as a type.
	staticByName := map[string]java.Import{}
	hasWildcard := false
	hasStaticWildcard := false

	for _, imp := range res.Imports {
		if imp.Name == java.Wildcard {
			hasWildcard = true
			if imp.Static {
				hasStaticWildcard = true
			}
			continue
		}
		if imp.Static {
			staticOwnerByMember[imp.Name] = imp.Qualifier
			staticByName[imp.Name] = imp
			// The declaring type itself becomes nameable as a receiver.
			typeByName[simpleName(imp.Qualifier)] = imp.Qualifier
		} else {
			typeByName[imp.Name] = imp.Qualid()
		}
	}

	addType := func(fqn, pkg, className string) {
		unit.Types = append(unit.Types, java.TypeUsage{
			FullyQualifiedName: fqn,
			PackageName:        pkg,
			ClassName:          className,
		})
	}
	seenTypes := map[string]struct{}{}
	bindTypeName := func(name string) {
		if _, dup := seenTypes[name]; dup {
			return
		}
		seenTypes[name] = struct{}{}
		if imp, ok := staticByName[name]; ok && looksLikeClassName(name) {
			// Statically imported nested class used as a type.
			unit.Types = append(unit.Types, java.TypeUsage{
				FullyQualifiedName: imp.Qualid(),
				PackageName:        packageOf(imp.Qualifier),
				Owner:              imp.Qualifier,
				ClassName:          simpleName(imp.Qualifier) + "." + name,
			})
			return
		}
		switch {
		case typeByName[name] != "":
			fqn := typeByName[name]
			addType(fqn, packageOf(fqn), name)
		case java.IsJavaLangName(name):
			addType("java.lang."+name, "java.lang", name)
		case hasWildcard:
			// The name may come from a wildcard; without real
			// attribution that makes the whole unit unknown.
			unit.Types = append(unit.Types, java.TypeUsage{ClassName: name, Unresolved: true})
		case res.Package != "":
			addType(res.Package+"."+name, res.Package, name)
		default:
			addType(name, "", name)
		}
	}

	for _, name := range res.TypeRefs {
		bindTypeName(name)
	}

	for _, ref := range res.CallRefs {
		if ref.Receiver == "" {
			if owner, ok := staticOwnerByMember[ref.Name]; ok {
				unit.Methods = append(unit.Methods, java.MethodUsage{
					DeclaringType: owner, Name: ref.Name, Static: true,
				})
			} else if hasStaticWildcard {
				unit.Methods = append(unit.Methods, java.MethodUsage{Name: ref.Name, Unresolved: true})
			}
			continue
		}
		if fqn, ok := typeByName[ref.Receiver]; ok {
			bindTypeName(ref.Receiver)
			if ref.Name != "" {
				unit.Methods = append(unit.Methods, java.MethodUsage{
					DeclaringType: fqn, Name: ref.Name, Static: true,
				})
			}
		} else if looksLikeClassName(ref.Receiver) {
			// Not an imported type but shaped like one: could be java.lang,
			// the file's own package, or a wildcard supply.
			bindTypeName(ref.Receiver)
		}
	}

	for _, ref := range res.FieldRefs {
		if ref.Receiver == "" {
			continue
		}
		if fqn, ok := typeByName[ref.Receiver]; ok {
			bindTypeName(ref.Receiver)
			unit.Fields = append(unit.Fields, java.FieldUsage{
				DeclaringType: fqn, Name: ref.Name, Static: true,
			})
		} else if looksLikeClassName(ref.Receiver) {
			bindTypeName(ref.Receiver)
		}
	}

	return unit
}

// looksLikeClassName reports whether a bare identifier follows the Java
// class naming convention. Receivers that fail it are treated as locals.
func looksLikeClassName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}

func simpleName(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[i+1:]
		}
	}
	return qualified
}

func packageOf(qualified string) string {
	for i := len(qualified) - 1; i >= 0; i-- {
		if qualified[i] == '.' {
			return qualified[:i]
		}
	}
	return ""
}

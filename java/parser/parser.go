// Package parser reads Java source files with tree-sitter and extracts the
// pieces the import rewrite needs: the package header, the import
// declarations with their leading formatting, and a survey of identifiers
// referenced in the body.
//
// The parser is a collaborator of the rewrite, not part of it: it produces
// syntax, and a binder turns syntax into attributed usage facts.
package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	grammar "github.com/smacker/go-tree-sitter/java"

	"aspect.build/javaimports/java"
)

// CallRef is a method invocation or method reference found in the body: the
// receiver's simple identifier (empty for unqualified calls) and the invoked
// name (empty for constructor references).
type CallRef struct {
	Receiver string
	Name     string
}

// FieldRef is a field access found in the body: the object's simple
// identifier (empty when the object is a more complex expression) and the
// accessed field name.
type FieldRef struct {
	Receiver string
	Name     string
}

// ParseResult holds everything extracted from one Java file.
type ParseResult struct {
	// The path of the file as it was passed to Parse.
	File string

	// Package declared by the file, empty for the default package.
	Package string

	// Imports in source order, each carrying the formatting that
	// precedes it.
	Imports []java.Import

	// Byte offsets of the import section in the source: ImportsStart is
	// where the first import's prefix begins, ImportsEnd is just past the
	// last import's terminating semicolon. Both are zero when the file
	// has no imports.
	ImportsStart int
	ImportsEnd   int

	// HasTypeDecls reports whether the file declares any top-level types.
	HasTypeDecls bool

	// TypeRefs are the simple type names referenced in the body.
	TypeRefs []string

	// CallRefs and FieldRefs are the qualified member references found in
	// the body.
	CallRefs  []CallRef
	FieldRefs []FieldRef
}

// Parser parses Java source files.
type Parser interface {
	Parse(filePath, source string) (*ParseResult, []error)
}

type treeSitterParser struct{}

// NewParser returns a tree-sitter backed Parser.
func NewParser() Parser {
	return &treeSitterParser{}
}

func (p *treeSitterParser) Parse(filePath, source string) (*ParseResult, []error) {
	result := &ParseResult{
		File: filePath,
	}

	var errs []error
	sourceCode := []byte(source)

	sp := sitter.NewParser()
	sp.SetLanguage(grammar.GetLanguage())
	tree, err := sp.ParseCtx(context.Background(), nil, sourceCode)
	if err != nil {
		return result, []error{fmt.Errorf("parsing %s: %w", filePath, err)}
	}

	rootNode := tree.RootNode()

	// Extract the package header and imports from the root's children.
	// lastEnd tracks the end of the previous declaration so that the
	// whitespace (and any comments) between declarations travels as the
	// following import's prefix.
	lastEnd := 0
	for _, nodeI := range namedChildren(rootNode) {
		switch nodeI.Type() {
		case "package_declaration":
			if result.Package != "" {
				errs = append(errs, fmt.Errorf("multiple package declarations found in %q", filePath))
			} else if id := firstNamedChildOfTypes(nodeI, "scoped_identifier", "identifier"); id != nil {
				result.Package = id.Content(sourceCode)
			}
			lastEnd = int(nodeI.EndByte())
		case "import_declaration":
			imp, err := readImportDeclaration(nodeI, sourceCode, lastEnd)
			if err != nil {
				errs = append(errs, err)
			} else {
				if len(result.Imports) == 0 {
					result.ImportsStart = lastEnd
				}
				result.Imports = append(result.Imports, imp)
				result.ImportsEnd = int(nodeI.EndByte())
			}
			lastEnd = int(nodeI.EndByte())
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			result.HasTypeDecls = true
			surveyBody(nodeI, sourceCode, result)
		}
	}

	if rootNode.HasError() {
		errs = append(errs, collectParseErrors(rootNode, sourceCode, filePath)...)
	}

	return result, errs
}

// readImportDeclaration turns an import_declaration node into an Import
// value. prefixStart is the byte offset where the import's leading
// formatting begins.
func readImportDeclaration(node *sitter.Node, sourceCode []byte, prefixStart int) (java.Import, error) {
	id := firstNamedChildOfTypes(node, "scoped_identifier", "identifier")
	if id == nil {
		return java.Import{}, fmt.Errorf("import declaration without identifier: %s", node.Content(sourceCode))
	}

	isStatic := false
	isStar := false
	for i := 0; i < int(node.ChildCount()); i++ {
		switch node.Child(i).Type() {
		case "static":
			isStatic = true
		case "asterisk":
			isStar = true
		}
	}

	qualid := id.Content(sourceCode)
	var qualifier, name string
	if isStar {
		qualifier = qualid
		name = java.Wildcard
	} else {
		i := strings.LastIndex(qualid, ".")
		if i < 0 {
			return java.Import{}, fmt.Errorf("import of unqualified name %q: %s", qualid, node.Content(sourceCode))
		}
		qualifier = qualid[:i]
		name = qualid[i+1:]
	}

	return java.Import{
		Static:    isStatic,
		Qualifier: qualifier,
		Name:      name,
		Prefix:    string(sourceCode[prefixStart:node.StartByte()]),
	}, nil
}

// surveyBody walks a type declaration collecting referenced type names and
// qualified member references.
func surveyBody(node *sitter.Node, sourceCode []byte, result *ParseResult) {
	switch node.Type() {
	case "type_identifier":
		result.TypeRefs = append(result.TypeRefs, node.Content(sourceCode))
	case "method_invocation":
		ref := CallRef{}
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			ref.Name = nameNode.Content(sourceCode)
		}
		if object := node.ChildByFieldName("object"); object != nil && object.Type() == "identifier" {
			ref.Receiver = object.Content(sourceCode)
		}
		result.CallRefs = append(result.CallRefs, ref)
	case "field_access":
		ref := FieldRef{}
		if fieldNode := node.ChildByFieldName("field"); fieldNode != nil {
			ref.Name = fieldNode.Content(sourceCode)
		}
		if object := node.ChildByFieldName("object"); object != nil && object.Type() == "identifier" {
			ref.Receiver = object.Content(sourceCode)
		}
		result.FieldRefs = append(result.FieldRefs, ref)
	case "marker_annotation", "annotation":
		// An annotation name is a plain identifier, not a type_identifier.
		// Qualified annotation names need no import and are skipped.
		if nameNode := node.ChildByFieldName("name"); nameNode != nil && nameNode.Type() == "identifier" {
			result.TypeRefs = append(result.TypeRefs, nameNode.Content(sourceCode))
		}
	case "method_reference":
		// The grammar exposes no fields here: the receiver is the first
		// named child, the referenced name the last. `::new` has no name
		// child at all.
		ref := CallRef{}
		if n := int(node.NamedChildCount()); n > 0 {
			first := node.NamedChild(0)
			if t := first.Type(); t == "identifier" || t == "type_identifier" {
				ref.Receiver = first.Content(sourceCode)
			}
			if last := node.NamedChild(n - 1); last != first && last.Type() == "identifier" {
				ref.Name = last.Content(sourceCode)
			}
		}
		result.CallRefs = append(result.CallRefs, ref)
	}
	for _, child := range namedChildren(node) {
		surveyBody(child, sourceCode, result)
	}
}

// firstNamedChildOfTypes returns the first named child whose type is one of
// typeNames, or nil.
func firstNamedChildOfTypes(node *sitter.Node, typeNames ...string) *sitter.Node {
	for _, child := range namedChildren(node) {
		for _, typeName := range typeNames {
			if child.Type() == typeName {
				return child
			}
		}
	}
	return nil
}

func namedChildren(node *sitter.Node) []*sitter.Node {
	children := make([]*sitter.Node, 0, int(node.NamedChildCount()))
	for i := 0; i < int(node.NamedChildCount()); i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// collectParseErrors reports each ERROR node with its line and column.
func collectParseErrors(node *sitter.Node, sourceCode []byte, filePath string) []error {
	var errs []error
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.IsError() {
			at := n.StartPoint()
			errs = append(errs, fmt.Errorf("%s:%d:%d: parse error near %q",
				filePath, at.Row+1, at.Column+1, truncate(n.Content(sourceCode), 40)))
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	return errs
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

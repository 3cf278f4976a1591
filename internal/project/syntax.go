// # internal/project/syntax.go
package project

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Walk visits every node depth-first. fn returning false prunes the
// subtree.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		Walk(n.Child(i), fn)
	}
}

// FindAll collects every descendant (including n itself) of the given
// kind.
func FindAll(n *sitter.Node, kind string) []*sitter.Node {
	var out []*sitter.Node
	Walk(n, func(node *sitter.Node) bool {
		if node.Kind() == kind {
			out = append(out, node)
		}
		return true
	})
	return out
}

// NamedChildren returns the direct children matching any of the kinds.
func NamedChildren(n *sitter.Node, kinds ...string) []*sitter.Node {
	var out []*sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		for _, k := range kinds {
			if child.Kind() == k {
				out = append(out, child)
				break
			}
		}
	}
	return out
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}

// StringValue unwraps a string or substitution-free template literal to
// its content. Returns false for anything dynamic.
func StringValue(n *sitter.Node, f *SourceFile) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Kind() {
	case "string":
		return trimQuoted(f.Text(n)), true
	case "template_string":
		if len(FindAll(n, "template_substitution")) > 0 {
			return "", false
		}
		return trimQuoted(f.Text(n)), true
	}
	return "", false
}

// PropValue returns the value node of an object literal property whose
// key matches any of names.
func PropValue(obj *sitter.Node, f *SourceFile, names ...string) *sitter.Node {
	if obj == nil || obj.Kind() != "object" {
		return nil
	}
	for _, pair := range NamedChildren(obj, "pair") {
		key := pair.ChildByFieldName("key")
		if key == nil {
			continue
		}
		keyName := trimQuoted(f.Text(key))
		for _, want := range names {
			if keyName == want {
				return pair.ChildByFieldName("value")
			}
		}
	}
	return nil
}

// PropKeys lists the property names of an object literal.
func PropKeys(obj *sitter.Node, f *SourceFile) []string {
	var out []string
	if obj == nil || obj.Kind() != "object" {
		return out
	}
	for _, pair := range NamedChildren(obj, "pair") {
		if key := pair.ChildByFieldName("key"); key != nil {
			out = append(out, trimQuoted(f.Text(key)))
		}
	}
	return out
}

// IdentifierList extracts plain identifier names from an array literal,
// e.g. a guards array. Non-identifier elements are ignored.
func IdentifierList(arr *sitter.Node, f *SourceFile) []string {
	if arr == nil || arr.Kind() != "array" {
		return nil
	}
	var out []string
	for _, el := range NamedChildren(arr, "identifier") {
		out = append(out, f.Text(el))
	}
	return out
}

// EnclosingName walks up from n to the nearest named declaration (class,
// function, method or variable declarator) and returns its identifier.
func EnclosingName(n *sitter.Node, f *SourceFile) string {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Kind() {
		case "class_declaration", "function_declaration", "method_definition":
			if name := cur.ChildByFieldName("name"); name != nil {
				return f.Text(name)
			}
		case "variable_declarator":
			if name := cur.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				return f.Text(name)
			}
		}
	}
	return ""
}

// # internal/analyzer/segments.go
package analyzer

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ksrpraneeth/UserPravah/internal/project"
)

// NavigationPath renders a navigation-target expression as a path.
// Literals pass through; template literals keep their literal fragments
// and replace each substitution with a derived placeholder. Anything else
// is not representable.
func NavigationPath(sf *project.SourceFile, n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if v, ok := project.StringValue(n, sf); ok {
		return v, true
	}
	if n.Kind() != "template_string" {
		return "", false
	}

	var b strings.Builder
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "string_fragment":
			b.WriteString(sf.Text(child))
		case "template_substitution":
			expr := strings.TrimSuffix(strings.TrimPrefix(sf.Text(child), "${"), "}")
			b.WriteString(PlaceholderFor(expr))
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

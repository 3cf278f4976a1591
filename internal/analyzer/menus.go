// # internal/analyzer/menus.go
package analyzer

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

var (
	menuTitleKeys = []string{"title", "label", "name"}
	menuPathKeys  = []string{"path", "link", "route", "url"}
)

// ExtractMenus is a lightweight pass over configuration-like arrays: any
// array where at least two elements carry both a title-ish and a path-ish
// key is treated as a menu definition.
func ExtractMenus(p *project.Project) []routes.MenuDefinition {
	var menus []routes.MenuDefinition
	for _, sf := range p.Files() {
		if sf.Language == project.LangHTML {
			continue
		}
		consumed := make(map[uint]bool)
		for _, arr := range project.FindAll(sf.Root(), "array") {
			if consumed[arr.StartByte()] {
				continue
			}
			if !looksLikeMenu(arr, sf) {
				continue
			}
			markNested(arr, consumed)
			menus = append(menus, menuEntries(arr, sf)...)
		}
	}
	return menus
}

func looksLikeMenu(arr *sitter.Node, sf *project.SourceFile) bool {
	qualifying := 0
	for _, obj := range project.NamedChildren(arr, "object") {
		if menuProp(obj, sf, menuTitleKeys) != nil && menuProp(obj, sf, menuPathKeys) != nil {
			qualifying++
		}
	}
	return qualifying >= 2
}

func markNested(arr *sitter.Node, consumed map[uint]bool) {
	for _, nested := range project.FindAll(arr, "array") {
		consumed[nested.StartByte()] = true
	}
}

func menuEntries(arr *sitter.Node, sf *project.SourceFile) []routes.MenuDefinition {
	var out []routes.MenuDefinition
	for _, obj := range project.NamedChildren(arr, "object") {
		title, okTitle := literal(menuProp(obj, sf, menuTitleKeys), sf)
		path, okPath := literal(menuProp(obj, sf, menuPathKeys), sf)
		if !okTitle || !okPath {
			continue
		}
		entry := routes.MenuDefinition{Title: title, Path: path}

		if roles := project.PropValue(obj, sf, "roles", "role"); roles != nil {
			switch roles.Kind() {
			case "array":
				for i := uint(0); i < roles.ChildCount(); i++ {
					if v, ok := project.StringValue(roles.Child(i), sf); ok {
						entry.Roles = append(entry.Roles, v)
					}
				}
			default:
				if v, ok := project.StringValue(roles, sf); ok {
					entry.Roles = []string{v}
				}
			}
		}

		if children := project.PropValue(obj, sf, "children", "items", "submenu"); children != nil && children.Kind() == "array" {
			entry.Children = menuEntries(children, sf)
		}

		out = append(out, entry)
	}
	return out
}

func menuProp(obj *sitter.Node, sf *project.SourceFile, keys []string) *sitter.Node {
	return project.PropValue(obj, sf, keys...)
}

func literal(n *sitter.Node, sf *project.SourceFile) (string, bool) {
	if n == nil {
		return "", false
	}
	return project.StringValue(n, sf)
}

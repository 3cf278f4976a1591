// # internal/analyzer/nextjs/flows.go
package nextjs

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ksrpraneeth/UserPravah/internal/analyzer"
	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

func extractFlows(p *project.Project) []routes.NavigationFlow {
	var flows []routes.NavigationFlow
	for _, sf := range p.Files() {
		if sf.Language == project.LangHTML {
			continue
		}
		flows = append(flows, linkFlows(sf)...)
		flows = append(flows, routerCallFlows(sf)...)
	}
	return flows
}

// linkFlows extracts <Link href=...> elements from JSX.
func linkFlows(sf *project.SourceFile) []routes.NavigationFlow {
	var flows []routes.NavigationFlow
	for _, kind := range []string{"jsx_element", "jsx_self_closing_element"} {
		for _, el := range project.FindAll(sf.Root(), kind) {
			if !isLinkElement(el, sf) {
				continue
			}
			to, ok := hrefTarget(el, sf)
			if !ok {
				continue
			}
			from := project.EnclosingName(el, sf)
			if from == "" {
				from = analyzer.DeriveNameFromFile(sf.Path)
			}
			flows = append(flows, routes.NavigationFlow{
				From: from,
				To:   to,
				Type: routes.FlowStatic,
			})
		}
	}
	return flows
}

func isLinkElement(el *sitter.Node, sf *project.SourceFile) bool {
	tag := el
	if el.Kind() == "jsx_element" {
		opens := project.FindAll(el, "jsx_opening_element")
		if len(opens) == 0 {
			return false
		}
		tag = opens[0]
	}
	name := tag.ChildByFieldName("name")
	return name != nil && sf.Text(name) == "Link"
}

func hrefTarget(el *sitter.Node, sf *project.SourceFile) (string, bool) {
	for _, attr := range project.FindAll(el, "jsx_attribute") {
		names := project.NamedChildren(attr, "property_identifier")
		if len(names) == 0 || sf.Text(names[0]) != "href" {
			continue
		}
		for i := uint(0); i < attr.ChildCount(); i++ {
			child := attr.Child(i)
			switch child.Kind() {
			case "string":
				if v, ok := project.StringValue(child, sf); ok {
					return v, true
				}
			case "jsx_expression":
				for j := uint(0); j < child.ChildCount(); j++ {
					if v, ok := analyzer.NavigationPath(sf, child.Child(j)); ok {
						return v, true
					}
				}
			}
		}
	}
	return "", false
}

// routerCallFlows extracts router.push / router.replace calls.
func routerCallFlows(sf *project.SourceFile) []routes.NavigationFlow {
	var flows []routes.NavigationFlow
	for _, call := range project.FindAll(sf.Root(), "call_expression") {
		fn := call.ChildByFieldName("function")
		if fn == nil || fn.Kind() != "member_expression" {
			continue
		}
		prop := fn.ChildByFieldName("property")
		obj := fn.ChildByFieldName("object")
		if prop == nil || obj == nil {
			continue
		}
		method := sf.Text(prop)
		if method != "push" && method != "replace" {
			continue
		}
		if !strings.Contains(strings.ToLower(sf.Text(obj)), "router") {
			continue
		}

		args := call.ChildByFieldName("arguments")
		if args == nil {
			continue
		}
		var to string
		ok := false
		for i := uint(0); i < args.ChildCount() && !ok; i++ {
			to, ok = analyzer.NavigationPath(sf, args.Child(i))
		}
		if !ok {
			continue
		}

		from := project.EnclosingName(call, sf)
		if from == "" {
			from = analyzer.DeriveNameFromFile(sf.Path)
		}
		flows = append(flows, routes.NavigationFlow{
			From: from,
			To:   to,
			Type: routes.FlowDynamic,
		})
	}
	return flows
}

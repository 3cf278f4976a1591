// # internal/analyzer/angular/flows.go
package angular

import (
	"log/slog"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ksrpraneeth/UserPravah/internal/analyzer"
	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

// extractFlows scans every file for navigation triggers: routerLink
// attributes in templates (declarative, static) and router.navigate /
// navigateByUrl calls (imperative, dynamic).
func extractFlows(p *project.Project) []routes.NavigationFlow {
	var flows []routes.NavigationFlow

	for _, sf := range p.Files() {
		switch sf.Language {
		case project.LangHTML:
			// Standalone templates without a resolvable owning component
			// are attributed to a file-derived name below, but component
			// templates are handled from their class so the owner is
			// known; skip them here to avoid double counting.
			continue
		default:
			flows = append(flows, fileFlows(p, sf)...)
		}
	}

	flows = append(flows, orphanTemplateFlows(p)...)
	return flows
}

func fileFlows(p *project.Project, sf *project.SourceFile) []routes.NavigationFlow {
	var flows []routes.NavigationFlow

	for _, class := range project.FindAll(sf.Root(), "class_declaration") {
		name := className(class, sf)
		if name == "" {
			name = analyzer.DeriveNameFromFile(sf.Path)
		}
		for _, tpl := range componentTemplates(p, sf, class) {
			flows = append(flows, markupFlows(tpl.file, name)...)
			if tpl.done != nil {
				tpl.done()
			}
		}
	}

	flows = append(flows, imperativeFlows(sf)...)
	return flows
}

type componentTemplate struct {
	file *project.SourceFile
	done func()
}

// componentTemplates resolves a component's markup: an external
// templateUrl, or an inline template parsed on the fly.
func componentTemplates(p *project.Project, sf *project.SourceFile, class *sitter.Node) []componentTemplate {
	var out []componentTemplate
	for _, dec := range project.FindAll(class, "decorator") {
		if !strings.HasPrefix(sf.Text(dec), "@Component") {
			continue
		}
		for _, obj := range project.FindAll(dec, "object") {
			if url := project.PropValue(obj, sf, "templateUrl"); url != nil {
				if rel, ok := project.StringValue(url, sf); ok {
					if tpl, found := p.Markup(sf, rel); found {
						out = append(out, componentTemplate{file: tpl})
					} else {
						slog.Warn("component template not found", "path", sf.Path, "templateUrl", rel)
					}
				}
			}
			if inline := project.PropValue(obj, sf, "template"); inline != nil {
				if markup, ok := project.StringValue(inline, sf); ok {
					if tpl, done, err := project.ParseMarkup([]byte(markup)); err == nil {
						out = append(out, componentTemplate{file: tpl, done: done})
					}
				}
			}
			break
		}
		break
	}
	return out
}

// markupFlows extracts routerLink targets from parsed markup.
func markupFlows(tpl *project.SourceFile, from string) []routes.NavigationFlow {
	var flows []routes.NavigationFlow
	for _, attr := range project.FindAll(tpl.Root(), "attribute") {
		names := project.NamedChildren(attr, "attribute_name")
		if len(names) == 0 {
			continue
		}
		name := tpl.Text(names[0])
		if name != "routerLink" && name != "[routerLink]" {
			continue
		}

		value := attributeValue(attr, tpl)
		if value == "" {
			continue
		}

		to := value
		if name == "[routerLink]" {
			to = boundLinkTarget(value)
			if to == "" {
				continue
			}
		}

		flows = append(flows, routes.NavigationFlow{
			From: from,
			To:   to,
			Type: routes.FlowStatic,
		})
	}
	return flows
}

func attributeValue(attr *sitter.Node, tpl *project.SourceFile) string {
	for i := uint(0); i < attr.ChildCount(); i++ {
		child := attr.Child(i)
		switch child.Kind() {
		case "quoted_attribute_value":
			return trimAttr(tpl.Text(child))
		case "attribute_value":
			return tpl.Text(child)
		}
	}
	return ""
}

func trimAttr(v string) string {
	return strings.Trim(v, `"'`)
}

// boundLinkTarget evaluates a [routerLink] binding expression textually:
// a quoted literal passes through, an array literal is joined with
// literal segments kept and dynamic ones replaced by placeholders.
func boundLinkTarget(expr string) string {
	expr = strings.TrimSpace(expr)
	if !strings.HasPrefix(expr, "[") {
		return strings.Trim(expr, `"'`+"`")
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(expr, "["), "]")
	var segments []string
	for _, part := range strings.Split(inner, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "'") || strings.HasPrefix(part, `"`) {
			segments = append(segments, strings.Trim(part, `"'`))
		} else {
			segments = append(segments, analyzer.PlaceholderFor(part))
		}
	}
	if len(segments) == 0 {
		return ""
	}
	return analyzer.JoinSegments(segments)
}

// imperativeFlows extracts router.navigate(...) and navigateByUrl(...)
// calls. The enclosing conditional's guard (truncated) or a preceding
// comment becomes the label.
func imperativeFlows(sf *project.SourceFile) []routes.NavigationFlow {
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
		if method != "navigate" && method != "navigateByUrl" {
			continue
		}
		if !strings.Contains(strings.ToLower(sf.Text(obj)), "router") {
			continue
		}

		arg := firstArgument(call)
		if arg == nil {
			continue
		}
		to, ok := navigationTarget(sf, arg)
		if !ok {
			continue
		}

		from := project.EnclosingName(call, sf)
		if from == "" {
			from = analyzer.DeriveNameFromFile(sf.Path)
		}

		flows = append(flows, routes.NavigationFlow{
			From:  from,
			To:    to,
			Type:  routes.FlowDynamic,
			Label: callLabel(call, sf),
		})
	}
	return flows
}

// navigationTarget renders the first navigation argument as a path:
// literals pass through, command arrays concatenate with "/" and dynamic
// segments become derived placeholders.
func navigationTarget(sf *project.SourceFile, arg *sitter.Node) (string, bool) {
	if v, ok := analyzer.NavigationPath(sf, arg); ok {
		return v, true
	}
	if arg.Kind() != "array" {
		return "", false
	}

	var segments []string
	for i := uint(0); i < arg.ChildCount(); i++ {
		el := arg.Child(i)
		switch el.Kind() {
		case "[", "]", ",", "comment":
			continue
		}
		if v, ok := analyzer.NavigationPath(sf, el); ok {
			segments = append(segments, v)
			continue
		}
		segments = append(segments, analyzer.PlaceholderFor(sf.Text(el)))
	}
	if len(segments) == 0 {
		return "", false
	}
	return analyzer.JoinSegments(segments), true
}

// callLabel attaches context to an imperative flow: the guard text of an
// immediately enclosing conditional, else a comment directly above the
// statement.
func callLabel(call *sitter.Node, sf *project.SourceFile) string {
	for cur := call.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.Kind() {
		case "if_statement":
			if cond := cur.ChildByFieldName("condition"); cond != nil {
				return analyzer.TruncateCondition(sf.Text(cond))
			}
			return ""
		case "function_declaration", "method_definition", "arrow_function", "class_declaration":
			// Conditionals outside the enclosing callable don't guard
			// this navigation.
			if comment := precedingComment(call, sf); comment != "" {
				return comment
			}
			return ""
		}
	}
	return precedingComment(call, sf)
}

func precedingComment(call *sitter.Node, sf *project.SourceFile) string {
	stmt := call
	for cur := call.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Kind() == "statement_block" || cur.Kind() == "program" {
			break
		}
		stmt = cur
	}
	prev := stmt.PrevSibling()
	if prev == nil || prev.Kind() != "comment" {
		return ""
	}
	text := sf.Text(prev)
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return analyzer.TruncateCondition(text)
}

// orphanTemplateFlows attributes routerLinks in templates never claimed
// by a component class to a file-derived name.
func orphanTemplateFlows(p *project.Project) []routes.NavigationFlow {
	claimed := make(map[string]bool)
	for _, sf := range p.Files() {
		if sf.Language == project.LangHTML {
			continue
		}
		for _, class := range project.FindAll(sf.Root(), "class_declaration") {
			for _, dec := range project.FindAll(class, "decorator") {
				if !strings.HasPrefix(sf.Text(dec), "@Component") {
					continue
				}
				for _, obj := range project.FindAll(dec, "object") {
					if url := project.PropValue(obj, sf, "templateUrl"); url != nil {
						if rel, ok := project.StringValue(url, sf); ok {
							if tpl, found := p.Markup(sf, rel); found {
								claimed[tpl.Path] = true
							}
						}
					}
					break
				}
				break
			}
		}
	}

	var flows []routes.NavigationFlow
	for _, sf := range p.Files() {
		if sf.Language != project.LangHTML || claimed[sf.Path] {
			continue
		}
		flows = append(flows, markupFlows(sf, analyzer.DeriveNameFromFile(sf.Path))...)
	}
	return flows
}

func className(class *sitter.Node, sf *project.SourceFile) string {
	if name := class.ChildByFieldName("name"); name != nil {
		return sf.Text(name)
	}
	return ""
}

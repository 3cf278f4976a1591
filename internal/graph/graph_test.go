// # internal/graph/graph_test.go
package graph

import (
	"testing"

	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

func result(rs []*routes.Route, fs []routes.NavigationFlow) *routes.AnalysisResult {
	return &routes.AnalysisResult{Framework: "angular", Routes: rs, Flows: fs}
}

func countEdges(g *Graph, t routes.FlowType) int {
	n := 0
	for _, e := range g.Edges() {
		if e.Type == t {
			n++
		}
	}
	return n
}

func TestAssemble_HierarchyEdges(t *testing.T) {
	g := Assemble(result([]*routes.Route{
		{Path: "a", FullPath: "/a", Component: "AComponent"},
		{Path: "b", FullPath: "/a/b", Component: "BComponent"},
		{Path: "c", FullPath: "/a/b/c", Component: "CComponent"},
	}, nil))

	if len(g.Nodes()) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(g.Nodes()))
	}
	if got := countEdges(g, routes.FlowHierarchy); got != 2 {
		t.Fatalf("expected 2 hierarchy edges, got %d", got)
	}

	want := map[string]string{"/a": "/a/b", "/a/b": "/a/b/c"}
	for _, e := range g.Edges() {
		if e.Type != routes.FlowHierarchy {
			continue
		}
		if want[e.Source] != e.Target {
			t.Errorf("unexpected hierarchy edge %s -> %s", e.Source, e.Target)
		}
	}
}

func TestAssemble_WildcardExcluded(t *testing.T) {
	g := Assemble(result([]*routes.Route{
		{Path: "home", FullPath: "/home", Component: "HomeComponent"},
		{Path: "**", FullPath: "/**", Component: "NotFoundComponent"},
	}, nil))

	if len(g.Nodes()) != 1 {
		t.Fatalf("wildcard route must not become a node; got %d nodes", len(g.Nodes()))
	}
}

func TestAssemble_RedirectToRoot(t *testing.T) {
	g := Assemble(result([]*routes.Route{
		{Path: "", FullPath: "/", Component: "ShellComponent", IsRoot: true},
		{Path: "home", FullPath: "/home", Redirect: true, RedirectTo: ""},
	}, nil))

	redirects := 0
	for _, e := range g.Edges() {
		if e.Type == routes.FlowRedirect {
			redirects++
			if e.Source != "/home" || e.Target != "/" {
				t.Errorf("expected /home -> /, got %s -> %s", e.Source, e.Target)
			}
		}
	}
	if redirects != 1 {
		t.Fatalf("expected exactly 1 redirect edge, got %d", redirects)
	}
}

func TestAssemble_ParameterizedFlowTarget(t *testing.T) {
	g := Assemble(result(
		[]*routes.Route{
			{Path: "about/:id", FullPath: "/about/:id", Component: "AboutComponent"},
			{Path: "start", FullPath: "/start", Component: "StartComponent"},
		},
		[]routes.NavigationFlow{
			{From: "StartComponent", To: "/about/123", Type: routes.FlowDynamic},
		},
	))

	found := false
	for _, e := range g.Edges() {
		if e.Type == routes.FlowDynamic {
			found = true
			if e.Source != "/start" || e.Target != "/about/:id" {
				t.Errorf("expected /start -> /about/:id, got %s -> %s", e.Source, e.Target)
			}
		}
	}
	if !found {
		t.Fatal("expected the concrete target to match the parameterized route")
	}
}

func TestAssemble_SuffixStrippedSourceMatch(t *testing.T) {
	g := Assemble(result(
		[]*routes.Route{
			{Path: "users", FullPath: "/users", Component: "UsersComponent"},
			{Path: "admin", FullPath: "/admin", Component: "AdminComponent"},
		},
		[]routes.NavigationFlow{
			// Flow origin named without the Component suffix.
			{From: "Users", To: "/admin", Type: routes.FlowDynamic},
		},
	))

	if got := countEdges(g, routes.FlowDynamic); got != 1 {
		t.Fatalf("expected suffix-stripped origin to resolve, got %d dynamic edges", got)
	}
}

func TestAssemble_RelativeTargetResolution(t *testing.T) {
	g := Assemble(result(
		[]*routes.Route{
			{Path: "users", FullPath: "/users", Component: "UsersComponent"},
			{Path: "detail", FullPath: "/users/detail", Component: "DetailComponent"},
		},
		[]routes.NavigationFlow{
			{From: "UsersComponent", To: "detail", Type: routes.FlowDynamic},
		},
	))

	found := false
	for _, e := range g.Edges() {
		if e.Type == routes.FlowDynamic && e.Source == "/users" && e.Target == "/users/detail" {
			found = true
		}
	}
	if !found {
		t.Error("relative flow target should resolve against the source node")
	}
}

func TestAssemble_EdgeDeduplication(t *testing.T) {
	flow := routes.NavigationFlow{From: "AComponent", To: "/b", Type: routes.FlowDynamic, Label: "always"}
	g := Assemble(result(
		[]*routes.Route{
			{Path: "a", FullPath: "/a", Component: "AComponent"},
			{Path: "b", FullPath: "/b", Component: "BComponent"},
		},
		[]routes.NavigationFlow{flow, flow, flow},
	))

	if got := countEdges(g, routes.FlowDynamic); got != 1 {
		t.Fatalf("expected duplicate flows to collapse to 1 edge, got %d", got)
	}
}

func TestAssemble_EmptyResult(t *testing.T) {
	g := Assemble(result(nil, nil))
	if len(g.Nodes()) != 0 || len(g.Edges()) != 0 {
		t.Error("empty analysis must yield an empty graph")
	}
}

// # internal/graph/graph.go
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ksrpraneeth/UserPravah/internal/routes"
	"github.com/ksrpraneeth/UserPravah/internal/shared/util"
)

// RouteNode is a presentation-ready graph vertex: one per distinct
// concrete full path. Wildcard routes never become nodes but stay usable
// as redirect and flow targets.
type RouteNode struct {
	ID           string   `json:"id"`
	OriginalPath string   `json:"originalPath"`
	DisplayName  string   `json:"displayName"`
	PathDepth    int      `json:"pathDepth"`
	Category     string   `json:"category"`
	Component    string   `json:"component,omitempty"`
	Importance   int      `json:"importance"`
	Guards       []string `json:"guards,omitempty"`
}

// FlowEdge is a deduplicated, resolved edge between two RouteNodes.
type FlowEdge struct {
	Source string          `json:"source"`
	Target string          `json:"target"`
	Type   routes.FlowType `json:"type"`
	Label  string          `json:"label,omitempty"`
}

// Graph is the assembled navigation graph handed to renderers.
type Graph struct {
	nodes     map[string]*RouteNode
	nodeOrder []string
	edges     []FlowEdge
	edgeSeen  map[string]bool

	byComponent map[string]string // component name -> node id
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []*RouteNode {
	out := make([]*RouteNode, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

func (g *Graph) Edges() []FlowEdge { return g.edges }

// Node returns the node for a normalized full path.
func (g *Graph) Node(fullPath string) (*RouteNode, bool) {
	n, ok := g.nodes[routes.Normalize(fullPath)]
	return n, ok
}

// Assemble derives the RouteNode/FlowEdge graph from an analysis result.
// It never mutates the result.
func Assemble(result *routes.AnalysisResult) *Graph {
	g := &Graph{
		nodes:       make(map[string]*RouteNode),
		edgeSeen:    make(map[string]bool),
		byComponent: make(map[string]string),
	}

	for _, r := range result.Routes {
		g.addNode(r)
	}
	for _, r := range result.Routes {
		g.addRedirect(r)
	}
	g.addHierarchy()
	for _, f := range result.Flows {
		g.addFlow(f)
	}
	return g
}

func (g *Graph) addNode(r *routes.Route) {
	if routes.IsWildcard(r.FullPath) {
		return
	}
	if _, exists := g.nodes[r.FullPath]; exists {
		return
	}
	node := &RouteNode{
		ID:           r.FullPath,
		OriginalPath: r.FullPath,
		DisplayName:  displayName(r),
		PathDepth:    pathDepth(r.FullPath),
		Category:     category(r.FullPath),
		Component:    r.Component,
		Importance:   importance(r),
		Guards:       r.Guards,
	}
	g.nodes[node.ID] = node
	g.nodeOrder = append(g.nodeOrder, node.ID)
	if r.Component != "" {
		if _, taken := g.byComponent[r.Component]; !taken {
			g.byComponent[r.Component] = node.ID
		}
	}
}

// addRedirect resolves a redirectTo declaration into a redirect edge.
// Relative targets resolve against the owning route's parent directory.
func (g *Graph) addRedirect(r *routes.Route) {
	if !r.Redirect {
		return
	}
	source, ok := g.nodes[r.FullPath]
	if !ok {
		return
	}

	target := r.RedirectTo
	if strings.HasPrefix(target, "/") {
		target = routes.Normalize(target)
	} else {
		parent := routes.Parent(r.FullPath)
		if parent == "" {
			parent = "/"
		}
		target = routes.Join(parent, target)
	}

	targetID, ok := g.resolveTarget(target)
	if !ok {
		return
	}
	g.addEdge(FlowEdge{Source: source.ID, Target: targetID, Type: routes.FlowRedirect})
}

// addHierarchy links every node to its closest existing path ancestor.
// Structural nesting only; no click navigation implied.
func (g *Graph) addHierarchy() {
	for _, id := range g.nodeOrder {
		if id == "/" {
			continue
		}
		parent := routes.Parent(id)
		if parent == "" {
			continue
		}
		if _, ok := g.nodes[parent]; !ok {
			continue
		}
		g.addEdge(FlowEdge{Source: parent, Target: id, Type: routes.FlowHierarchy})
	}
}

// addFlow maps a NavigationFlow onto graph nodes: the origin by component
// identity, the target by exact then parameterized path matching.
func (g *Graph) addFlow(f routes.NavigationFlow) {
	sourceID, ok := g.sourceFor(f.From)
	if !ok {
		return
	}

	target := f.To
	if !strings.HasPrefix(target, "/") {
		target = resolveRelative(sourceID, target)
	}
	target = routes.Normalize(target)

	targetID, ok := g.resolveTarget(target)
	if !ok {
		return
	}
	if targetID == sourceID && f.Type == routes.FlowStatic {
		return
	}
	g.addEdge(FlowEdge{Source: sourceID, Target: targetID, Type: f.Type, Label: f.Label})
}

// sourceFor matches a flow origin to a node: exact component name first,
// then with a conventional suffix stripped.
func (g *Graph) sourceFor(from string) (string, bool) {
	if id, ok := g.byComponent[from]; ok {
		return id, true
	}

	stripped := stripNameSuffix(from)
	for _, comp := range util.SortedStringKeys(g.byComponent) {
		if stripNameSuffix(comp) == stripped {
			return g.byComponent[comp], true
		}
	}
	return "", false
}

func stripNameSuffix(name string) string {
	for _, suffix := range []string{"Component", "Page", "View", "Container"} {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// resolveTarget finds the node for a concrete path: exact match first,
// else each candidate with parameter segments is tested with its ":param"
// segments treated as single-segment wildcards. Candidates are tried in
// sorted path order so runs are deterministic.
func (g *Graph) resolveTarget(target string) (string, bool) {
	target = routes.Normalize(target)
	if _, ok := g.nodes[target]; ok {
		return target, true
	}

	candidates := make([]string, 0)
	for id := range g.nodes {
		if strings.Contains(id, ":") {
			candidates = append(candidates, id)
		}
	}
	sort.Strings(candidates)

	for _, id := range candidates {
		if paramMatch(g.nodes[id].OriginalPath, target) {
			return id, true
		}
	}
	return "", false
}

// paramMatch tests a concrete path against a parameterized one; ":param"
// segments match any non-empty concrete segment.
func paramMatch(pattern, concrete string) bool {
	ps := strings.Split(strings.TrimPrefix(pattern, "/"), "/")
	cs := strings.Split(strings.TrimPrefix(concrete, "/"), "/")
	if len(ps) != len(cs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if cs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != cs[i] {
			return false
		}
	}
	return true
}

// resolveRelative resolves a relative navigation target against the
// source node's path, honoring "." and ".." segments.
func resolveRelative(sourcePath, target string) string {
	base := strings.Split(strings.TrimPrefix(routes.Normalize(sourcePath), "/"), "/")
	if len(base) == 1 && base[0] == "" {
		base = nil
	}
	for _, seg := range strings.Split(target, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(base) > 0 {
				base = base[:len(base)-1]
			}
		default:
			base = append(base, seg)
		}
	}
	return routes.Normalize("/" + strings.Join(base, "/"))
}

func (g *Graph) addEdge(e FlowEdge) {
	key := fmt.Sprintf("%s|%s|%s|%s", e.Source, e.Target, e.Type, e.Label)
	if g.edgeSeen[key] {
		return
	}
	g.edgeSeen[key] = true
	g.edges = append(g.edges, e)
}

func displayName(r *routes.Route) string {
	if r.Component != "" {
		name := r.Component
		for _, suffix := range []string{"Component", "Page", "View"} {
			name = strings.TrimSuffix(name, suffix)
		}
		if name != "" {
			return name
		}
	}
	if r.FullPath == "/" {
		return "Home"
	}
	segments := strings.Split(strings.TrimPrefix(r.FullPath, "/"), "/")
	last := segments[len(segments)-1]
	if strings.HasPrefix(last, ":") {
		return strings.TrimPrefix(last, ":")
	}
	return last
}

func pathDepth(fullPath string) int {
	if fullPath == "/" {
		return 0
	}
	return strings.Count(fullPath, "/")
}

func category(fullPath string) string {
	if fullPath == "/" {
		return "root"
	}
	segments := strings.Split(strings.TrimPrefix(fullPath, "/"), "/")
	return segments[0]
}

func importance(r *routes.Route) int {
	switch {
	case r.IsRoot || r.FullPath == "/":
		return 3
	case pathDepth(r.FullPath) == 1:
		return 2
	default:
		return 1
	}
}

// # internal/output/dot.go
package output

import (
	"fmt"
	"strings"

	"github.com/ksrpraneeth/UserPravah/internal/graph"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
	"github.com/ksrpraneeth/UserPravah/internal/shared/util"
)

type DOTGenerator struct {
	graph *graph.Graph
}

func NewDOTGenerator(g *graph.Graph) *DOTGenerator {
	return &DOTGenerator{graph: g}
}

// depth -> fill color, darker toward the root.
var depthColors = []string{"#DBEAFE", "#BFDBFE", "#93C5FD", "#60A5FA", "#3B82F6"}

func nodeColor(depth int) string {
	if depth >= len(depthColors) {
		depth = len(depthColors) - 1
	}
	return depthColors[len(depthColors)-1-depth]
}

func (d *DOTGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph navigation {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.5;\n")
	buf.WriteString("  splines=polyline;\n")
	buf.WriteString("  overlap=false;\n\n")

	// Cluster nodes by top-level path segment.
	byCategory := make(map[string][]*graph.RouteNode)
	for _, n := range d.graph.Nodes() {
		byCategory[n.Category] = append(byCategory[n.Category], n)
	}
	for _, cat := range util.SortedStringKeys(byCategory) {
		nodes := byCategory[cat]
		if cat != "root" && len(nodes) > 1 {
			fmt.Fprintf(&buf, "  subgraph cluster_%s {\n", sanitizeID(cat))
			fmt.Fprintf(&buf, "    label=%q;\n", cat)
			buf.WriteString("    style=filled;\n")
			buf.WriteString("    color=\"whitesmoke\";\n")
			for _, n := range nodes {
				writeNode(&buf, n, "    ")
			}
			buf.WriteString("  }\n\n")
			continue
		}
		for _, n := range nodes {
			writeNode(&buf, n, "  ")
		}
	}
	buf.WriteString("\n")

	for _, e := range d.graph.Edges() {
		attrs := edgeAttrs(e)
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, attrs)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func writeNode(buf *strings.Builder, n *graph.RouteNode, indent string) {
	label := fmt.Sprintf("%s\\n%s", n.DisplayName, n.OriginalPath)
	if len(n.Guards) > 0 {
		label += fmt.Sprintf("\\n[%s]", strings.Join(n.Guards, ", "))
	}
	attrs := fmt.Sprintf("label=\"%s\", fillcolor=%q", label, nodeColor(n.PathDepth))
	if n.Importance >= 3 {
		attrs += ", penwidth=2"
	}
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, n.ID, attrs)
}

func edgeAttrs(e graph.FlowEdge) string {
	var attrs []string
	switch e.Type {
	case routes.FlowRedirect:
		attrs = append(attrs, "style=dashed", "color=\"#F59E0B\"")
	case routes.FlowHierarchy:
		attrs = append(attrs, "style=dotted", "color=\"#9CA3AF\"", "arrowhead=empty")
	case routes.FlowDynamic:
		attrs = append(attrs, "color=\"#10B981\"")
	default:
		attrs = append(attrs, "color=\"#374151\"")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	return strings.Join(attrs, ", ")
}

func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// # internal/output/mermaid.go
package output

import (
	"fmt"
	"strings"

	"github.com/ksrpraneeth/UserPravah/internal/graph"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

type MermaidGenerator struct {
	graph *graph.Graph
}

func NewMermaidGenerator(g *graph.Graph) *MermaidGenerator {
	return &MermaidGenerator{graph: g}
}

func (m *MermaidGenerator) Generate() (string, error) {
	var b strings.Builder
	b.WriteString("%%{init: {'flowchart': {'nodeSpacing': 60, 'rankSpacing': 90, 'curve': 'basis'}}}%%\n")
	b.WriteString("flowchart LR\n")

	ids := make(map[string]string, len(m.graph.Nodes()))
	for i, n := range m.graph.Nodes() {
		id := fmt.Sprintf("r%d", i)
		ids[n.ID] = id
		fmt.Fprintf(&b, "    %s[\"%s<br/>%s\"]\n", id, escapeMermaid(n.DisplayName), escapeMermaid(n.OriginalPath))
	}
	b.WriteString("\n")

	for _, e := range m.graph.Edges() {
		src, okSrc := ids[e.Source]
		dst, okDst := ids[e.Target]
		if !okSrc || !okDst {
			continue
		}
		arrow := "-->"
		switch e.Type {
		case routes.FlowRedirect:
			arrow = "-.->"
		case routes.FlowHierarchy:
			arrow = "---"
		}
		if e.Label != "" {
			fmt.Fprintf(&b, "    %s %s|%s| %s\n", src, arrow, escapeMermaid(e.Label), dst)
		} else {
			fmt.Fprintf(&b, "    %s %s %s\n", src, arrow, dst)
		}
	}

	b.WriteString("\n    classDef root fill:#3B82F6,color:#fff;\n")
	for _, n := range m.graph.Nodes() {
		if n.Importance >= 3 {
			fmt.Fprintf(&b, "    class %s root;\n", ids[n.ID])
		}
	}

	return b.String(), nil
}

func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, "#quot;")
	s = strings.ReplaceAll(s, "|", "/")
	return s
}

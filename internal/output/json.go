// # internal/output/json.go
package output

import (
	"encoding/json"

	"github.com/ksrpraneeth/UserPravah/internal/graph"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

// JSONExport is the machine-readable form of a full run: the canonical
// analysis result plus the assembled graph.
type JSONExport struct {
	Framework string                  `json:"framework"`
	Routes    []*routes.Route         `json:"routes"`
	Flows     []routes.NavigationFlow `json:"flows"`
	Menus     []routes.MenuDefinition `json:"menus"`
	Nodes     []*graph.RouteNode      `json:"nodes"`
	Edges     []graph.FlowEdge        `json:"edges"`
}

type JSONGenerator struct {
	result *routes.AnalysisResult
	graph  *graph.Graph
}

func NewJSONGenerator(result *routes.AnalysisResult, g *graph.Graph) *JSONGenerator {
	return &JSONGenerator{result: result, graph: g}
}

func (j *JSONGenerator) Generate() (string, error) {
	export := JSONExport{
		Framework: j.result.Framework,
		Routes:    j.result.Routes,
		Flows:     j.result.Flows,
		Menus:     j.result.Menus,
		Nodes:     j.graph.Nodes(),
		Edges:     j.graph.Edges(),
	}
	if export.Routes == nil {
		export.Routes = []*routes.Route{}
	}
	if export.Flows == nil {
		export.Flows = []routes.NavigationFlow{}
	}
	if export.Menus == nil {
		export.Menus = []routes.MenuDefinition{}
	}
	if export.Nodes == nil {
		export.Nodes = []*graph.RouteNode{}
	}
	if export.Edges == nil {
		export.Edges = []graph.FlowEdge{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// # internal/output/openapi.go
package output

import (
	"encoding/json"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/ksrpraneeth/UserPravah/internal/graph"
)

// OpenAPIGenerator emits an OpenAPI 3 skeleton with one path item per
// concrete route, ":param" segments rewritten to "{param}". Useful as a
// starting point for an API contract mirroring the page map.
type OpenAPIGenerator struct {
	graph   *graph.Graph
	title   string
	version string
}

func NewOpenAPIGenerator(g *graph.Graph, title, version string) *OpenAPIGenerator {
	if title == "" {
		title = "Navigation map"
	}
	if version == "" {
		version = "0.0.0"
	}
	return &OpenAPIGenerator{graph: g, title: title, version: version}
}

func (o *OpenAPIGenerator) Generate() (string, error) {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   o.title,
			Version: o.version,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, n := range o.graph.Nodes() {
		apiPath, params := toTemplatePath(n.OriginalPath)

		op := &openapi3.Operation{
			OperationID: operationID(n),
			Summary:     n.DisplayName,
			Responses:   openapi3.NewResponses(),
		}

		item := &openapi3.PathItem{Get: op}
		for _, name := range params {
			param := openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema())
			item.Parameters = append(item.Parameters, &openapi3.ParameterRef{Value: param})
		}
		doc.Paths.Set(apiPath, item)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// toTemplatePath rewrites ":id" style segments to "{id}" and returns the
// parameter names in order.
func toTemplatePath(routePath string) (string, []string) {
	segments := strings.Split(routePath, "/")
	var params []string
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			name := strings.TrimPrefix(seg, ":")
			segments[i] = "{" + name + "}"
			params = append(params, name)
		}
	}
	return strings.Join(segments, "/"), params
}

func operationID(n *graph.RouteNode) string {
	if n.OriginalPath == "/" {
		return "getRoot"
	}
	var b strings.Builder
	b.WriteString("get")
	for _, seg := range strings.Split(strings.TrimPrefix(n.OriginalPath, "/"), "/") {
		seg = strings.TrimPrefix(seg, ":")
		seg = sanitizeID(seg)
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}

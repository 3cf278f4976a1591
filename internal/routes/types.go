// # internal/routes/types.go
package routes

// Route is one entry in the flattened routing table. FullPath is the
// normalized absolute path and acts as the primary key; Children is only
// populated while a framework analyzer is still descending into a
// declaration and is not meaningful afterwards.
type Route struct {
	Path       string            `json:"path"`
	FullPath   string            `json:"fullPath"`
	Component  string            `json:"component,omitempty"`
	Children   []*Route          `json:"-"`
	Redirect   bool              `json:"-"`
	RedirectTo string            `json:"redirectTo,omitempty"`
	LazyModule string            `json:"lazyModule,omitempty"`
	Guards     []string          `json:"guards,omitempty"`
	Data       map[string]string `json:"data,omitempty"`
	IsRoot     bool              `json:"isRoot,omitempty"`
	SourceFile string            `json:"sourceFile,omitempty"`
}

// HasRedirect reports whether the route declares a redirect target.
// RedirectTo == "" is a valid redirect (to the parent context), so the
// flag is tracked separately from the string value.
func (r *Route) HasRedirect() bool {
	return r.Redirect
}

type FlowType string

const (
	FlowStatic    FlowType = "static"
	FlowDynamic   FlowType = "dynamic"
	FlowRedirect  FlowType = "redirect"
	FlowHierarchy FlowType = "hierarchy"
	FlowGuard     FlowType = "guard"
)

// NavigationFlow is one discovered navigation trigger. From is the
// identifier of the enclosing declaration (or a file-derived name), To the
// target path as written, possibly relative and possibly containing
// derived placeholders such as ":id".
type NavigationFlow struct {
	From  string   `json:"from"`
	To    string   `json:"to"`
	Type  FlowType `json:"type"`
	Label string   `json:"label,omitempty"`
}

// MenuDefinition is a lightweight menu entry extracted from
// configuration-like arrays carrying title/path pairs.
type MenuDefinition struct {
	Title    string           `json:"title"`
	Path     string           `json:"path"`
	Roles    []string         `json:"roles,omitempty"`
	Children []MenuDefinition `json:"children,omitempty"`
}

// AnalysisResult is the full output of one framework analyzer run.
type AnalysisResult struct {
	Framework string           `json:"framework"`
	Routes    []*Route         `json:"routes"`
	Flows     []NavigationFlow `json:"flows"`
	Menus     []MenuDefinition `json:"menus"`
	Warnings  []string         `json:"warnings,omitempty"`
}

// # internal/analyzer/angular/resolver.go
package angular

import (
	"fmt"
	"log/slog"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ksrpraneeth/UserPravah/internal/analyzer"
	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

// guardProps are the route properties carrying guard identifier arrays,
// in the order they contribute to Route.Guards.
var guardProps = []string{"canActivate", "canActivateChild", "canMatch", "canLoad", "canDeactivate"}

// resolver walks route-configuration arrays from the bootstrap call down,
// across lazy module boundaries. Expansion of a (lazy target, parent
// path) pair happens at most once; shared and cyclic module graphs are a
// legitimate topology, not an error.
type resolver struct {
	proj *project.Project
	col  *routes.Collection

	processedPairs map[string]bool // lazy target | parent fullPath
	seenArrays     map[string]bool // file | node offset | parent fullPath
	warnings       []string
}

func newResolver(p *project.Project, col *routes.Collection) *resolver {
	return &resolver{
		proj:           p,
		col:            col,
		processedPairs: make(map[string]bool),
		seenArrays:     make(map[string]bool),
	}
}

// run locates the composition root and resolves the full route table.
// A project with no discoverable registration yields an empty table, not
// an error.
func (r *resolver) run() {
	roots := r.findRegistrations("RouterModule.forRoot", "provideRouter")
	if len(roots) == 0 {
		roots = r.findRegistrations("RouterModule.forChild")
		if len(roots) > 0 {
			r.warnf("no RouterModule.forRoot or provideRouter bootstrap found; falling back to %d forChild registration(s)", len(roots))
		}
	}
	if len(roots) == 0 {
		r.warnf("no route registration found; route table is empty")
		return
	}

	for _, reg := range roots {
		r.resolveRouteArg(reg.file, reg.arg, "/")
	}
}

type registration struct {
	file *project.SourceFile
	arg  *sitter.Node
}

func (r *resolver) findRegistrations(callees ...string) []registration {
	var out []registration
	for _, sf := range r.proj.Files() {
		if sf.Language == project.LangHTML {
			continue
		}
		for _, call := range project.FindAll(sf.Root(), "call_expression") {
			fn := call.ChildByFieldName("function")
			if fn == nil {
				continue
			}
			name := sf.Text(fn)
			matched := false
			for _, callee := range callees {
				if name == callee {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			if arg := firstArgument(call); arg != nil {
				out = append(out, registration{file: sf, arg: arg})
			}
		}
	}
	return out
}

// resolveRouteArg accepts the argument of a registration call: either the
// route array itself or an identifier resolving to one.
func (r *resolver) resolveRouteArg(sf *project.SourceFile, arg *sitter.Node, parent string) {
	switch arg.Kind() {
	case "array":
		r.resolveArray(sf, arg, parent)
	case "identifier":
		declFile, arr := r.declaredArray(sf, sf.Text(arg))
		if arr == nil {
			r.warnf("route table %s in %s has no resolvable declaration", sf.Text(arg), sf.Path)
			return
		}
		r.resolveArray(declFile, arr, parent)
	}
}

// declaredArray resolves an identifier to an array-valued declaration,
// locally or across files. Ambiguity takes the first viable site.
func (r *resolver) declaredArray(sf *project.SourceFile, name string) (*project.SourceFile, *sitter.Node) {
	for _, decl := range r.proj.ResolveIdentifier(sf, name) {
		if decl.Node.Kind() != "variable_declarator" {
			continue
		}
		value := decl.Node.ChildByFieldName("value")
		if value == nil {
			continue
		}
		if value.Kind() == "array" {
			return decl.File, value
		}
		// satisfies Routes via `... as Routes`
		if value.Kind() == "as_expression" {
			if inner := value.Child(0); inner != nil && inner.Kind() == "array" {
				return decl.File, inner
			}
		}
	}
	return nil, nil
}

func (r *resolver) resolveArray(sf *project.SourceFile, arr *sitter.Node, parent string) {
	key := fmt.Sprintf("%s|%d|%s", sf.Path, arr.StartByte(), parent)
	if r.seenArrays[key] {
		return
	}
	r.seenArrays[key] = true

	for i := uint(0); i < arr.ChildCount(); i++ {
		el := arr.Child(i)
		switch el.Kind() {
		case "object":
			r.resolveObject(sf, el, parent)
		case "identifier":
			if declFile, nested := r.declaredArray(sf, sf.Text(el)); nested != nil {
				r.resolveArray(declFile, nested, parent)
			}
		case "spread_element":
			for _, id := range project.NamedChildren(el, "identifier") {
				if declFile, nested := r.declaredArray(sf, sf.Text(id)); nested != nil {
					r.resolveArray(declFile, nested, parent)
				}
			}
		}
	}
}

func (r *resolver) resolveObject(sf *project.SourceFile, obj *sitter.Node, parent string) {
	var (
		pathVal      string
		hasPath      bool
		children     *sitter.Node
		childrenFile *project.SourceFile
	)

	if pathNode := project.PropValue(obj, sf, "path"); pathNode != nil {
		v, ok := project.StringValue(pathNode, sf)
		if !ok {
			// A route segment built from a runtime value cannot be
			// represented concretely.
			r.warnf("non-literal route path in %s skipped", sf.Path)
			return
		}
		pathVal = v
		hasPath = true
	}

	route := &routes.Route{Path: pathVal, SourceFile: sf.Path}

	if comp := project.PropValue(obj, sf, "component"); comp != nil && comp.Kind() == "identifier" {
		route.Component = sf.Text(comp)
	}
	if lazyComp := project.PropValue(obj, sf, "loadComponent"); lazyComp != nil && route.Component == "" {
		if target, exported := r.deferredTarget(sf, lazyComp); target != "" {
			if exported != "" {
				route.Component = exported
			} else {
				route.Component = analyzer.DeriveNameFromFile(target)
			}
		}
	}

	if redirect := project.PropValue(obj, sf, "redirectTo"); redirect != nil {
		if v, ok := project.StringValue(redirect, sf); ok {
			route.Redirect = true
			route.RedirectTo = v
		} else {
			r.warnf("non-literal redirectTo in %s ignored", sf.Path)
		}
	}

	if lazy := project.PropValue(obj, sf, "loadChildren"); lazy != nil {
		if target, _ := r.deferredTarget(sf, lazy); target != "" {
			route.LazyModule = target
		} else {
			r.warnf("unresolvable loadChildren in %s", sf.Path)
		}
	}

	if childrenNode := project.PropValue(obj, sf, "children"); childrenNode != nil {
		switch childrenNode.Kind() {
		case "array":
			children, childrenFile = childrenNode, sf
		case "identifier":
			// The declaration may live in another file; its nodes index
			// into that file's bytes, not this one's.
			if declFile, nested := r.declaredArray(sf, sf.Text(childrenNode)); nested != nil {
				children, childrenFile = nested, declFile
			}
		}
	}

	for _, prop := range guardProps {
		if arr := project.PropValue(obj, sf, prop); arr != nil {
			route.Guards = append(route.Guards, project.IdentifierList(arr, sf)...)
		}
	}

	if data := project.PropValue(obj, sf, "data"); data != nil && data.Kind() == "object" {
		route.Data = make(map[string]string)
		for _, keyName := range project.PropKeys(data, sf) {
			value := project.PropValue(data, sf, keyName)
			if value == nil {
				continue
			}
			if v, ok := project.StringValue(value, sf); ok {
				route.Data[keyName] = v
			} else {
				route.Data[keyName] = strings.TrimSpace(sf.Text(value))
			}
		}
	}

	// An element with no routing property at all is not a route; this is
	// common (provider objects, test fixtures) and intentionally silent.
	if !hasPath && route.Component == "" && children == nil && !route.Redirect && route.LazyModule == "" {
		return
	}

	route.FullPath = routes.Join(parent, pathVal)
	if parent == "/" && pathVal == "" && !r.col.HasRoot() {
		route.IsRoot = true
	}
	r.col.Add(route)

	// Children nest under the just-computed fullPath, not the parent's
	// context.
	if children != nil {
		r.resolveArray(childrenFile, children, route.FullPath)
	}
	if route.LazyModule != "" {
		r.resolveLazy(sf, route.LazyModule, route.FullPath)
	}
}

// deferredTarget extracts the import target of a deferred-load expression
// and, when present, the exported name selected from the loaded module.
// Accepts `() => import('./x').then(m => m.X)`, plain dynamic imports,
// legacy './x#Export' strings, and one level of identifier indirection.
func (r *resolver) deferredTarget(sf *project.SourceFile, value *sitter.Node) (target, exported string) {
	switch value.Kind() {
	case "string", "template_string":
		if v, ok := project.StringValue(value, sf); ok {
			if idx := strings.Index(v, "#"); idx >= 0 {
				return v[:idx], v[idx+1:]
			}
			return v, ""
		}
		return "", ""
	case "identifier":
		for _, decl := range r.proj.ResolveIdentifier(sf, sf.Text(value)) {
			if decl.Node.Kind() != "variable_declarator" {
				continue
			}
			if v := decl.Node.ChildByFieldName("value"); v != nil && v.Kind() != "identifier" {
				return r.deferredTarget(decl.File, v)
			}
		}
		return "", ""
	}

	// Arrow or function body: find the dynamic import call.
	for _, call := range project.FindAll(value, "call_expression") {
		fn := call.ChildByFieldName("function")
		if fn == nil || fn.Kind() != "import" {
			continue
		}
		arg := firstArgument(call)
		if arg == nil {
			continue
		}
		v, ok := project.StringValue(arg, sf)
		if !ok {
			return "", ""
		}
		return v, exportedFromThen(sf, value)
	}
	return "", ""
}

func (r *resolver) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.warnings = append(r.warnings, msg)
	slog.Warn(msg)
}

// exportedFromThen finds the `.then(m => m.X)` projection, if any.
func exportedFromThen(sf *project.SourceFile, value *sitter.Node) string {
	for _, member := range project.FindAll(value, "member_expression") {
		obj := member.ChildByFieldName("object")
		prop := member.ChildByFieldName("property")
		if obj == nil || prop == nil || obj.Kind() != "identifier" {
			continue
		}
		name := sf.Text(prop)
		if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
			return name
		}
	}
	return ""
}

// resolveLazy expands a deferred-module reference under parentPath. Each
// (target, parentPath) pair expands at most once.
func (r *resolver) resolveLazy(sf *project.SourceFile, target, parentPath string) {
	memo := target + "|" + parentPath
	if r.processedPairs[memo] {
		return
	}
	r.processedPairs[memo] = true

	tf, ok := r.proj.ResolveImportPath(sf, target)
	if !ok {
		r.warnf("lazy route module %q referenced in %s not found", target, sf.Path)
		return
	}
	r.resolveModuleFile(tf, parentPath)
}

// resolveModuleFile extracts the route arrays a module file registers and
// follows its imported routing containers transitively.
func (r *resolver) resolveModuleFile(tf *project.SourceFile, parentPath string) {
	found := false
	for _, reg := range r.registrationsIn(tf) {
		r.resolveRouteArg(tf, reg, parentPath)
		found = true
	}

	if !found {
		// Standalone route files export the array directly (default
		// export or a Routes-typed const).
		for _, arr := range r.exportedRouteArrays(tf) {
			r.resolveArray(tf, arr, parentPath)
			found = true
		}
	}

	// NgModule imports may pull in another container's route table.
	for _, name := range r.moduleImportNames(tf) {
		for _, decl := range r.proj.ResolveIdentifier(tf, name) {
			if decl.File.Path == tf.Path || decl.Node.Kind() != "class_declaration" {
				continue
			}
			memo := decl.File.Path + "|" + parentPath
			if r.processedPairs[memo] {
				continue
			}
			r.processedPairs[memo] = true
			r.resolveModuleFile(decl.File, parentPath)
		}
	}

	if !found {
		slog.Debug("module file registers no routes", "path", tf.Path)
	}
}

func (r *resolver) registrationsIn(tf *project.SourceFile) []*sitter.Node {
	var out []*sitter.Node
	for _, call := range project.FindAll(tf.Root(), "call_expression") {
		fn := call.ChildByFieldName("function")
		if fn == nil {
			continue
		}
		switch tf.Text(fn) {
		case "RouterModule.forChild", "RouterModule.forRoot", "provideRouter":
			if arg := firstArgument(call); arg != nil {
				out = append(out, arg)
			}
		}
	}
	return out
}

func (r *resolver) exportedRouteArrays(tf *project.SourceFile) []*sitter.Node {
	var out []*sitter.Node
	for _, exp := range project.FindAll(tf.Root(), "export_statement") {
		for _, arr := range project.FindAll(exp, "array") {
			if isRouteArray(arr, tf) {
				out = append(out, arr)
				break
			}
		}
	}
	return out
}

// moduleImportNames lists identifiers in @NgModule imports arrays,
// RouterModule entries excluded.
func (r *resolver) moduleImportNames(tf *project.SourceFile) []string {
	var out []string
	for _, dec := range project.FindAll(tf.Root(), "decorator") {
		if !strings.HasPrefix(tf.Text(dec), "@NgModule") {
			continue
		}
		for _, obj := range project.FindAll(dec, "object") {
			imports := project.PropValue(obj, tf, "imports")
			if imports == nil || imports.Kind() != "array" {
				continue
			}
			for _, id := range project.NamedChildren(imports, "identifier") {
				name := tf.Text(id)
				if name != "RouterModule" && name != "CommonModule" {
					out = append(out, name)
				}
			}
			break
		}
		break
	}
	return out
}

// isRouteArray reports whether an array literal looks like a route table:
// at least one object element carrying a recognizable routing property.
func isRouteArray(arr *sitter.Node, sf *project.SourceFile) bool {
	for _, obj := range project.NamedChildren(arr, "object") {
		for _, key := range project.PropKeys(obj, sf) {
			switch key {
			case "path", "component", "redirectTo", "loadChildren", "loadComponent", "children":
				return true
			}
		}
	}
	return false
}

func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(", ")", ",", "comment":
			continue
		}
		return child
	}
	return nil
}

// # internal/analyzer/nextjs/analyzer.go
package nextjs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ksrpraneeth/UserPravah/internal/analyzer"
	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
	"github.com/ksrpraneeth/UserPravah/internal/shared/observability"
)

// Analyzer implements the Next.js ruleset. Routing is file-system based,
// so the route table comes from the pages/ and app/ directory layout
// rather than a declarative configuration; flows come from <Link href>
// and router.push/replace calls.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Name() string { return "nextjs" }

func (a *Analyzer) Detect(p *project.Project) bool {
	for _, name := range []string{"next.config.js", "next.config.mjs", "next.config.ts"} {
		if _, err := os.Stat(filepath.Join(p.Root, name)); err == nil {
			return true
		}
	}
	pkg, err := os.ReadFile(filepath.Join(p.Root, "package.json"))
	if err != nil {
		return false
	}
	return strings.Contains(string(pkg), `"next"`)
}

func (a *Analyzer) Analyze(ctx context.Context, p *project.Project) (*routes.AnalysisResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "nextjs.Analyze")
	defer span.End()
	_ = ctx

	col := routes.NewCollection()

	start := time.Now()
	for _, sf := range p.Files() {
		if route, ok := routeForFile(sf); ok {
			if !col.HasRoot() && route.FullPath == "/" {
				route.IsRoot = true
			}
			col.Add(route)
		}
	}
	observability.AnalysisDuration.WithLabelValues("routes").Observe(time.Since(start).Seconds())

	start = time.Now()
	flows := extractFlows(p)
	observability.AnalysisDuration.WithLabelValues("flows").Observe(time.Since(start).Seconds())

	return &routes.AnalysisResult{
		Framework: a.Name(),
		Routes:    col.Routes(),
		Flows:     flows,
		Menus:     analyzer.ExtractMenus(p),
		Warnings:  col.Warnings(),
	}, nil
}

// routeForFile maps a source file to a route when it is a page: either
// pages/**/<name> or app/**/page.<ext>.
func routeForFile(sf *project.SourceFile) (*routes.Route, bool) {
	if sf.Language == project.LangHTML {
		return nil, false
	}
	rel := sf.Path

	if dir, ok := stripRouteRoot(rel, "pages"); ok {
		return pagesRoute(sf, dir)
	}
	if dir, ok := stripRouteRoot(rel, "app"); ok {
		return appRoute(sf, dir)
	}
	return nil, false
}

func stripRouteRoot(rel, root string) (string, bool) {
	for _, prefix := range []string{root + "/", "src/" + root + "/"} {
		if strings.HasPrefix(rel, prefix) {
			return strings.TrimPrefix(rel, prefix), true
		}
	}
	return "", false
}

func pagesRoute(sf *project.SourceFile, rel string) (*routes.Route, bool) {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	// API handlers and framework plumbing are not pages.
	if strings.HasPrefix(rel, "api/") || strings.HasPrefix(filepath.Base(rel), "_") {
		return nil, false
	}

	segments := routeSegments(strings.Split(rel, "/"))
	if len(segments) > 0 && segments[len(segments)-1] == "index" {
		segments = segments[:len(segments)-1]
	}

	fullPath := routes.Normalize("/" + strings.Join(segments, "/"))
	return &routes.Route{
		Path:       strings.TrimPrefix(fullPath, "/"),
		FullPath:   fullPath,
		Component:  pageComponent(sf, segments),
		SourceFile: sf.Path,
	}, true
}

func appRoute(sf *project.SourceFile, rel string) (*routes.Route, bool) {
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if base != "page" {
		return nil, false
	}

	dir := filepath.ToSlash(filepath.Dir(rel))
	var raw []string
	if dir != "." {
		raw = strings.Split(dir, "/")
	}

	var kept []string
	for _, seg := range raw {
		// Route groups and parallel slots do not contribute URL segments.
		if strings.HasPrefix(seg, "(") || strings.HasPrefix(seg, "@") {
			continue
		}
		kept = append(kept, seg)
	}
	segments := routeSegments(kept)

	fullPath := routes.Normalize("/" + strings.Join(segments, "/"))
	return &routes.Route{
		Path:       strings.TrimPrefix(fullPath, "/"),
		FullPath:   fullPath,
		Component:  pageComponent(sf, segments),
		SourceFile: sf.Path,
	}, true
}

// routeSegments applies the dynamic-segment notation: [id] -> :id,
// [...slug] and [[...slug]] -> catch-all.
func routeSegments(raw []string) []string {
	var out []string
	for _, seg := range raw {
		switch {
		case strings.HasPrefix(seg, "[[...") || strings.HasPrefix(seg, "[..."):
			out = append(out, "**")
		case strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]"):
			out = append(out, ":"+strings.Trim(seg, "[]"))
		default:
			out = append(out, seg)
		}
	}
	return out
}

// pageComponent prefers the default-exported function's name, falling
// back to a name derived from the route's last concrete segment.
func pageComponent(sf *project.SourceFile, segments []string) string {
	if name := defaultExportName(sf); name != "" {
		return name
	}
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg != "**" && !strings.HasPrefix(seg, ":") && seg != "index" {
			return analyzer.DeriveNameFromFile(seg) + "Page"
		}
	}
	return "HomePage"
}

func defaultExportName(sf *project.SourceFile) string {
	for _, exp := range project.FindAll(sf.Root(), "export_statement") {
		isDefault := false
		for i := uint(0); i < exp.ChildCount(); i++ {
			if exp.Child(i).Kind() == "default" {
				isDefault = true
				break
			}
		}
		if !isDefault {
			continue
		}
		for _, fn := range project.FindAll(exp, "function_declaration") {
			if name := fn.ChildByFieldName("name"); name != nil {
				return sf.Text(name)
			}
		}
		for _, class := range project.FindAll(exp, "class_declaration") {
			if name := class.ChildByFieldName("name"); name != nil {
				return sf.Text(name)
			}
		}
	}
	return ""
}

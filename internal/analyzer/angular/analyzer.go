// # internal/analyzer/angular/analyzer.go
package angular

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

// Analyzer implements the Angular extraction ruleset: declarative route
// configurations registered through RouterModule / provideRouter, plus
// routerLink and Router navigation flows.
type Analyzer struct{}

func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) Name() string { return "angular" }

func (a *Analyzer) Detect(p *project.Project) bool {
	if _, err := os.Stat(filepath.Join(p.Root, "angular.json")); err == nil {
		return true
	}
	pkg, err := os.ReadFile(filepath.Join(p.Root, "package.json"))
	if err != nil {
		return false
	}
	return strings.Contains(string(pkg), `"@angular/core"`)
}

func (a *Analyzer) Analyze(ctx context.Context, p *project.Project) (*routes.AnalysisResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "angular.Analyze")
	defer span.End()
	_ = ctx

	col := routes.NewCollection()

	start := time.Now()
	res := newResolver(p, col)
	res.run()
	observability.AnalysisDuration.WithLabelValues("routes").Observe(time.Since(start).Seconds())

	start = time.Now()
	flows := extractFlows(p)
	observability.AnalysisDuration.WithLabelValues("flows").Observe(time.Since(start).Seconds())

	menus := analyzer.ExtractMenus(p)

	warnings := append([]string{}, res.warnings...)
	warnings = append(warnings, col.Warnings()...)

	return &routes.AnalysisResult{
		Framework: a.Name(),
		Routes:    col.Routes(),
		Flows:     flows,
		Menus:     menus,
		Warnings:  warnings,
	}, nil
}

// # internal/analyzer/analyzer.go
package analyzer

import (
	"context"

	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
)

// Analyzer is one framework-specific extraction ruleset. Detect is a
// cheap heuristic on the project root; Analyze produces the full result.
type Analyzer interface {
	Name() string
	Detect(p *project.Project) bool
	Analyze(ctx context.Context, p *project.Project) (*routes.AnalysisResult, error)
}

// Select picks the analyzer for a project. An explicit override wins;
// otherwise the first analyzer whose Detect fires is used.
func Select(p *project.Project, registry []Analyzer, override string) (Analyzer, bool) {
	if override != "" {
		for _, a := range registry {
			if a.Name() == override {
				return a, true
			}
		}
		return nil, false
	}
	for _, a := range registry {
		if a.Detect(p) {
			return a, true
		}
	}
	return nil, false
}

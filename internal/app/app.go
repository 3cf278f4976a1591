package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ksrpraneeth/UserPravah/internal/analyzer"
	"github.com/ksrpraneeth/UserPravah/internal/analyzer/angular"
	"github.com/ksrpraneeth/UserPravah/internal/analyzer/nextjs"
	"github.com/ksrpraneeth/UserPravah/internal/config"
	"github.com/ksrpraneeth/UserPravah/internal/core/errors"
	"github.com/ksrpraneeth/UserPravah/internal/graph"
	"github.com/ksrpraneeth/UserPravah/internal/history"
	"github.com/ksrpraneeth/UserPravah/internal/output"
	"github.com/ksrpraneeth/UserPravah/internal/project"
	"github.com/ksrpraneeth/UserPravah/internal/routes"
	"github.com/ksrpraneeth/UserPravah/internal/shared/observability"
	"github.com/ksrpraneeth/UserPravah/internal/shared/util"
	"github.com/ksrpraneeth/UserPravah/internal/watcher"
)

// Update carries the outcome of one analysis run to subscribers such as
// the terminal UI.
type Update struct {
	RunID     string
	Framework string
	Routes    []*routes.Route
	Flows     []routes.NavigationFlow
	Warnings  []string
	NodeCount int
	EdgeCount int
	FileCount int
	Duration  time.Duration
}

// RunReport is the full product of one analysis run.
type RunReport struct {
	RunID     string
	Framework string
	Result    *routes.AnalysisResult
	Graph     *graph.Graph
	FileCount int
	Duration  time.Duration
	Trend     *history.Trend
}

type App struct {
	Config  *config.Config
	Root    string
	Version string

	histStore     *history.Store
	activeWatcher *watcher.Watcher

	mu         sync.Mutex
	lastReport *RunReport
	onUpdate   func(Update)
}

func New(cfg *config.Config, root, version string) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeValidation, "config is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, Root: abs, Version: version}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "open history store")
		}
		a.histStore = store
	}

	return a, nil
}

func (a *App) Close() error {
	if a.activeWatcher != nil {
		if err := a.activeWatcher.Close(); err != nil {
			slog.Warn("failed to close watcher", "error", err)
		}
	}
	if a.histStore != nil {
		return a.histStore.Close()
	}
	return nil
}

// SetUpdateHandler registers a callback invoked after every analysis
// run, including re-runs triggered by the watcher.
func (a *App) SetUpdateHandler(handler func(Update)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = handler
}

// Analyze performs one full run: load and parse the project, pick the
// framework analyzer, resolve routes and flows, and assemble the graph.
func (a *App) Analyze(ctx context.Context) (*RunReport, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Analyze")
	defer span.End()

	start := time.Now()
	runID := uuid.NewString()

	p, err := project.Load(a.Root, a.Config.Exclude.Dirs, a.Config.Exclude.Files)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "load project"), errors.CtxPath, a.Root)
	}
	defer p.Close()

	registry := []analyzer.Analyzer{angular.New(), nextjs.New()}
	selected, ok := analyzer.Select(p, registry, a.Config.Framework)
	if !ok {
		return nil, errors.AddContext(
			errors.New(errors.CodeNotSupported, "no framework detected"),
			errors.CtxPath, a.Root)
	}

	result, err := selected.Analyze(ctx, p)
	if err != nil {
		return nil, errors.AddContext(err, errors.CtxFramework, selected.Name())
	}

	g := graph.Assemble(result)
	duration := time.Since(start)

	report := &RunReport{
		RunID:     runID,
		Framework: selected.Name(),
		Result:    result,
		Graph:     g,
		FileCount: len(p.Files()),
		Duration:  duration,
	}

	a.publishMetrics(report)
	a.recordHistory(ctx, report)

	a.mu.Lock()
	a.lastReport = report
	handler := a.onUpdate
	a.mu.Unlock()

	slog.Info("analysis complete",
		"run_id", runID,
		"framework", report.Framework,
		"files", report.FileCount,
		"routes", len(result.Routes),
		"flows", len(result.Flows),
		"warnings", len(result.Warnings),
		"duration", duration)

	if handler != nil {
		handler(toUpdate(report))
	}
	return report, nil
}

func (a *App) publishMetrics(report *RunReport) {
	observability.RoutesDiscovered.Set(float64(len(report.Result.Routes)))
	observability.FlowsDiscovered.Set(float64(len(report.Result.Flows)))
	observability.GraphNodes.Set(float64(len(report.Graph.Nodes())))
	observability.GraphEdges.Set(float64(len(report.Graph.Edges())))
	observability.RunsTotal.WithLabelValues(report.Framework).Inc()
}

func (a *App) recordHistory(ctx context.Context, report *RunReport) {
	if a.histStore == nil {
		return
	}
	snap := history.Snapshot{
		SchemaVersion: history.SchemaVersion,
		RunID:         report.RunID,
		Timestamp:     time.Now().UTC(),
		Framework:     report.Framework,
		FileCount:     report.FileCount,
		RouteCount:    len(report.Result.Routes),
		FlowCount:     len(report.Result.Flows),
		MenuCount:     len(report.Result.Menus),
		NodeCount:     len(report.Graph.Nodes()),
		EdgeCount:     len(report.Graph.Edges()),
		WarningCount:  len(report.Result.Warnings),
		Duration:      report.Duration,
	}
	if err := a.histStore.Record(ctx, snap); err != nil {
		slog.Warn("failed to record history snapshot", "error", err)
		return
	}
	trend, ok, err := a.histStore.LatestTrend(ctx)
	if err != nil {
		slog.Warn("failed to compute history trend", "error", err)
		return
	}
	if ok {
		report.Trend = trend
	}
}

// GenerateOutputs renders the configured formats and returns the list
// of files written.
func (a *App) GenerateOutputs(report *RunReport) ([]string, error) {
	written := make([]string, 0, len(a.Config.Output.Formats))
	for _, format := range a.Config.Output.Formats {
		content, ext, err := a.render(report, format)
		if err != nil {
			return written, errors.AddContext(err, errors.CtxFormat, format)
		}
		target := filepath.Join(a.Config.Output.Directory, a.Config.Output.Basename+ext)
		if err := util.WriteStringWithDirs(target, content, 0o644); err != nil {
			return written, errors.AddContext(
				errors.Wrap(err, errors.CodeInternal, "write output"),
				errors.CtxFormat, format)
		}
		written = append(written, target)
	}
	return written, nil
}

func (a *App) render(report *RunReport, format string) (content, ext string, err error) {
	switch format {
	case "dot":
		content, err = output.NewDOTGenerator(report.Graph).Generate()
		return content, ".dot", err
	case "json":
		content, err = output.NewJSONGenerator(report.Result, report.Graph).Generate()
		return content, ".json", err
	case "mermaid":
		content, err = output.NewMermaidGenerator(report.Graph).Generate()
		return content, ".mmd", err
	case "openapi":
		content, err = output.NewOpenAPIGenerator(report.Graph, a.Config.Output.Title, a.Version).Generate()
		return content, ".openapi.json", err
	default:
		return "", "", errors.New(errors.CodeValidation, fmt.Sprintf("unknown output format %q", format))
	}
}

// LastReport returns the most recent run, if any.
func (a *App) LastReport() (*RunReport, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastReport, a.lastReport != nil
}

// History exposes the snapshot store, nil when history is disabled.
func (a *App) History() *history.Store { return a.histStore }

func toUpdate(report *RunReport) Update {
	return Update{
		RunID:     report.RunID,
		Framework: report.Framework,
		Routes:    append([]*routes.Route(nil), report.Result.Routes...),
		Flows:     append([]routes.NavigationFlow(nil), report.Result.Flows...),
		Warnings:  append([]string(nil), report.Result.Warnings...),
		NodeCount: len(report.Graph.Nodes()),
		EdgeCount: len(report.Graph.Edges()),
		FileCount: report.FileCount,
		Duration:  report.Duration,
	}
}

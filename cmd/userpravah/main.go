package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ksrpraneeth/UserPravah/internal/app"
	"github.com/ksrpraneeth/UserPravah/internal/config"
	"github.com/ksrpraneeth/UserPravah/internal/shared/observability"
)

var (
	configPath  = flag.String("config", "./userpravah.toml", "Path to config file")
	formats     = flag.String("format", "", "Comma-separated output formats: dot,json,mermaid,openapi")
	outputDir   = flag.String("output", "", "Output directory")
	framework   = flag.String("framework", "", "Force framework: angular or nextjs")
	watch       = flag.Bool("watch", false, "Re-run analysis on file changes")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode")
	metricsAddr = flag.String("metrics-addr", "", "Serve /metrics and /health on this address")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("userpravah v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err == nil {
				output = f
			} else {
				fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath != "./userpravah.toml" {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	applyFlagOverrides(cfg)

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	ctx := context.Background()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Telemetry.OTLPEndpoint, VERSION)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer shutdownTracing(ctx)
	}

	a, err := app.New(cfg, root, VERSION)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if cfg.Telemetry.MetricsAddr != "" {
		server := app.NewObservabilityServer(cfg.Telemetry.MetricsAddr, app.NewHealthService(a))
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
		defer server.Stop(ctx)
	}

	report, err := a.Analyze(ctx)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	written, err := a.GenerateOutputs(report)
	if err != nil {
		slog.Error("failed to generate outputs", "error", err)
		os.Exit(1)
	}

	if !*ui {
		printSummary(report, written)
	}

	if !*watch && !*ui {
		return
	}

	if *watch {
		if err := a.StartWatcher(ctx); err != nil {
			slog.Error("failed to start watcher", "error", err)
			os.Exit(1)
		}
	}

	if *ui {
		if err := runUI(a, report); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever in watch mode
		select {}
	}
}

func applyFlagOverrides(cfg *config.Config) {
	if *formats != "" {
		parts := strings.Split(*formats, ",")
		cfg.Output.Formats = cfg.Output.Formats[:0]
		for _, part := range parts {
			trimmed := strings.ToLower(strings.TrimSpace(part))
			if trimmed != "" {
				cfg.Output.Formats = append(cfg.Output.Formats, trimmed)
			}
		}
	}
	if *outputDir != "" {
		cfg.Output.Directory = *outputDir
	}
	if *framework != "" {
		cfg.Framework = strings.ToLower(strings.TrimSpace(*framework))
	}
	if *metricsAddr != "" {
		cfg.Telemetry.MetricsAddr = *metricsAddr
	}
}

func printSummary(report *app.RunReport, written []string) {
	fmt.Printf("Framework: %s\n", report.Framework)
	fmt.Printf("Files analyzed: %d\n", report.FileCount)
	fmt.Printf("Routes: %d | Flows: %d | Menus: %d\n",
		len(report.Result.Routes), len(report.Result.Flows), len(report.Result.Menus))
	fmt.Printf("Graph: %d nodes, %d edges\n", len(report.Graph.Nodes()), len(report.Graph.Edges()))
	if report.Trend != nil {
		fmt.Printf("Since last run: %+d routes, %+d flows, %+d warnings\n",
			report.Trend.DeltaRoutes, report.Trend.DeltaFlows, report.Trend.DeltaWarnings)
	}
	if len(report.Result.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(report.Result.Warnings))
		for _, w := range report.Result.Warnings {
			fmt.Printf("- %s\n", w)
		}
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}
	fmt.Printf("Completed in %s\n", report.Duration.Round(time.Millisecond))
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "userpravah", "userpravah.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "userpravah", "userpravah.log")
	}

	return "userpravah.log"
}

package app

import (
	"context"
	"log/slog"

	"github.com/ksrpraneeth/UserPravah/internal/watcher"
)

// StartWatcher begins watching the project tree and re-runs the full
// analysis whenever route sources change. Route resolution is cheap
// relative to parsing, so each change batch triggers a complete re-run
// rather than an incremental patch.
func (a *App) StartWatcher(ctx context.Context) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce.Duration,
		a.Config.Watch.MinInterval.Duration,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		func(paths []string) { a.handleChanges(ctx, paths) },
	)
	if err != nil {
		return err
	}
	a.activeWatcher = w
	return w.Watch([]string{a.Root})
}

func (a *App) handleChanges(ctx context.Context, paths []string) {
	if ctx.Err() != nil {
		return
	}
	slog.Info("detected changes", "count", len(paths))

	report, err := a.Analyze(ctx)
	if err != nil {
		slog.Error("re-analysis failed", "error", err)
		return
	}
	if _, err := a.GenerateOutputs(report); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}
}

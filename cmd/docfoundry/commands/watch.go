package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docfoundry/internal/logfields"
	"git.home.luguber.info/inful/docfoundry/internal/watch"
)

// WatchCmd re-runs the batch rewrite when documents or partials change.
type WatchCmd struct {
	InjectCmd `embed:""`
}

// Run executes the watch command until SIGINT or SIGTERM.
func (w *WatchCmd) Run(g *Global, root *CLI) error {
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(sigctx, g, root)
}

func (w *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	job, err := w.job(cfg, g.stdout())
	if err != nil {
		return err
	}

	sink := newMetricsSink(cfg)
	defer sink.flush()
	job.recorder = sink.recorder

	if _, err := job.run(ctx); err != nil {
		return err
	}

	dirs := job.watchDirs()
	slog.Debug("Watch directories", slog.Any("dirs", dirs), slog.Duration("debounce", cfg.DebounceDuration()))

	watcher := watch.New(dirs, cfg.DebounceDuration(), func(ctx context.Context) error {
		_, err := job.run(ctx)
		if err == nil {
			sink.flush()
		}
		return err
	})
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	slog.Info("Watch stopped", logfields.Count(len(dirs)))
	return nil
}

package app

import (
	"context"

	"github.com/vk/notarium/internal/ctxlog"
)

// Run compiles the configured project once, or keeps recompiling it until
// ctx is cancelled when the App is configured to watch.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "project", a.config.ProjectDir, "watch", a.config.Watch)

	if a.config.Watch {
		return a.watch(ctx)
	}
	if err := a.compiler.Compile(ctx, a.config.ProjectDir); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/notarium/internal/config"
	"github.com/vk/notarium/internal/ctxlog"
	"github.com/vk/notarium/internal/diag"
	"github.com/vk/notarium/internal/fsutil"
)

// watch compiles the project, then recompiles it whenever files below the
// project directory change, until ctx is cancelled. Events are collected
// for the debounce window before a compile starts. Compile failures are
// logged and do not stop the loop.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	root := a.config.ProjectDir
	output := filepath.Join(root, config.WebsiteDir)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return diag.Wrap(err, diag.CategoryIO, diag.CodeRead, "failed to start file watcher")
	}
	defer watcher.Close()

	ignored := func(path string) bool {
		if path == output || strings.HasPrefix(path, output+string(filepath.Separator)) {
			return true
		}
		base := filepath.Base(path)
		return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp")
	}
	addTree := func(dir string) error {
		dirs, err := fsutil.FindDirs(dir, ignored)
		if err != nil {
			return err
		}
		for _, d := range dirs {
			if err := watcher.Add(d); err != nil {
				return err
			}
		}
		return nil
	}
	if err := addTree(root); err != nil {
		return diag.Wrap(err, diag.CategoryIO, diag.CodeRead, "failed to watch %s", root)
	}

	a.recompile(ctx)
	logger.Info("Watching for changes.", "dir", root, "debounce", a.config.Debounce)

	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("Watch stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignored(event.Name) {
				continue
			}
			logger.Debug("File changed.", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "dir", event.Name, "error", err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(a.config.Debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(a.config.Debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)

		case <-timerC:
			timer, timerC = nil, nil
			a.recompile(ctx)
		}
	}
}

func (a *App) recompile(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	if err := a.compiler.Compile(ctx, a.config.ProjectDir); err != nil {
		logger.Error("Compile failed.", "error", err, "code", diag.Code(err))
		return
	}
	logger.Info("Compile finished.", "duration", time.Since(start))
}

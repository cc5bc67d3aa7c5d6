package app

import (
	"io"
	"log/slog"

	"github.com/vk/notarium/internal/compile"
	"github.com/vk/notarium/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	compiler *compile.Compiler
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger, compiling projects read by loader.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...compile.Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		compiler: compile.New(loader, opts...),
	}
}

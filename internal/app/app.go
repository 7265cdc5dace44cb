package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/blockgen/internal/atlas"
	"github.com/specialistvlad/blockgen/internal/config"
	"github.com/specialistvlad/blockgen/internal/template"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	loader    config.Loader
	evaluator template.Evaluator
	codec     atlas.Codec
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger. A nil loader reads groups with the HCL template
// evaluator.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	evaluator := template.NewHCL()
	if loader == nil {
		loader = &config.FileLoader{Evaluator: evaluator}
	}
	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		loader:    loader,
		evaluator: evaluator,
		codec:     atlas.PNG{},
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

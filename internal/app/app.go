package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/vk/kitresolve/internal/emit"
	"github.com/vk/kitresolve/internal/hcl_adapter"
	"github.com/vk/kitresolve/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	converter  config.Converter
	config     *Config
	httpServer *http.Server

	// current holds the last successfully rendered JSON document, served
	// by the health check server in watch mode.
	current atomic.Pointer[[]byte]
}

// NewApp is the constructor for the main application. Resolved documents
// are written to outW (unless cfg.OutPath is set) and logs to logW. When no
// modules are given the built-in adapters are registered.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	converter := hcl_adapter.NewConverter()
	reg := registry.New(converter)
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All adapter modules registered.", "count", len(modules), "adapters", reg.Names())

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A malformed options struct is a programmer error, so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  reg,
		converter: converter,
		config:    cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Current returns the last JSON document produced in watch mode.
func (a *App) Current() ([]byte, bool) {
	doc := a.current.Load()
	if doc == nil {
		return nil, false
	}
	return *doc, true
}

func (a *App) storeCurrent(r *config.Resolved) error {
	var buf bytes.Buffer
	if err := emit.JSON(&buf, r, a.converter); err != nil {
		return err
	}
	doc := buf.Bytes()
	a.current.Store(&doc)
	return nil
}

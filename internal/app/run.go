package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/vk/kitresolve/internal/emit"
	"github.com/vk/kitresolve/internal/notify"
)

// Run executes the main application logic: resolve once, or keep resolving
// on every change of the configuration file in watch mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "config_path", a.config.ConfigPath, "project_root", a.config.ProjectRoot)

	if a.config.Watch {
		return a.watch(ctx)
	}

	resolved, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := a.write(resolved); err != nil {
		return err
	}

	if a.config.NotifyURL != "" {
		pub, err := a.dial(ctx)
		if err != nil {
			return err
		}
		defer pub.Close()
		if err := a.publish(ctx, pub, resolved); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// write renders the resolved configuration to the output file, or to outW.
func (a *App) write(r *config.Resolved) error {
	var buf bytes.Buffer
	if err := emit.Write(&buf, a.config.Format, r, a.converter, a.config.TSBase); err != nil {
		return fmt.Errorf("failed to render %s output: %w", a.config.Format, err)
	}

	if a.config.OutPath == "" {
		_, err := a.outW.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(a.config.OutPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.logger.Info("Output written.", "path", a.config.OutPath, "format", a.config.Format)
	return nil
}

func (a *App) dial(ctx context.Context) (*notify.Publisher, error) {
	pub, err := notify.Dial(ctx, a.config.NotifyURL, notify.Options{Namespace: a.config.NotifyNamespace})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to dev server: %w", err)
	}
	a.logger.Info("Connected to dev server.", "url", a.config.NotifyURL)
	return pub, nil
}

func (a *App) publish(ctx context.Context, pub *notify.Publisher, r *config.Resolved) error {
	doc, err := emit.NewDocument(r, a.converter)
	if err != nil {
		return err
	}
	return pub.Publish(ctx, notify.EventResolved, doc)
}

// watch polls the configuration file and re-resolves it whenever its
// modification time or size changes. Resolution errors are reported and
// the previous output is kept.
func (a *App) watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Info("👀 Watching configuration for changes.", "path", a.config.ConfigPath, "interval", a.config.Interval)

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx, a.config.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx)
	}

	var pub *notify.Publisher
	if a.config.NotifyURL != "" {
		var err error
		if pub, err = a.dial(ctx); err != nil {
			return err
		}
		defer pub.Close()
	}

	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	var last fileStamp
	for {
		stamp, err := stampOf(a.config.ConfigPath)
		if err != nil {
			logger.Warn("Cannot read configuration file.", "path", a.config.ConfigPath, "error", err)
		} else if stamp != last {
			last = stamp
			a.refresh(ctx, pub)
		}

		select {
		case <-ctx.Done():
			logger.Info("Stopped watching configuration.")
			return nil
		case <-ticker.C:
		}
	}
}

func (a *App) refresh(ctx context.Context, pub *notify.Publisher) {
	logger := ctxlog.FromContext(ctx)

	resolved, err := a.Resolve(ctx)
	if err != nil {
		logger.Error("Configuration is invalid, keeping previous output.", "error", err)
		if pub != nil {
			if perr := pub.Publish(ctx, notify.EventFailed, map[string]string{"error": err.Error()}); perr != nil {
				logger.Warn("Failed to notify dev server.", "error", perr)
			}
		}
		return
	}

	if err := a.storeCurrent(resolved); err != nil {
		logger.Error("Failed to render configuration.", "error", err)
		return
	}
	if err := a.write(resolved); err != nil {
		logger.Error("Failed to write configuration.", "error", err)
	}
	if pub != nil {
		if err := a.publish(ctx, pub, resolved); err != nil {
			logger.Warn("Failed to notify dev server.", "error", err)
		}
	}
}

// fileStamp identifies a version of the watched file. A rewrite that keeps
// the size and lands in the same mtime granule is not detected.
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, nil
}

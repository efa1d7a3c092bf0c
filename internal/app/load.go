package app

import (
	"context"
	"fmt"

	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/vk/kitresolve/internal/fsutil"
	"github.com/vk/kitresolve/internal/hcl_adapter"
	"github.com/vk/kitresolve/internal/json_adapter"
	"github.com/vk/kitresolve/internal/resolver"
	"github.com/vk/kitresolve/internal/yaml_adapter"
)

// loaderFor picks the format-specific loader from the file extension.
func loaderFor(path string) (config.Loader, error) {
	switch ext := fsutil.Ext(path); ext {
	case ".hcl":
		return hcl_adapter.NewLoader(), nil
	case ".json", ".jsonc":
		return json_adapter.NewLoader(), nil
	case ".yaml", ".yml":
		return yaml_adapter.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported configuration file extension %q for %s", ext, path)
	}
}

// Resolve loads the configured file and resolves it against the project root.
func (a *App) Resolve(ctx context.Context) (*config.Resolved, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading configuration...", "config_path", a.config.ConfigPath)

	loader, err := loaderFor(a.config.ConfigPath)
	if err != nil {
		return nil, err
	}

	desc, err := loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded into description.", "adapter", desc.Adapter.Name, "aliases", len(desc.Aliases))

	opts := []resolver.Option{resolver.WithRootCheck(nil)}
	if a.config.Sandbox {
		opts = append(opts, resolver.WithSandbox())
	}

	resolved, err := resolver.Resolve(ctx, desc, a.config.ProjectRoot, a.registry, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", a.config.ConfigPath, err)
	}
	logger.Info("Configuration resolved.", "adapter", resolved.Adapter.Name(), "aliases", resolved.AliasNames())
	return resolved, nil
}

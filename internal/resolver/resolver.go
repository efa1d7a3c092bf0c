package resolver

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/vk/kitresolve/internal/registry"
)

// Registry is the adapter registry consulted by Resolve.
type Registry interface {
	Lookup(ctx context.Context, sel config.AdapterSelector) (*registry.Adapter, error)
}

// Resolve validates desc against projectRoot and reg and returns the fully
// resolved configuration.
func Resolve(ctx context.Context, desc *config.Description, projectRoot string, reg Registry, opts ...Option) (*config.Resolved, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	logger := ctxlog.FromContext(ctx).With("project_root", projectRoot)
	logger.Debug("Resolving configuration.", "source", desc.Source, "adapter", desc.Adapter.Name, "aliases", len(desc.Aliases))

	root, err := checkRoot(projectRoot, s.stat)
	if err != nil {
		return nil, err
	}

	aliases, err := resolveAliases(root, desc.Aliases, s.sandbox)
	if err != nil {
		return nil, err
	}
	logger.Debug("Aliases resolved.", "count", len(aliases))

	adapter, err := resolveAdapter(ctx, desc.Adapter, reg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Adapter resolved.", "adapter", adapter.Name())

	return config.NewResolved(root, desc.Preprocess, adapter, aliases), nil
}

func checkRoot(projectRoot string, stat StatFunc) (string, error) {
	if projectRoot == "" {
		return "", newError(CodeInvalidProjectRoot, "projectRoot", "must not be empty")
	}
	if !filepath.IsAbs(projectRoot) {
		return "", newError(CodeInvalidProjectRoot, "projectRoot", "must be an absolute path (got %q)", projectRoot)
	}
	root := filepath.Clean(projectRoot)

	if stat != nil {
		info, err := stat(root)
		if err != nil {
			return "", &Error{Code: CodeInvalidProjectRoot, Field: "projectRoot", Err: err}
		}
		if !info.IsDir() {
			return "", newError(CodeInvalidProjectRoot, "projectRoot", "%q is not a directory", root)
		}
	}
	return root, nil
}

// resolveAliases walks the aliases in sorted order so the reported error
// does not depend on map iteration order.
func resolveAliases(root string, in map[string]string, sandbox bool) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for _, name := range slices.Sorted(maps.Keys(in)) {
		field := fmt.Sprintf("kit.alias[%q]", name)
		if strings.TrimSpace(name) == "" {
			return nil, newError(CodeInvalidAliasName, field, "alias names must not be empty")
		}

		rel := in[name]
		if strings.TrimSpace(rel) == "" {
			return nil, newError(CodeInvalidAliasPath, field, "path must not be empty")
		}

		abs := rel
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, rel)
		}
		abs = filepath.Clean(abs)

		if sandbox && !within(root, abs) {
			return nil, newError(CodeInvalidAliasPath, field, "%q escapes the project root", rel)
		}
		out[name] = abs
	}
	return out, nil
}

// within reports whether path is root or lies beneath it. Both must be clean
// absolute paths.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func resolveAdapter(ctx context.Context, sel config.AdapterSelector, reg Registry) (*registry.Adapter, error) {
	if sel.Name == "" {
		return nil, newError(CodeUnknownAdapter, "kit.adapter", "no adapter selected")
	}
	adapter, err := reg.Lookup(ctx, sel)
	switch {
	case err == nil:
		return adapter, nil
	case errors.Is(err, registry.ErrNotFound):
		return nil, &Error{Code: CodeUnknownAdapter, Field: "kit.adapter", Err: err}
	default:
		return nil, &Error{Code: CodeInvalidAdapterOptions, Field: "kit.adapter", Err: err}
	}
}

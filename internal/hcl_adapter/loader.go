package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Environ is exposed to expressions as `env`, in os.Environ form.
	Environ []string
}

// NewLoader creates a new HCL configuration loader that sees the process
// environment.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ()}
}

// Load parses a single HCL file and merges it over config.Defaults.
func (l *Loader) Load(ctx context.Context, path string) (*config.Description, error) {
	logger := ctxlog.FromContext(ctx).With("path", path)
	logger.Debug("HCL loader started.")

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	desc := config.Defaults()
	desc.Source = path

	if err := l.translate(ctx, newEvalContext(ctx, l.Environ), &root, desc); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "adapter", desc.Adapter.Name, "aliases", len(desc.Aliases))
	return desc, nil
}

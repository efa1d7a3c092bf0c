package registry

import (
	"context"
	"fmt"

	"github.com/vk/kitresolve/internal/config"
	"github.com/vk/kitresolve/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Adapter is a resolved adapter handle. It implements config.AdapterHandle.
type Adapter struct {
	name        string
	description string
	options     any
}

// Name returns the registered name of the adapter.
func (a *Adapter) Name() string { return a.name }

// Description returns the human readable description of the adapter.
func (a *Adapter) Description() string { return a.description }

// Options returns the decoded options struct, or nil when the adapter
// takes no options.
func (a *Adapter) Options() any { return a.options }

// Lookup resolves a selector into an Adapter handle. A fresh options struct
// is created for every call, so handles never share state.
func (r *Registry) Lookup(ctx context.Context, sel config.AdapterSelector) (*Adapter, error) {
	logger := ctxlog.FromContext(ctx).With("adapter", sel.Name)

	def, ok := r.adapters[sel.Name]
	if !ok {
		logger.Debug("Adapter lookup failed.", "known", r.Names())
		return nil, fmt.Errorf("%w: %q", ErrNotFound, sel.Name)
	}

	handle := &Adapter{name: sel.Name, description: def.Description}

	if def.NewOptions == nil {
		if !isEmpty(sel.Options) {
			return nil, fmt.Errorf("%w: adapter %q does not accept options", ErrInvalidOptions, sel.Name)
		}
		logger.Debug("Adapter resolved without options.")
		return handle, nil
	}

	options := def.NewOptions()
	if err := r.converter.DecodeValue(ctx, sel.Options, options); err != nil {
		return nil, fmt.Errorf("%w: adapter %q: %w", ErrInvalidOptions, sel.Name, err)
	}
	handle.options = options

	logger.Debug("Adapter resolved.")
	return handle, nil
}

// isEmpty reports whether v carries no options: null or an empty object.
func isEmpty(v cty.Value) bool {
	if v.IsNull() {
		return true
	}
	ty := v.Type()
	return (ty.IsObjectType() || ty.IsMapType()) && v.IsKnown() && v.LengthInt() == 0
}

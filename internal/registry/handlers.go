package registry

import (
	"fmt"
	"log/slog"
)

// RegisteredAdapter holds the compiled Go parts of a deployment adapter.
type RegisteredAdapter struct {
	Description string
	// NewOptions returns a pointer to a fresh options struct pre-filled
	// with the adapter's defaults. Nil means the adapter takes no options.
	NewOptions func() any
}

// RegisterAdapter registers an adapter under name.
func (r *Registry) RegisterAdapter(name string, adapter *RegisteredAdapter) {
	if name == "" {
		panic("adapter name must not be empty")
	}
	if adapter == nil {
		panic(fmt.Sprintf("adapter '%s' registered with a nil definition", name))
	}
	if _, exists := r.adapters[name]; exists {
		panic(fmt.Sprintf("adapter with name '%s' already registered", name))
	}
	slog.Debug("Registering adapter.", "name", name)
	r.adapters[name] = adapter
}

package registry

import (
	"errors"
	"maps"
	"slices"

	"github.com/vk/kitresolve/internal/config"
)

var (
	// ErrNotFound is returned by Lookup when no adapter is registered under
	// the requested name.
	ErrNotFound = errors.New("adapter not registered")
	// ErrInvalidOptions is returned by Lookup when the adapter options do
	// not decode into the adapter's options struct.
	ErrInvalidOptions = errors.New("invalid adapter options")
)

// Module is the interface that all built-in adapter modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all registered adapters for a single application instance.
// It is populated once at startup and only read afterwards.
type Registry struct {
	adapters  map[string]*RegisteredAdapter
	converter config.Converter
}

// New creates and initializes a new Registry instance. The converter is
// used to decode adapter options during Lookup.
func New(converter config.Converter) *Registry {
	return &Registry{
		adapters:  make(map[string]*RegisteredAdapter),
		converter: converter,
	}
}

// Names returns the names of all registered adapters in sorted order.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.adapters))
}

// Has reports whether an adapter is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.adapters[name]
	return ok
}

package node

import "github.com/vk/kitresolve/internal/registry"

// Name is the name the adapter is registered under.
const Name = "node"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options defines the settings of the node adapter.
type Options struct {
	Out         string `cty:"out"`
	Precompress bool   `cty:"precompress"`
	EnvPrefix   string `cty:"env_prefix"`
}

// DefaultOptions returns the options used when the configuration sets none.
func DefaultOptions() *Options {
	return &Options{Out: "build"}
}

// Register registers the adapter with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAdapter(Name, &registry.RegisteredAdapter{
		Description: "Builds a standalone Node server.",
		NewOptions:  func() any { return DefaultOptions() },
	})
}

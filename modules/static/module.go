package static

import "github.com/vk/kitresolve/internal/registry"

// Name is the name the adapter is registered under.
const Name = "static"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Options defines the settings of the static adapter.
type Options struct {
	Pages  string `cty:"pages"`
	Assets string `cty:"assets"`
	// Fallback is the SPA fallback page, e.g. "200.html". Empty disables it.
	Fallback    string `cty:"fallback"`
	Precompress bool   `cty:"precompress"`
	Strict      bool   `cty:"strict"`
}

// DefaultOptions returns the options used when the configuration sets none.
func DefaultOptions() *Options {
	return &Options{
		Pages:  "build",
		Assets: "build",
		Strict: true,
	}
}

// Register registers the adapter with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAdapter(Name, &registry.RegisteredAdapter{
		Description: "Prerenders the whole site as static files.",
		NewOptions:  func() any { return DefaultOptions() },
	})
}

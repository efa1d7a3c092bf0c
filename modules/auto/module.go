// Package auto provides the default deployment adapter. It takes no
// options; the hosting platform is detected at build time by the adapter
// collaborator.
package auto

import "github.com/vk/kitresolve/internal/registry"

// Name is the name the adapter is registered under.
const Name = "auto"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the adapter with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAdapter(Name, &registry.RegisteredAdapter{
		Description: "Detects the hosting platform at build time.",
	})
}

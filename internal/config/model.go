package config

import (
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
)

// DefaultAdapter is the adapter selected when a configuration file does
// not name one.
const DefaultAdapter = "auto"

// Description is the raw, user-authored configuration.
type Description struct {
	// Preprocess is passed through to the preprocessing collaborator
	// uninterpreted. cty.NilVal means no preprocess options were given.
	Preprocess cty.Value
	Adapter    AdapterSelector
	// Aliases maps an alias name to a path relative to the project root.
	Aliases map[string]string
	// Source is the file the description was read from, if any.
	Source string
}

// AdapterSelector names a deployment adapter and carries its options.
type AdapterSelector struct {
	Name    string
	Options cty.Value
}

// Defaults returns the description every loader starts from before the
// user's file is merged over it.
func Defaults() *Description {
	return &Description{
		Preprocess: cty.NilVal,
		Adapter:    AdapterSelector{Name: DefaultAdapter, Options: cty.NilVal},
		Aliases:    make(map[string]string),
	}
}

// Resolved is the validated, fully resolved configuration. It is never
// mutated after the resolver returns it and is safe for concurrent reads.
type Resolved struct {
	ProjectRoot string
	Preprocess  cty.Value
	Adapter     AdapterHandle
	aliases     map[string]string
}

// NewResolved builds a Resolved record. The alias map is copied.
func NewResolved(root string, preprocess cty.Value, adapter AdapterHandle, aliases map[string]string) *Resolved {
	r := &Resolved{
		ProjectRoot: root,
		Preprocess:  preprocess,
		Adapter:     adapter,
		aliases:     make(map[string]string, len(aliases)),
	}
	maps.Copy(r.aliases, aliases)
	return r
}

// Aliases returns a copy of the resolved alias map (name to absolute path).
func (r *Resolved) Aliases() map[string]string {
	return maps.Clone(r.aliases)
}

// Alias returns the absolute path of a single alias.
func (r *Resolved) Alias(name string) (string, bool) {
	p, ok := r.aliases[name]
	return p, ok
}

// AliasNames returns the alias names in sorted order.
func (r *Resolved) AliasNames() []string {
	return slices.Sorted(maps.Keys(r.aliases))
}

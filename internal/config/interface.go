package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads a single configuration file, merges it over Defaults and
	// returns the resulting description.
	Load(ctx context.Context, path string) (*Description, error)
}

// Converter is the interface for type conversion between the opaque cty
// values carried by a description and the Go types used by adapters.
type Converter interface {
	// DecodeValue decodes an opaque cty value (e.g., adapter options) into
	// a pointer to a Go struct whose fields carry `cty` tags. Attributes
	// without a matching field are rejected.
	DecodeValue(ctx context.Context, val cty.Value, target any) error

	// ToCtyValue converts a native Go value (like a decoded options struct)
	// into its equivalent cty.Value.
	ToCtyValue(v any) (cty.Value, error)
}

// AdapterHandle is the resolved deployment adapter handed to the adapter
// collaborator.
type AdapterHandle interface {
	Name() string
	// Options returns the decoded, typed options struct of the adapter.
	Options() any
}

// Package config defines the format-agnostic configuration model for the
// application, along with the core interfaces (Loader, Converter) for
// loading and interpreting configuration descriptions from various sources.
//
// A Description is what the user wrote: opaque preprocess options, an
// adapter selector and relative path aliases. A Resolved is what downstream
// tooling consumes once the resolver has validated the description against
// a project root and an adapter registry. Concrete loaders for HCL, JSON and
// YAML live in separate packages.
package config

// Package registry provides the adapter registry the resolver consults.
//
// The Registry maps the adapter names used in configuration files (e.g.,
// "static") to the compiled adapters that implement them, together with a
// constructor for each adapter's typed options. Lookup turns a selector from
// a description into an Adapter handle whose options have been decoded and
// defaulted.
//
// During application startup, the registry is populated from the built-in
// modules and then validated so that a malformed options struct is caught
// before any configuration is resolved.
package registry

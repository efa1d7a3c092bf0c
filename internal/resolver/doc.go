// Package resolver turns a config.Description into an immutable
// config.Resolved record: it checks the project root, resolves every alias
// to a normalized absolute path and looks the adapter up in a registry.
//
// Resolution is a pure function of its inputs and the registry. The only
// optional side effect is the project root existence check enabled with
// WithRootCheck. The first problem found is returned as an *Error and no
// partial record is ever produced.
package resolver

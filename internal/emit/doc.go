// Package emit renders a config.Resolved record for downstream consumers:
// a JSON or YAML document for tooling, and a TypeScript `paths` mapping for
// the module-resolution collaborator.
package emit

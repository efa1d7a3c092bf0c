// Package hcl_adapter loads kit.config.hcl files into the format-agnostic
// config.Description and provides the cty-backed Converter used to decode
// opaque option values into Go structs.
package hcl_adapter

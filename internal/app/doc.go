// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle (load,
// resolve, emit, notify, optionally watch), decoupled from any specific
// entrypoint like a CLI.
package app

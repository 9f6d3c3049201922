// Package config loads and merges notesync configuration from a .env file,
// environment variables, command-line flags, and an optional JSON file.
//
// The merged [StructuredConfig] is never used directly; each binary maps it
// to its own view ([ClientConfig] or [ServerConfig]), applies defaults, and
// validates only the fields it needs.
package config

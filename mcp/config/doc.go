// Package config defines the YAML/JSON configuration model the service is
// started with - MCP server options, Ghost connection settings and optional
// builtin action patterns - plus helpers to load it from a local file or any
// afs-supported URL.
package config

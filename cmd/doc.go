// Package cmd implements the ghost-mcp command-line interface.  Each file
// registers a single sub-command (serve, list-tools, tool, call, check, ...).
// Plumbing shared between commands, such as configuration loading and service
// initialisation, lives in shared.go.
package cmd

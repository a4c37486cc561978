// Package mcp wires the Ghost post operations into an MCP server.  Its
// central Service type loads configuration, builds the Ghost Admin API
// client, hosts the operations as Fluxor actions and exposes them as MCP
// tools over the shared registry.
package mcp

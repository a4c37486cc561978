// Package conversion derives MCP tool schemas from action method signatures.
// Input schemas are generated by reflection over the typed argument structs;
// plain-text outputs (the norm for the Ghost operations) yield no output
// schema.
package conversion

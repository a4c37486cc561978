// Package conv provides small, reflection-based helpers used when coercing
// tool arguments and results between maps, typed structs and primitives.
// Convert performs a best-effort JSON marshal/unmarshal round-trip, which
// covers every argument shape the MCP bridge hands to an action executor.
package conv

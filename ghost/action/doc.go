// Package action exposes the Ghost post operations as a Fluxor action
// service so the MCP bridge can publish them as callable tools.  Every
// operation returns a text payload; failures are string-encoded in the result
// rather than propagated as faults.
package action

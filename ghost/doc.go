// Package ghost implements a minimal client for the Ghost Admin API.  It
// covers token-based authentication (short-lived HS256 JWTs derived from an
// admin API key), a request dispatcher with a typed error taxonomy and the
// handful of post endpoints the MCP tools operate on.
package ghost

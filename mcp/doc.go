// Package mcp talks to the remote game tool server over the MCP streamable
// HTTP transport.  Its Client opens sessions, lists the tools scoped to a
// session and invokes a single tool.  All failures are converted to in-band
// values at this boundary: a missing session, an empty tool list or an
// "Error: " / "Connection error: " prefixed string.  Nothing is returned to
// the caller as a Go error.
package mcp

// Package conversion translates MCP tool JSON Schemas into the
// function-calling declarations understood by the language model client.
// Property types default to string and descriptions to an empty string when
// the remote schema leaves them out.
package conversion

package conv

import (
	"bytes"
	"encoding/json"
)

// Indent pretty-prints a raw JSON value with two-space indentation.  Input
// that is not valid JSON is returned unchanged.
func Indent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

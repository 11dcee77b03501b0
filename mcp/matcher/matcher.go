package matcher

import (
	"strings"

	schema "github.com/viant/mcp-protocol/schema"
)

// Match reports whether name satisfies pattern: "*" matches everything, an
// empty pattern matches nothing, anything else is a prefix.
func Match(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if pattern == "" {
		return false
	}
	return strings.HasPrefix(name, pattern)
}

// MatchAny reports whether name satisfies at least one pattern.
func MatchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if Match(pattern, name) {
			return true
		}
	}
	return false
}

// Filter keeps the tools whose names match any pattern, preserving order.
// An empty pattern list keeps every tool.
func Filter(patterns []string, tools []schema.Tool) []schema.Tool {
	if len(patterns) == 0 {
		return tools
	}
	result := make([]schema.Tool, 0, len(tools))
	for _, tool := range tools {
		if MatchAny(patterns, tool.Name) {
			result = append(result, tool)
		}
	}
	return result
}

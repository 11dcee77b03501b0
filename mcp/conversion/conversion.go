package conversion

import (
	"fmt"
	"strings"

	schema "github.com/viant/mcp-protocol/schema"
	"google.golang.org/genai"

	"github.com/gricha/site/internal/conv"
)

// FunctionDeclaration converts one tool descriptor into a function
// declaration whose parameters are an OBJECT schema.
func FunctionDeclaration(tool schema.Tool) *genai.FunctionDeclaration {
	params := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(tool.InputSchema.Properties)),
	}
	for name, def := range tool.InputSchema.Properties {
		params.Properties[name] = SchemaFromDef(def)
	}
	if len(tool.InputSchema.Required) > 0 {
		params.Required = append([]string(nil), tool.InputSchema.Required...)
	}
	return &genai.FunctionDeclaration{
		Name:        tool.Name,
		Description: conv.Dereference(tool.Description),
		Parameters:  params,
	}
}

// FunctionDeclarations converts tools preserving their order.
func FunctionDeclarations(tools []schema.Tool) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		result = append(result, FunctionDeclaration(tool))
	}
	return result
}

// SchemaFromDef converts a single JSON Schema property definition.
func SchemaFromDef(def map[string]interface{}) *genai.Schema {
	result := &genai.Schema{Type: typeFromDef(def)}
	if desc, ok := def["description"].(string); ok {
		result.Description = desc
	}
	if format, ok := def["format"].(string); ok && result.Type == genai.TypeString {
		result.Format = format
	}
	result.Enum = stringList(def["enum"])

	switch result.Type {
	case genai.TypeArray:
		items, _ := def["items"].(map[string]interface{})
		result.Items = SchemaFromDef(items)
	case genai.TypeObject:
		if raw, ok := def["properties"].(map[string]interface{}); ok && len(raw) > 0 {
			result.Properties = make(map[string]*genai.Schema, len(raw))
			for name, v := range raw {
				nested, _ := v.(map[string]interface{})
				result.Properties[name] = SchemaFromDef(nested)
			}
		}
		result.Required = stringList(def["required"])
	}
	return result
}

func typeFromDef(def map[string]interface{}) genai.Type {
	var typeStr string
	switch v := def["type"].(type) {
	case string:
		typeStr = v
	case []interface{}:
		// ["string","null"] style unions: take the first non-null member.
		for _, item := range v {
			if s, ok := item.(string); ok && s != "null" {
				typeStr = s
				break
			}
		}
	case []string:
		for _, s := range v {
			if s != "null" {
				typeStr = s
				break
			}
		}
	}
	switch strings.ToLower(typeStr) {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func stringList(raw interface{}) []string {
	switch v := raw.(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			} else if item != nil {
				result = append(result, fmt.Sprint(item))
			}
		}
		return result
	}
	return nil
}

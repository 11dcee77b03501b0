package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpschema "github.com/viant/mcp-protocol/schema"
)

const (
	methodInitialize = "initialize"
	methodToolsList  = "tools/list"
	methodToolsCall  = "tools/call"

	maxToolPages = 16
)

// Tool describes one callable remote action.
type Tool = mcpschema.Tool

// CreateSession performs the initialize handshake and returns the session
// taken from the response header together with the tools listed for it.
// ok is false on transport failure, a malformed reply or a missing header.
func (c *Client) CreateSession(ctx context.Context) (Session, []Tool, bool) {
	params := &mcpschema.InitializeRequestParams{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    mcpschema.ClientCapabilities{},
		ClientInfo:      c.clientInfo,
	}
	header, reply, err := c.post(ctx, "", methodInitialize, params)
	if err != nil {
		c.logger.Error(err, "initialize failed", "endpoint", c.endpoint)
		return "", nil, false
	}
	if reply.Kind == ErrorResult {
		c.logger.Info("initialize rejected", "endpoint", c.endpoint, "message", reply.Err.Message)
		return "", nil, false
	}
	session := Session(header.Get(HeaderSessionID))
	if session == "" {
		c.logger.Info("initialize response carried no session header", "endpoint", c.endpoint)
		return "", nil, false
	}

	tools, err := c.listTools(ctx, session)
	if err != nil {
		c.logger.Error(err, "listing tools for new session failed", "session", session)
		return "", nil, false
	}
	return session, tools, true
}

// ListTools returns the tools scoped to session.  Any failure yields an empty
// slice; callers treat "no tools" as recoverable.
func (c *Client) ListTools(ctx context.Context, session Session) []Tool {
	tools, err := c.listTools(ctx, session)
	if err != nil {
		c.logger.Error(err, "listing tools failed", "session", session)
		return []Tool{}
	}
	return tools
}

func (c *Client) listTools(ctx context.Context, session Session) ([]Tool, error) {
	tools := make([]Tool, 0)
	seen := make(map[string]struct{})
	var cursor *string
	for page := 0; page < maxToolPages; page++ {
		params := map[string]interface{}{}
		if cursor != nil {
			params["cursor"] = *cursor
		}
		_, reply, err := c.post(ctx, session, methodToolsList, params)
		if err != nil {
			return nil, err
		}
		if reply.Kind == ErrorResult {
			return nil, fmt.Errorf("%s: %s", methodToolsList, reply.Err.Message)
		}

		var result mcpschema.ListToolsResult
		if err := json.Unmarshal(reply.Result, &result); err != nil {
			return nil, fmt.Errorf("decode %s result: %w", methodToolsList, err)
		}
		for _, tool := range result.Tools {
			if err := ValidateTool(tool); err != nil {
				c.logger.Info("skipping invalid tool", "reason", err.Error())
				continue
			}
			if _, dup := seen[tool.Name]; dup {
				continue
			}
			seen[tool.Name] = struct{}{}
			tools = append(tools, tool)
		}
		if result.NextCursor == nil || *result.NextCursor == "" {
			break
		}
		cursor = result.NextCursor
	}
	return tools, nil
}

// ValidateTool checks that the tool is named and that every required
// parameter is a declared property.
func ValidateTool(tool Tool) error {
	if tool.Name == "" {
		return errors.New("tool name is empty")
	}
	for _, name := range tool.InputSchema.Required {
		if _, ok := tool.InputSchema.Properties[name]; !ok {
			return fmt.Errorf("tool %q: required parameter %q is not declared", tool.Name, name)
		}
	}
	return nil
}

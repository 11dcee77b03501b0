package mcp

import (
	"context"

	"github.com/gricha/site/internal/conv"
)

const (
	errorPrefix      = "Error: "
	connectionPrefix = "Connection error: "
)

// callParams always carries arguments, even when empty.
type callParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// Invoke calls one tool on the remote server and renders the reply as text:
// an explicit error becomes "Error: <message>", a content list becomes its
// text entries joined by newlines and any other result is pretty-printed
// JSON.  Transport failures become "Connection error: <cause>".
func (c *Client) Invoke(ctx context.Context, session Session, name string, args map[string]interface{}) string {
	if args == nil {
		args = map[string]interface{}{}
	}
	params := &callParams{Name: name, Arguments: args}
	c.logger.V(1).Info("calling tool", "session", session, "tool", name, "args", args)

	_, reply, err := c.post(ctx, session, methodToolsCall, params)
	if reply != nil && reply.Kind == Unrecognized {
		c.logger.Error(err, "tool call reply unrecognized", "tool", name)
		return Render(reply)
	}
	if err != nil {
		c.logger.Error(err, "tool call failed", "tool", name)
		return connectionPrefix + err.Error()
	}
	return Render(reply)
}

// Render converts a decoded tools/call reply into the text shown to players.
func Render(reply *Reply) string {
	switch reply.Kind {
	case ErrorResult:
		return errorPrefix + reply.Err.Message
	case ContentResult:
		return reply.Text()
	case RawResult:
		return conv.Indent(reply.Result)
	default:
		return connectionPrefix + "unrecognized response"
	}
}

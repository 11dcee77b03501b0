package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

const (
	// HeaderSessionID carries the session issued by the remote server.
	HeaderSessionID = "Mcp-Session-Id"
	// ProtocolVersion is the MCP revision announced during initialize.
	ProtocolVersion = "2024-11-05"

	defaultClientName    = "holiday-terminal-ai"
	defaultClientVersion = "1.0"
	defaultHTTPTimeout   = 30 * time.Second
	maxResponseBytes     = 4 << 20
)

// Session is the opaque identifier issued by the remote tool server.  The
// zero value means no session has been established.
type Session string

func (s Session) String() string { return string(s) }

// Client is a stateless MCP client bound to one endpoint.  It keeps no session
// table; the session is supplied on every call.
type Client struct {
	endpoint   string
	httpClient *http.Client
	clientInfo mcpschema.Implementation
	logger     logr.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for every request.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClientInfo overrides the implementation name announced in initialize.
func WithClientInfo(name, version string) Option {
	return func(c *Client) {
		c.clientInfo = mcpschema.Implementation{Name: name, Version: version}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for the MCP endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		clientInfo: mcpschema.Implementation{Name: defaultClientName, Version: defaultClientVersion},
		logger:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the remote URL this client talks to.
func (c *Client) Endpoint() string { return c.endpoint }

// post sends one JSON-RPC request and returns the response headers together
// with the decoded reply.  The error is non-nil only for transport failures.
func (c *Client) post(ctx context.Context, session Session, method string, params interface{}) (http.Header, *Reply, error) {
	payload, err := json.Marshal(newRequest(method, params))
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if session != "" {
		req.Header.Set(HeaderSessionID, session.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.Header, nil, fmt.Errorf("read %s response: %w", method, err)
	}
	reply := Decode(resp.Header.Get("Content-Type"), body)
	if reply.Kind == Unrecognized {
		return resp.Header, reply, fmt.Errorf("%s: unrecognized response (status %d)", method, resp.StatusCode)
	}
	return resp.Header, reply, nil
}

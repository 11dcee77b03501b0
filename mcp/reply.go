package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/viant/jsonrpc"
)

const jsonRPCVersion = "2.0"

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int64       `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

func newRequest(method string, params interface{}) *rpcRequest {
	if params == nil {
		params = struct{}{}
	}
	return &rpcRequest{JSONRPC: jsonRPCVersion, ID: time.Now().UnixNano(), Method: method, Params: params}
}

type envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpc.Error  `json:"error,omitempty"`
}

// Kind tags the shape of a decoded JSON-RPC reply.
type Kind int

const (
	// Unrecognized is any body that is not a JSON-RPC response object.
	Unrecognized Kind = iota
	// ErrorResult carries an explicit JSON-RPC error object.
	ErrorResult
	// ContentResult is a result holding an MCP content list.
	ContentResult
	// RawResult is any other result value.
	RawResult
)

func (k Kind) String() string {
	switch k {
	case ErrorResult:
		return "error"
	case ContentResult:
		return "content"
	case RawResult:
		return "raw"
	default:
		return "unrecognized"
	}
}

// ContentItem is one entry of an MCP tool result content list.  Only text
// entries contribute to the rendered output.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Reply is the tagged variant a raw response body decodes into.
type Reply struct {
	Kind    Kind
	Err     *jsonrpc.Error
	Content []ContentItem
	Result  json.RawMessage
}

// Text joins the text entries of a content result with newlines; entries of
// any other type are skipped.
func (r *Reply) Text() string {
	parts := make([]string, 0, len(r.Content))
	for _, item := range r.Content {
		if item.Type == "text" {
			parts = append(parts, item.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Decode turns a response body into a Reply.  Streamable HTTP servers may
// answer with an event stream; the first data payload that is a JSON-RPC
// response wins.  Anything else decodes as Unrecognized.
func Decode(contentType string, body []byte) *Reply {
	if isEventStream(contentType, body) {
		for _, payload := range eventPayloads(body) {
			if reply := decodeEnvelope(payload); reply.Kind != Unrecognized {
				return reply
			}
		}
		return &Reply{Kind: Unrecognized}
	}
	return decodeEnvelope(body)
}

func decodeEnvelope(data []byte) *Reply {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &Reply{Kind: Unrecognized}
	}
	if env.Error != nil {
		return &Reply{Kind: ErrorResult, Err: env.Error}
	}
	if len(env.Result) == 0 {
		return &Reply{Kind: Unrecognized}
	}

	var probe struct {
		Content *[]ContentItem `json:"content"`
	}
	if err := json.Unmarshal(env.Result, &probe); err == nil && probe.Content != nil {
		return &Reply{Kind: ContentResult, Content: *probe.Content, Result: env.Result}
	}
	return &Reply{Kind: RawResult, Result: env.Result}
}

func isEventStream(contentType string, body []byte) bool {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "text/event-stream") {
		return true
	}
	trimmed := bytes.TrimSpace(body)
	return bytes.HasPrefix(trimmed, []byte("event:")) || bytes.HasPrefix(trimmed, []byte("data:"))
}

// eventPayloads extracts the data of every server-sent event in body.
func eventPayloads(body []byte) [][]byte {
	var (
		payloads [][]byte
		data     []string
	)
	flush := func() {
		if len(data) > 0 {
			payloads = append(payloads, []byte(strings.Join(data, "\n")))
			data = nil
		}
	}
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), maxResponseBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	flush()
	return payloads
}

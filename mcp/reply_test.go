package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		body        string
		expect      Kind
	}{
		{name: "content", contentType: "application/json", body: `{"jsonrpc":"2.0","id":1,"result":{"content":[]}}`, expect: ContentResult},
		{name: "raw", contentType: "application/json", body: `{"jsonrpc":"2.0","id":1,"result":[1,2]}`, expect: RawResult},
		{name: "error wins over result", contentType: "application/json", body: `{"jsonrpc":"2.0","id":1,"result":{},"error":{"code":1,"message":"x"}}`, expect: ErrorResult},
		{name: "neither result nor error", contentType: "application/json", body: `{"jsonrpc":"2.0","id":1}`, expect: Unrecognized},
		{name: "not json", contentType: "text/plain", body: `Internal Server Error`, expect: Unrecognized},
		{name: "empty", contentType: "application/json", body: ``, expect: Unrecognized},
		{name: "sse by prefix", contentType: "", body: "data: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{\"content\":[]}}\n\n", expect: ContentResult},
		{name: "sse skips notifications", contentType: "text/event-stream; charset=utf-8", body: "data: {\"jsonrpc\":\"2.0\",\"method\":\"notifications/progress\"}\n\ndata: {\"jsonrpc\":\"2.0\",\"id\":1,\"result\":{\"tools\":[]}}\n\n", expect: RawResult},
		{name: "sse without response", contentType: "text/event-stream", body: "event: ping\n\n", expect: Unrecognized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reply := Decode(tc.contentType, []byte(tc.body))
			require.NotNil(t, reply)
			assert.Equal(t, tc.expect, reply.Kind, tc.expect.String())
		})
	}
}

func TestEventPayloads(t *testing.T) {
	body := "event: message\r\ndata: {\"a\":\r\ndata: 1}\r\n\r\n: comment\ndata: second\n"
	payloads := eventPayloads([]byte(body))
	require.Len(t, payloads, 2)
	assert.Equal(t, "{\"a\":\n1}", string(payloads[0]))
	assert.Equal(t, "second", string(payloads[1]))
}

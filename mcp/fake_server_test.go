package mcp_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gricha/site/mcp"
)

const (
	lookTool = `{"name":"look","description":"Look around the room","inputSchema":{"type":"object","properties":{"target":{"type":"string","description":"What to look at"}}}}`
	goTool   = `{"name":"go","inputSchema":{"type":"object","properties":{"direction":{"type":"string"}},"required":["direction"]}}`
	badTool  = `{"name":"broken","inputSchema":{"type":"object","properties":{},"required":["missing"]}}`
)

type recordedCall struct {
	Method  string
	Session string
	Accept  string
	Params  json.RawMessage
}

// fakeServer is a scripted MCP endpoint.  Each handler returns the content
// type and raw body for one method.
type fakeServer struct {
	*httptest.Server
	mu       sync.Mutex
	calls    []recordedCall
	session  string
	handlers map[string]func(params json.RawMessage) (string, string)
}

func newFakeServer(t *testing.T, session string) *fakeServer {
	t.Helper()
	f := &fakeServer{session: session, handlers: map[string]func(json.RawMessage) (string, string){}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	f.on("initialize", func(json.RawMessage) (string, string) {
		return "application/json", `{"jsonrpc":"2.0","id":1,"result":{"protocolVersion":"2024-11-05","capabilities":{"tools":{}},"serverInfo":{"name":"holiday","version":"1.0"}}}`
	})
	f.on("tools/list", func(json.RawMessage) (string, string) {
		return "application/json", `{"jsonrpc":"2.0","id":2,"result":{"tools":[` + lookTool + `,` + goTool + `]}}`
	})
	return f
}

func (f *fakeServer) on(method string, handler func(params json.RawMessage) (string, string)) {
	f.handlers[method] = handler
}

func (f *fakeServer) client() *mcp.Client {
	return mcp.New(f.URL)
}

func (f *fakeServer) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	var req struct {
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}
	_ = json.Unmarshal(data, &req)

	f.mu.Lock()
	f.calls = append(f.calls, recordedCall{
		Method:  req.Method,
		Session: r.Header.Get(mcp.HeaderSessionID),
		Accept:  r.Header.Get("Accept"),
		Params:  req.Params,
	})
	f.mu.Unlock()

	handler, ok := f.handlers[req.Method]
	if !ok {
		http.Error(w, "unknown method", http.StatusNotFound)
		return
	}
	if req.Method == "initialize" && f.session != "" {
		w.Header().Set(mcp.HeaderSessionID, f.session)
	}
	contentType, body := handler(req.Params)
	w.Header().Set("Content-Type", contentType)
	_, _ = io.WriteString(w, body)
}

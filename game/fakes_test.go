package game

import (
	"context"
	"sync"

	"github.com/gricha/site/mcp"
	"github.com/gricha/site/resolver"
)

type created struct {
	session mcp.Session
	tools   []mcp.Tool
	ok      bool
}

type fakeRegistry struct {
	mu       sync.Mutex
	creates  []created
	tools    map[mcp.Session][]mcp.Tool
	created  int
	listedBy []mcp.Session
}

func (f *fakeRegistry) CreateSession(context.Context) (mcp.Session, []mcp.Tool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	if len(f.creates) == 0 {
		return "", nil, false
	}
	next := f.creates[0]
	f.creates = f.creates[1:]
	return next.session, next.tools, next.ok
}

func (f *fakeRegistry) ListTools(_ context.Context, session mcp.Session) []mcp.Tool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listedBy = append(f.listedBy, session)
	if tools, ok := f.tools[session]; ok {
		return tools
	}
	return []mcp.Tool{}
}

type invocation struct {
	session mcp.Session
	name    string
	args    map[string]interface{}
}

type fakeInvoker struct {
	responses map[string]string
	calls     []invocation
}

func (f *fakeInvoker) Invoke(_ context.Context, session mcp.Session, name string, args map[string]interface{}) string {
	f.calls = append(f.calls, invocation{session: session, name: name, args: args})
	return f.responses[name]
}

type resolution struct {
	intent *resolver.Intent
	err    error
}

type fakeResolver struct {
	results   []resolution
	commands  []string
	histories [][]resolver.Entry
	toolSets  [][]mcp.Tool
}

func (f *fakeResolver) Resolve(_ context.Context, command string, tools []mcp.Tool, history []resolver.Entry) (*resolver.Intent, error) {
	f.commands = append(f.commands, command)
	f.histories = append(f.histories, history)
	f.toolSets = append(f.toolSets, tools)
	if len(f.results) == 0 {
		return nil, nil
	}
	next := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return next.intent, next.err
}

// matchAll resolves every command to the tool with the same name.
type matchAll struct{}

func (matchAll) Resolve(_ context.Context, command string, tools []mcp.Tool, _ []resolver.Entry) (*resolver.Intent, error) {
	for _, tool := range tools {
		if tool.Name == command {
			return &resolver.Intent{Tool: command, Arguments: map[string]interface{}{}}, nil
		}
	}
	return nil, nil
}

var gameTools = []mcp.Tool{{Name: "start"}, {Name: "look"}, {Name: "go"}, {Name: "take"}}

func intentFor(tool string, args map[string]interface{}) resolution {
	if args == nil {
		args = map[string]interface{}{}
	}
	return resolution{intent: &resolver.Intent{Tool: tool, Arguments: args}}
}

package game

import (
	"context"
	"errors"

	"github.com/go-logr/logr"

	"github.com/gricha/site/mcp"
	"github.com/gricha/site/resolver"
)

const (
	// ClarificationMessage answers commands no tool matches.
	ClarificationMessage = "I didn't quite understand that. You can do things like 'look', 'go', 'take', 'use', or 'interact' with items. Type 'hint' if you're stuck!"
	// FriendlyError is shown when every attempt failed.
	FriendlyError = "Oops! Something went wrong on our end. Please try again."

	// DefaultMaxRetries is the number of attempts per command.
	DefaultMaxRetries = 2
	// DefaultHistoryLimit is the number of history entries passed to the resolver.
	DefaultHistoryLimit = 10
)

// Causes logged for a failed attempt.
var (
	ErrSessionUnavailable = errors.New("failed to connect to game server")
	ErrNoTools            = errors.New("no game tools available")
)

// Registry creates sessions and lists their tools.
type Registry interface {
	CreateSession(ctx context.Context) (mcp.Session, []mcp.Tool, bool)
	ListTools(ctx context.Context, session mcp.Session) []mcp.Tool
}

// Invoker calls a tool and renders its reply; failures are in-band text.
type Invoker interface {
	Invoke(ctx context.Context, session mcp.Session, name string, args map[string]interface{}) string
}

// Resolver maps a command onto a tool; a nil intent means unresolved.
type Resolver interface {
	Resolve(ctx context.Context, command string, tools []mcp.Tool, history []resolver.Entry) (*resolver.Intent, error)
}

// Request is one player command.
type Request struct {
	Command   string           `json:"command"`
	SessionID string           `json:"sessionId,omitempty"`
	History   []resolver.Entry `json:"history,omitempty"`
}

// Outcome classifies a Result.
type Outcome string

// Outcome values.
const (
	OutcomeResolved   Outcome = "resolved"
	OutcomeUnresolved Outcome = "unresolved"
	OutcomeFailed     Outcome = "failed"
)

// Result is handed back to the caller, which persists SessionID.
type Result struct {
	Response  string
	SessionID string
	Outcome   Outcome
	Attempts  int
}

// Proxy orchestrates session acquisition, intent resolution and invocation.
type Proxy struct {
	registry     Registry
	invoker      Invoker
	resolver     Resolver
	maxRetries   int
	historyLimit int
	toolPatterns []string
	logger       logr.Logger
}

// Option customises a Proxy.
type Option func(*Proxy)

// WithMaxRetries sets the number of attempts per command.
func WithMaxRetries(n int) Option {
	return func(p *Proxy) {
		if n > 0 {
			p.maxRetries = n
		}
	}
}

// WithHistoryLimit sets how many recent history entries reach the resolver.
func WithHistoryLimit(n int) Option {
	return func(p *Proxy) {
		if n > 0 {
			p.historyLimit = n
		}
	}
}

// WithToolPatterns restricts the tools offered to the resolver.
func WithToolPatterns(patterns ...string) Option {
	return func(p *Proxy) { p.toolPatterns = patterns }
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(p *Proxy) { p.logger = logger }
}

// NewProxy creates a proxy over the given collaborators.
func NewProxy(registry Registry, invoker Invoker, resolver Resolver, opts ...Option) *Proxy {
	p := &Proxy{
		registry:     registry,
		invoker:      invoker,
		resolver:     resolver,
		maxRetries:   DefaultMaxRetries,
		historyLimit: DefaultHistoryLimit,
		logger:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Handle runs one command.  It never fails: the outcome is carried in the
// returned Result.
func (p *Proxy) Handle(ctx context.Context, req Request) Result {
	history := resolver.Truncate(req.History, p.historyLimit)
	var lastErr error
	attempts := 0
	for attempts < p.maxRetries {
		attempts++
		a := p.attempt(ctx, req, history)
		switch a.verdict {
		case success:
			return p.complete(ctx, a, attempts)
		case fatal:
			return p.failed(req, attempts, a.err)
		default:
			lastErr = a.err
			p.logger.Info("attempt failed", "attempt", attempts, "reason", a.err.Error())
		}
	}
	return p.failed(req, attempts, lastErr)
}

// Restart begins a new game on a fresh session.
func (p *Proxy) Restart(ctx context.Context) Result {
	return p.Handle(ctx, Request{Command: commandStart})
}

func (p *Proxy) complete(ctx context.Context, a attempt, attempts int) Result {
	session := a.session.String()
	if a.intent == nil {
		return Result{Response: ClarificationMessage, SessionID: session, Outcome: OutcomeUnresolved, Attempts: attempts}
	}
	p.logger.Info("calling tool", "session", session, "tool", a.intent.Tool, "args", a.intent.Arguments)
	response := p.invoker.Invoke(ctx, a.session, a.intent.Tool, a.intent.Arguments)
	if response == "" {
		response = ClarificationMessage
	}
	return Result{Response: response, SessionID: session, Outcome: OutcomeResolved, Attempts: attempts}
}

func (p *Proxy) failed(req Request, attempts int, cause error) Result {
	p.logger.Error(cause, "all attempts failed", "attempts", attempts)
	return Result{Response: FriendlyError, SessionID: req.SessionID, Outcome: OutcomeFailed, Attempts: attempts}
}

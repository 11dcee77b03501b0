package game

import (
	"context"
	"fmt"

	"github.com/gricha/site/mcp"
	"github.com/gricha/site/mcp/matcher"
	"github.com/gricha/site/resolver"
)

type verdict int

const (
	success verdict = iota
	retryable
	fatal
)

// attempt is the outcome of steps one to three of a command: a session,
// its tools and the resolved intent.  Nothing is carried between attempts.
type attempt struct {
	verdict verdict
	session mcp.Session
	intent  *resolver.Intent
	err     error
}

func (p *Proxy) attempt(ctx context.Context, req Request, history []resolver.Entry) attempt {
	if err := ctx.Err(); err != nil {
		return attempt{verdict: fatal, err: err}
	}

	session := mcp.Session(req.SessionID)
	var tools []mcp.Tool
	if session == "" {
		created, bundled, ok := p.registry.CreateSession(ctx)
		if !ok {
			return p.retry(ctx, ErrSessionUnavailable)
		}
		session, tools = created, bundled
	} else {
		tools = p.registry.ListTools(ctx, session)
	}

	tools = matcher.Filter(p.toolPatterns, tools)
	if len(tools) == 0 {
		return p.retry(ctx, ErrNoTools)
	}

	intent, err := p.resolver.Resolve(ctx, req.Command, tools, history)
	if err != nil {
		return p.retry(ctx, fmt.Errorf("resolve %q: %w", req.Command, err))
	}
	return attempt{verdict: success, session: session, intent: intent}
}

// retry classifies err; a cancelled caller is not worth another attempt.
func (p *Proxy) retry(ctx context.Context, err error) attempt {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return attempt{verdict: fatal, err: fmt.Errorf("%w: %w", err, ctxErr)}
	}
	return attempt{verdict: retryable, err: err}
}

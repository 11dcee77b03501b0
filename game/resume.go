package game

import (
	"context"
	"strings"
)

const (
	commandStart = "start"
	commandLook  = "look"
)

// StaleSession reports whether a response to a resumed session suggests the
// server no longer knows it.  The check matches "not found" or "Error" in
// free text, so an ordinary game message containing either is read as stale.
// TODO: switch to a structured session-expired error once the game server
// reports one.
func StaleSession(response string) bool {
	return strings.Contains(response, "not found") || strings.Contains(response, "Error")
}

// Resume continues a saved session by looking around.  When there is no
// saved session, or it looks stale or the look fails, a new game is started.
func (p *Proxy) Resume(ctx context.Context, sessionID string) Result {
	if sessionID != "" {
		result := p.Handle(ctx, Request{Command: commandLook, SessionID: sessionID})
		if result.Outcome != OutcomeFailed && !StaleSession(result.Response) {
			return result
		}
		p.logger.Info("saved session unusable, starting fresh", "session", sessionID)
		if ctx.Err() != nil {
			return result
		}
	}
	return p.Restart(ctx)
}

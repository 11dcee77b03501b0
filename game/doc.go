// Package game implements the command proxy behind the holiday text
// adventure terminal.  Each request is self contained: the caller hands in
// the session id and conversation history it kept from previous responses
// and receives them back, so the proxy holds no state between calls.
//
// A request acquires a session (reusing the supplied one or creating a new
// one), resolves the command to a remote tool with the language model and
// invokes it.  Session, tooling and resolution failures are retried up to
// the configured number of attempts; after that the player sees a fixed
// friendly message while the cause is only logged.
package game

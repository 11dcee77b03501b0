// Package resolver maps free-text player commands onto one of the remote
// game tools by asking a function-calling language model.  The model is
// steered to always pick the closest tool; when it proposes no call the
// command is reported as unresolved rather than guessed.
package resolver

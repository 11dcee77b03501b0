package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"google.golang.org/genai"

	"github.com/gricha/site/mcp"
	"github.com/gricha/site/mcp/conversion"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	DefaultTimeout = 10 * time.Second
	// DefaultHistory is the number of most recent entries sent to the model.
	DefaultHistory = 10
)

// ErrNoTools is returned when there is nothing for the model to choose from.
var ErrNoTools = errors.New("no tools to resolve against")

// Model is the function-calling surface of the language model client;
// *genai.Models satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Intent is the tool call the model proposed.
type Intent struct {
	Tool      string
	Arguments map[string]interface{}
}

// Resolver turns commands into intents.
type Resolver struct {
	model        Model
	modelName    string
	timeout      time.Duration
	instruction  string
	historyLimit int
	logger       logr.Logger
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithModelName selects the model; empty keeps the default.
func WithModelName(name string) Option {
	return func(r *Resolver) {
		if name != "" {
			r.modelName = name
		}
	}
}

// WithTimeout bounds a single model call.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithSystemInstruction replaces the built-in prompt.
func WithSystemInstruction(instruction string) Option {
	return func(r *Resolver) { r.instruction = instruction }
}

// WithHistoryLimit caps the history entries forwarded to the model.
func WithHistoryLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.historyLimit = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// New creates a Resolver backed by model.
func New(model Model, opts ...Option) *Resolver {
	r := &Resolver{
		model:        model,
		modelName:    DefaultModel,
		timeout:      DefaultTimeout,
		instruction:  SystemInstruction,
		historyLimit: DefaultHistory,
		logger:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewGemini creates a Resolver over the Gemini API.
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Resolver, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key was empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return New(client.Models, opts...), nil
}

// Resolve asks the model which tool the command maps to.  A nil intent with
// a nil error means the model proposed no call.  Errors cover timeouts and
// transport failures and are worth retrying.
func (r *Resolver) Resolve(ctx context.Context, command string, tools []mcp.Tool, history []Entry) (*Intent, error) {
	if len(tools) == 0 {
		return nil, ErrNoTools
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{FunctionDeclarations: conversion.FunctionDeclarations(tools)}},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingConfigModeAuto},
		},
	}
	if r.instruction != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: r.instruction}}}
	}

	resp, err := r.model.GenerateContent(ctx, r.modelName, contents(Truncate(history, r.historyLimit), command), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with %s: %w", r.modelName, err)
	}
	if resp == nil {
		return nil, nil
	}
	calls := resp.FunctionCalls()
	if len(calls) == 0 || calls[0] == nil || calls[0].Name == "" {
		r.logger.V(1).Info("model proposed no tool call", "command", command)
		return nil, nil
	}
	call := calls[0]
	args := make(map[string]interface{}, len(call.Args))
	for k, v := range call.Args {
		args[k] = v
	}
	r.logger.V(1).Info("resolved command", "command", command, "tool", call.Name, "args", args)
	return &Intent{Tool: call.Name, Arguments: args}, nil
}

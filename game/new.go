package game

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-logr/logr"

	"github.com/gricha/site/config"
	"github.com/gricha/site/mcp"
	"github.com/gricha/site/resolver"
)

// New builds the production proxy from configuration: an MCP client for the
// configured endpoint and a Gemini backed resolver.
func New(ctx context.Context, cfg *config.Game, logger logr.Logger) (*Proxy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := mcp.New(cfg.Endpoint,
		mcp.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		mcp.WithLogger(logger.WithName("mcp")),
	)
	intents, err := resolver.NewGemini(ctx, cfg.APIKey,
		resolver.WithModelName(cfg.Model),
		resolver.WithTimeout(cfg.Timeout),
		resolver.WithHistoryLimit(cfg.HistoryLimit),
		resolver.WithLogger(logger.WithName("resolver")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	return NewProxy(client, client, intents,
		WithMaxRetries(cfg.MaxRetries),
		WithHistoryLimit(cfg.HistoryLimit),
		WithToolPatterns(cfg.Tools...),
		WithLogger(logger.WithName("game")),
	), nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gricha/site/game"
	"github.com/gricha/site/web"
)

// ServeCmd runs the site server until SIGINT/SIGTERM.  The game API is only
// enabled when a model API key is configured.
type ServeCmd struct {
	Addr string `short:"a" long:"addr" description:"listen address, overrides server.addr"`
}

func (c *ServeCmd) Execute(_ []string) error {
	cfg, err := configSingleton()
	if err != nil {
		return err
	}
	logger := loggerSingleton()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := newPostStore(ctx, cfg)
	if err != nil {
		return err
	}
	opts := []web.Option{
		web.WithPosts(store),
		web.WithSite(siteOf(cfg)),
		web.WithAllowOrigin(cfg.Server.AllowOrigin),
		web.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		web.WithLogger(logger.WithName("web")),
	}
	if cfg.Game.Enabled() {
		proxy, err := game.New(ctx, &cfg.Game, logger)
		if err != nil {
			return fmt.Errorf("failed to create game proxy: %w", err)
		}
		opts = append(opts, web.WithGame(proxy))
	} else {
		logger.Info("no model API key configured, game API disabled")
	}

	addr := cfg.Server.Addr
	if c.Addr != "" {
		addr = c.Addr
	}
	return web.New(opts...).ListenAndServe(ctx, addr)
}

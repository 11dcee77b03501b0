package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/gricha/site/blog"
	"github.com/gricha/site/config"
	"github.com/gricha/site/feed"
	"github.com/gricha/site/mcp"
)

var (
	cfgPath   string
	verbosity int

	cfgOnce sync.Once
	cfgInst *config.Config
	cfgErr  error

	loggerOnce sync.Once
	loggerInst logr.Logger
)

// setConfigPath remembers the CLI-level -f/--config parameter so that the
// configuration can be loaded lazily by whichever sub-command runs.
func setConfigPath(p string) { cfgPath = p }

func setVerbosity(v int) { verbosity = v }

// configSingleton loads and validates the configuration once per CLI
// invocation.
func configSingleton() (*config.Config, error) {
	cfgOnce.Do(func() {
		cfgInst, cfgErr = config.Load(context.Background(), cfgPath)
		if cfgErr != nil {
			return
		}
		if cfgErr = cfgInst.Validate(); cfgErr != nil {
			return
		}
		if debug := os.Getenv("SITE_DEBUG_CONFIG"); debug == "1" {
			_ = json.NewEncoder(os.Stderr).Encode(cfgInst)
		}
	})
	return cfgInst, cfgErr
}

func loggerSingleton() logr.Logger {
	loggerOnce.Do(func() {
		stdr.SetVerbosity(verbosity)
		loggerInst = stdr.New(log.New(os.Stderr, "", log.LstdFlags))
	})
	return loggerInst
}

func newClient(cfg *config.Config) *mcp.Client {
	return mcp.New(cfg.Game.Endpoint, mcp.WithLogger(loggerSingleton().WithName("mcp")))
}

// sessionOrCreate returns session, or a freshly created one when empty.
func sessionOrCreate(ctx context.Context, client *mcp.Client, session string) (mcp.Session, []mcp.Tool, error) {
	if session != "" {
		return mcp.Session(session), client.ListTools(ctx, mcp.Session(session)), nil
	}
	created, tools, ok := client.CreateSession(ctx)
	if !ok {
		return "", nil, fmt.Errorf("failed to create a game session at %s", client.Endpoint())
	}
	return created, tools, nil
}

func siteOf(cfg *config.Config) feed.Site {
	return feed.Site{
		Title:    cfg.Site.Title,
		Author:   cfg.Site.Author,
		BaseURL:  cfg.Site.BaseURL,
		Language: cfg.Site.Language,
	}
}

func newPostStore(ctx context.Context, cfg *config.Config) (*blog.Store, error) {
	external, err := cfg.Blog.ExternalPosts(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]blog.Post, 0, len(external))
	for _, item := range external {
		posts = append(posts, blog.Post{
			Title:    item.Title,
			Date:     item.Date,
			Author:   item.Author,
			Excerpt:  item.Excerpt,
			External: item.URL,
		})
	}
	return blog.NewStore(cfg.Blog.PostsURL,
		blog.WithExternal(posts...),
		blog.WithLogger(loggerSingleton().WithName("blog")),
	), nil
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SITE_HTTP_ADDR", "SITE_BASE_URL", "SITE_POSTS_URL", "MCP_SERVER_URL", "GOOGLE_AI_API_KEY", "GAME_MODEL"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	location := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
	return location
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultMCPEndpoint, cfg.Game.Endpoint)
	assert.Equal(t, DefaultModel, cfg.Game.Model)
	assert.Equal(t, 10*time.Second, cfg.Game.Timeout)
	assert.Equal(t, 2, cfg.Game.MaxRetries)
	assert.Equal(t, 10, cfg.Game.HistoryLimit)
	assert.False(t, cfg.Game.Enabled())
	assert.Len(t, cfg.Blog.External.Items, 2)
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	location := writeFile(t, "site.yaml", `
server:
  addr: ":9000"
game:
  endpoint: http://localhost:5000/mcp
  timeout: 5s
  maxRetries: 3
  tools: ["look", "go"]
blog:
  postsURL: /srv/posts
`)
	t.Setenv("GOOGLE_AI_API_KEY", "secret")
	t.Setenv("SITE_HTTP_ADDR", ":7000")

	cfg, err := Load(context.Background(), location)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:5000/mcp", cfg.Game.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Game.Timeout)
	assert.Equal(t, 3, cfg.Game.MaxRetries)
	assert.Equal(t, 10, cfg.Game.HistoryLimit)
	assert.Equal(t, []string{"look", "go"}, cfg.Game.Tools)
	assert.Equal(t, "/srv/posts", cfg.Blog.PostsURL)
	assert.Equal(t, "secret", cfg.Game.APIKey)
	assert.True(t, cfg.Game.Enabled())
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(context.Background(), writeFile(t, "bad.yaml", "game: [unclosed"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		hasErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = "" }, hasErr: true},
		{name: "relative endpoint", mutate: func(c *Config) { c.Game.Endpoint = "/mcp" }, hasErr: true},
		{name: "ftp endpoint", mutate: func(c *Config) { c.Game.Endpoint = "ftp://host/mcp" }, hasErr: true},
		{name: "zero retries", mutate: func(c *Config) { c.Game.MaxRetries = 0 }, hasErr: true},
		{name: "zero history", mutate: func(c *Config) { c.Game.HistoryLimit = 0 }, hasErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Game.Timeout = 0 }, hasErr: true},
		{name: "zero http timeout", mutate: func(c *Config) { c.Game.HTTPTimeout = 0 }, hasErr: true},
		{name: "negative http timeout", mutate: func(c *Config) { c.Game.HTTPTimeout = -time.Second }, hasErr: true},
		{name: "empty posts", mutate: func(c *Config) { c.Blog.PostsURL = "" }, hasErr: true},
		{name: "external without url", mutate: func(c *Config) { c.Blog.External.Items[0].URL = "" }, hasErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.hasErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBlog_ExternalPosts(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		blog := Default().Blog
		posts, err := blog.ExternalPosts(context.Background())
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "April 13, 2016", posts[0].Date)
	})

	t.Run("url", func(t *testing.T) {
		location := writeFile(t, "external.yaml", `
- title: Elsewhere
  date: "2020-01-02"
  url: https://example.com/post
`)
		blog := Default().Blog
		blog.External.URL = location
		posts, err := blog.ExternalPosts(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []ExternalPost{{Title: "Elsewhere", Date: "2020-01-02", URL: "https://example.com/post"}}, posts)
	})

	t.Run("missing url", func(t *testing.T) {
		blog := Blog{External: Group[ExternalPost]{URL: filepath.Join(t.TempDir(), "none.yaml")}}
		_, err := blog.ExternalPosts(context.Background())
		assert.Error(t, err)
	})
}

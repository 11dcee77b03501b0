package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMCPEndpoint = "https://gricha.dev/happyholidays/mcp"
	DefaultModel       = "gemini-3-flash-preview"
	DefaultAddr        = ":8080"
)

// Group holds items either inline or behind a URL pointing to a YAML list.
type Group[T any] struct {
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Items []T    `yaml:"items,omitempty" json:"items,omitempty"`
}

type Config struct {
	Server Server `yaml:"server,omitempty" json:"server,omitempty"`
	Site   Site   `yaml:"site,omitempty" json:"site,omitempty"`
	Blog   Blog   `yaml:"blog,omitempty" json:"blog,omitempty"`
	Game   Game   `yaml:"game,omitempty" json:"game,omitempty"`
}

type Server struct {
	Addr            string        `yaml:"addr,omitempty" json:"addr,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty" json:"shutdownTimeout,omitempty"`
	// AllowOrigin is sent as Access-Control-Allow-Origin on the game API.
	AllowOrigin string `yaml:"allowOrigin,omitempty" json:"allowOrigin,omitempty"`
}

// Site describes the publication used by feeds and the sitemap.
type Site struct {
	Title    string `yaml:"title,omitempty" json:"title,omitempty"`
	Author   string `yaml:"author,omitempty" json:"author,omitempty"`
	BaseURL  string `yaml:"baseURL,omitempty" json:"baseURL,omitempty"`
	Language string `yaml:"language,omitempty" json:"language,omitempty"`
}

type Blog struct {
	// PostsURL is the directory holding markdown posts.
	PostsURL string              `yaml:"postsURL,omitempty" json:"postsURL,omitempty"`
	External Group[ExternalPost] `yaml:"external,omitempty" json:"external,omitempty"`
}

// ExternalPost is a post published elsewhere and listed on the blog.
type ExternalPost struct {
	Title   string `yaml:"title" json:"title"`
	Date    string `yaml:"date" json:"date"`
	Author  string `yaml:"author,omitempty" json:"author,omitempty"`
	Excerpt string `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
	URL     string `yaml:"url" json:"url"`
}

// Game configures the command proxy.
type Game struct {
	Endpoint     string        `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	APIKey       string        `yaml:"apiKey,omitempty" json:"-"`
	Model        string        `yaml:"model,omitempty" json:"model,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	HTTPTimeout  time.Duration `yaml:"httpTimeout,omitempty" json:"httpTimeout,omitempty"`
	MaxRetries   int           `yaml:"maxRetries,omitempty" json:"maxRetries,omitempty"`
	HistoryLimit int           `yaml:"historyLimit,omitempty" json:"historyLimit,omitempty"`
	// Tools restricts the remote tools offered to the model; see matcher.Match.
	Tools []string `yaml:"tools,omitempty" json:"tools,omitempty"`
}

// Enabled reports whether the proxy can be built; without a model credential
// only the blog is served.
func (g *Game) Enabled() bool {
	return g.APIKey != ""
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{Addr: DefaultAddr, ShutdownTimeout: 10 * time.Second, AllowOrigin: "*"},
		Site: Site{
			Title:    "Greg Pstrucha's Blog",
			Author:   "Greg Pstrucha",
			BaseURL:  "https://gricha.dev",
			Language: "en",
		},
		Blog: Blog{
			PostsURL: "posts",
			External: Group[ExternalPost]{Items: []ExternalPost{
				{
					Title:   "Automatic memory leak detection on iOS",
					Date:    "April 13, 2016",
					Excerpt: "How Facebook built tools to automatically detect memory leaks in their iOS app.",
					URL:     "https://engineering.fb.com/2016/04/13/ios/automatic-memory-leak-detection-on-ios/",
				},
				{
					Title:   "Reducing FOOMs in the Facebook iOS app",
					Date:    "August 24, 2015",
					Excerpt: "How Facebook reduced foreground out-of-memory crashes in their iOS app.",
					URL:     "https://engineering.fb.com/2015/08/24/ios/reducing-fooms-in-the-facebook-ios-app/",
				},
			}},
		},
		Game: Game{
			Endpoint:     DefaultMCPEndpoint,
			Model:        DefaultModel,
			Timeout:      10 * time.Second,
			HTTPTimeout:  30 * time.Second,
			MaxRetries:   2,
			HistoryLimit: 10,
		},
	}
}

// Load reads the YAML file at location (local path or any afs URL) on top of
// the defaults, then applies environment overrides.  An empty location
// yields defaults plus environment.
func Load(ctx context.Context, location string) (*Config, error) {
	cfg := Default()
	if location != "" {
		data, err := afs.New().DownloadWithURL(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", location, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", location, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// environment lists the variables that override file settings.
type environment struct {
	Addr        string `env:"SITE_HTTP_ADDR"`
	BaseURL     string `env:"SITE_BASE_URL"`
	PostsURL    string `env:"SITE_POSTS_URL"`
	MCPEndpoint string `env:"MCP_SERVER_URL"`
	APIKey      string `env:"GOOGLE_AI_API_KEY"`
	Model       string `env:"GAME_MODEL"`
}

func (c *Config) applyEnv() error {
	var e environment
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	overlay := []struct {
		value  string
		target *string
	}{
		{e.Addr, &c.Server.Addr},
		{e.BaseURL, &c.Site.BaseURL},
		{e.PostsURL, &c.Blog.PostsURL},
		{e.MCPEndpoint, &c.Game.Endpoint},
		{e.APIKey, &c.Game.APIKey},
		{e.Model, &c.Game.Model},
	}
	for _, item := range overlay {
		if item.value != "" {
			*item.target = item.value
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr was empty")
	}
	if _, err := url.Parse(c.Site.BaseURL); err != nil || c.Site.BaseURL == "" {
		return fmt.Errorf("invalid site.baseURL %q", c.Site.BaseURL)
	}
	if c.Blog.PostsURL == "" {
		return fmt.Errorf("blog.postsURL was empty")
	}
	for i, post := range c.Blog.External.Items {
		if post.URL == "" || post.Title == "" {
			return fmt.Errorf("blog.external.items[%d]: title and url are required", i)
		}
	}
	return c.Game.Validate()
}

func (g *Game) Validate() error {
	u, err := url.Parse(g.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid game.endpoint %q", g.Endpoint)
	}
	if g.MaxRetries < 1 {
		return fmt.Errorf("game.maxRetries must be at least 1, got %d", g.MaxRetries)
	}
	if g.HistoryLimit < 1 {
		return fmt.Errorf("game.historyLimit must be at least 1, got %d", g.HistoryLimit)
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("game.timeout must be positive")
	}
	if g.HTTPTimeout <= 0 {
		return fmt.Errorf("game.httpTimeout must be positive")
	}
	return nil
}

// ExternalPosts resolves the external post list.  A configured URL replaces
// the inline items.
func (b *Blog) ExternalPosts(ctx context.Context) ([]ExternalPost, error) {
	if b.External.URL == "" {
		return b.External.Items, nil
	}
	data, err := afs.New().DownloadWithURL(ctx, b.External.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download external posts %q: %w", b.External.URL, err)
	}
	var posts []ExternalPost
	if err := yaml.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse external posts %q: %w", b.External.URL, err)
	}
	return posts, nil
}

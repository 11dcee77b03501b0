package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/gricha/site/internal/conv"
	"github.com/gricha/site/mcp/matcher"
)

// ListToolsCmd prints every tool the game server exposes for a session.
type ListToolsCmd struct {
	Session string `short:"s" long:"session" description:"existing game session id"`
	All     bool   `long:"all" description:"ignore the game.tools allow-list"`
}

func (c *ListToolsCmd) Execute(_ []string) error {
	cfg, err := configSingleton()
	if err != nil {
		return err
	}
	_, tools, err := sessionOrCreate(context.Background(), newClient(cfg), c.Session)
	if err != nil {
		return err
	}
	if !c.All {
		tools = matcher.Filter(cfg.Game.Tools, tools)
	}

	// Sorting for deterministic output (helpful for tests & scripting).
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	for _, t := range tools {
		fmt.Printf("%s\t%s\n", t.Name, conv.Dereference(t.Description))
	}
	return nil
}

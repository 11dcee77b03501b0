package cmd

import (
	"context"
	"encoding/json"
	"fmt"
)

// PostsCmd lists blog posts newest first.
type PostsCmd struct {
	JSON bool `long:"json" description:"print result as JSON"`
}

func (c *PostsCmd) Execute(_ []string) error {
	cfg, err := configSingleton()
	if err != nil {
		return err
	}
	ctx := context.Background()
	store, err := newPostStore(ctx, cfg)
	if err != nil {
		return err
	}
	posts, err := store.All(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		data, _ := json.MarshalIndent(posts, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	site := siteOf(cfg)
	for i := range posts {
		fmt.Printf("%s\t%s\t%s\n", posts[i].Date, posts[i].Title, site.PostURL(&posts[i]))
	}
	return nil
}

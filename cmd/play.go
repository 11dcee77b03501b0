package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gricha/site/game"
	"github.com/gricha/site/resolver"
)

// keptHistory is the number of entries carried between commands.
const keptHistory = 20

// PlayCmd sends natural-language commands through the game proxy.  With
// arguments it runs them as a single command; otherwise it reads commands
// from stdin until EOF, carrying the session and history between them.
type PlayCmd struct {
	Session string `short:"s" long:"session" description:"existing game session id"`
	Resume  bool   `short:"r" long:"resume" description:"resume --session with look, or start a new game"`
}

func (c *PlayCmd) Execute(args []string) error {
	cfg, err := configSingleton()
	if err != nil {
		return err
	}
	if !cfg.Game.Enabled() {
		return fmt.Errorf("GOOGLE_AI_API_KEY (game.apiKey) is required to play")
	}
	ctx := context.Background()
	proxy, err := game.New(ctx, &cfg.Game, loggerSingleton())
	if err != nil {
		return err
	}

	session := c.Session
	var history []resolver.Entry
	if c.Resume {
		result := proxy.Resume(ctx, session)
		session = result.SessionID
		fmt.Println(result.Response)
	}

	if len(args) > 0 {
		result := proxy.Handle(ctx, game.Request{Command: strings.Join(args, " "), SessionID: session})
		fmt.Println(result.Response)
		fmt.Fprintf(os.Stderr, "session: %s\n", result.SessionID)
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for fmt.Print("> "); scanner.Scan(); fmt.Print("> ") {
		command := strings.TrimSpace(scanner.Text())
		if command == "" {
			continue
		}
		var result game.Result
		if strings.EqualFold(command, "restart") {
			result = proxy.Restart(ctx)
			history = nil
			command = "start"
		} else {
			result = proxy.Handle(ctx, game.Request{Command: command, SessionID: session, History: history})
		}
		if result.SessionID != "" {
			session = result.SessionID
		}
		history = resolver.Truncate(append(history,
			resolver.Entry{Role: resolver.RoleUser, Parts: []resolver.Part{{Text: command}}},
			resolver.Entry{Role: resolver.RoleModel, Parts: []resolver.Part{{Text: result.Response}}},
		), keptHistory)
		fmt.Println(result.Response)
	}
	fmt.Println()
	return scanner.Err()
}

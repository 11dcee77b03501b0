package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ExecCmd calls one remote game tool directly, bypassing intent resolution.
// Arguments can be supplied either inline via -i/--input or loaded from a
// JSON file via --file.  Without --session a new session is created.
type ExecCmd struct {
	Name       string `short:"n" long:"name" positional-arg-name:"tool" description:"Tool name" required:"yes"`
	Inline     string `short:"i" long:"input" description:"Inline JSON arguments (object)"`
	File       string `long:"file" description:"Path to JSON file with arguments (use - for stdin)"`
	Session    string `short:"s" long:"session" description:"existing game session id"`
	TimeoutSec int    `long:"timeout" description:"Seconds to wait for completion" default:"30"`
	JSON       bool   `long:"json" description:"Print result as JSON"`
}

func (c *ExecCmd) Execute(_ []string) error {
	if c.Inline != "" && c.File != "" {
		return fmt.Errorf("-i/--input and --file are mutually exclusive")
	}
	cfg, err := configSingleton()
	if err != nil {
		return err
	}

	var args map[string]interface{}
	switch {
	case c.Inline != "":
		if err := json.Unmarshal([]byte(c.Inline), &args); err != nil {
			return fmt.Errorf("invalid inline JSON: %w", err)
		}
	case c.File != "":
		var rdr io.Reader
		if c.File == "-" {
			rdr = os.Stdin
		} else {
			f, err := os.Open(c.File)
			if err != nil {
				return fmt.Errorf("open input file: %w", err)
			}
			defer f.Close()
			rdr = f
		}
		data, err := io.ReadAll(rdr)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if err := json.Unmarshal(data, &args); err != nil {
			return fmt.Errorf("decode JSON: %w", err)
		}
	}

	timeout := time.Duration(c.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := newClient(cfg)
	session, _, err := sessionOrCreate(ctx, client, c.Session)
	if err != nil {
		return err
	}
	out := client.Invoke(ctx, session, c.Name, args)

	if c.JSON {
		data, _ := json.MarshalIndent(map[string]string{"sessionId": session.String(), "response": out}, "", "  ")
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(out)
	if c.Session == "" {
		fmt.Fprintf(os.Stderr, "session: %s\n", session)
	}
	return nil
}

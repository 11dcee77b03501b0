package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gricha/site/internal/conv"
	"github.com/gricha/site/mcp/conversion"
)

// ToolCmd prints metadata & input schema for a single tool, or the function
// declaration the model receives for it.
type ToolCmd struct {
	Name        string `short:"n" long:"name" description:"tool name" positional-arg-name:"name" required:"yes"`
	Session     string `short:"s" long:"session" description:"existing game session id"`
	Declaration bool   `long:"declaration" description:"print the model function declaration"`
	JSON        bool   `long:"json" description:"print result as JSON"`
}

func (c *ToolCmd) Execute(_ []string) error {
	cfg, err := configSingleton()
	if err != nil {
		return err
	}
	_, tools, err := sessionOrCreate(context.Background(), newClient(cfg), c.Session)
	if err != nil {
		return err
	}

	for _, tool := range tools {
		if tool.Name != c.Name {
			continue
		}
		if c.Declaration {
			data, _ := json.MarshalIndent(conversion.FunctionDeclaration(tool), "", "  ")
			fmt.Println(string(data))
			return nil
		}
		description := conv.Dereference(tool.Description)
		if c.JSON {
			data, _ := json.MarshalIndent(struct {
				Name        string      `json:"name"`
				Description string      `json:"description"`
				InputSchema interface{} `json:"inputSchema"`
			}{tool.Name, description, tool.InputSchema}, "", "  ")
			fmt.Println(string(data))
			return nil
		}
		fmt.Printf("Name : %s\n", tool.Name)
		fmt.Printf("Desc : %s\n", description)
		js, _ := json.MarshalIndent(tool.InputSchema, "", "  ")
		fmt.Printf("InputSchema:\n%s\n", string(js))
		return nil
	}
	return fmt.Errorf("tool %q not found", c.Name)
}

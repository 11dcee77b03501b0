package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config  string `short:"f" long:"config" description:"site configuration YAML path or URL"`
	Verbose []bool `short:"v" long:"verbose" description:"increase log verbosity (repeatable)"`

	Serve     *ServeCmd     `command:"serve"      description:"Serve the site, blog feeds and game API"`
	Play      *PlayCmd      `command:"play"       description:"Send natural-language commands to the game"`
	Exec      *ExecCmd      `command:"exec"       description:"Call one remote game tool with JSON arguments"`
	ListTools *ListToolsCmd `command:"list-tools" description:"List the tools the game server exposes"`
	Tool      *ToolCmd      `command:"tool"       description:"Show detailed info about one game tool"`
	Posts     *PostsCmd     `command:"posts"      description:"List blog posts"`
}

// Init instantiates the sub-command referenced by the first positional argument
// so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "play":
		o.Play = &PlayCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "posts":
		o.Posts = &PostsCmd{}
	}
}

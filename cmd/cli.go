package cmd

import (
	"log"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Run is the entry point for the CLI.  It is kept out of the main package so
// the command stays usable from tests.
func Run(args []string) {
	setConfigPath(extractConfigPath(args))
	setVerbosity(extractVerbosity(args))

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		log.Fatalf("%v", err)
	}
}

// extractConfigPath searches the raw argument list for the -f/--config option
// before the full flags parsing so that sub-commands can load the config
// early from a deterministic location.
func extractConfigPath(args []string) string {
	for i, a := range args {
		switch a {
		case "-f", "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		default:
			if strings.HasPrefix(a, "--config=") {
				return strings.TrimPrefix(a, "--config=")
			}
		}
	}
	return ""
}

// extractVerbosity counts -v style flags ahead of parsing.
func extractVerbosity(args []string) int {
	level := 0
	for _, a := range args {
		if a == "--" {
			break
		}
		switch {
		case a == "--verbose":
			level++
		case strings.HasPrefix(a, "-v") && strings.Trim(a[1:], "v") == "":
			level += len(a) - 1
		}
	}
	return level
}

package main

import (
	"os"

	"github.com/gricha/site/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}

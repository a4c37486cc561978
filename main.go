package main

import (
	"os"

	"github.com/viant/ghost-mcp/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}

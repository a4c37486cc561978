package cmd

import (
	"log"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Run is the entry point for the CLI.  The function is intentionally
// separated from the main package to keep the command usable from tests.
func Run(args []string) {
	// Pick up GHOST_BASE_URL / GHOST_ADMIN_API_KEY from a local .env file
	// when present; real environment variables take precedence.
	_ = godotenv.Load()

	cfgPath := extractConfigPath(args)

	// Make config path discoverable by sub-commands via the global singleton.
	setConfigPath(cfgPath)

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		// flags already prints a user-friendly message - just set exit code.
		log.Fatalf("%v", err)
	}
}

// extractConfigPath searches the raw argument list for the -f/--config option
// before the full flags parsing is performed so that sub-commands can load
// the config early from a deterministic location.  After the call command
// token, -f belongs to call's --file option and no longer selects the config.
func extractConfigPath(args []string) string {
	inCall := false
	for i, a := range args {
		switch {
		case a == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case a == "-f" && !inCall:
			if i+1 < len(args) {
				return args[i+1]
			}
		case a == "call":
			inCall = true
		}
	}
	return ""
}

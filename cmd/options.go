package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"f" long:"config" description:"service configuration YAML/JSON path or URL"`

	Serve       *ServeCmd       `command:"serve"        description:"Start the MCP server exposing the Ghost tools"`
	ListTools   *ListToolsCmd   `command:"list-tools"   description:"List registered tools"`
	ListActions *ListActionsCmd `command:"list-actions" description:"List action services and their methods"`
	Tool        *ToolCmd        `command:"tool"         description:"Show detailed info about one tool"`
	Call        *CallCmd        `command:"call"         description:"Invoke a tool locally and print its result"`
	Check       *CheckCmd       `command:"check"        description:"Run the Ghost API connection diagnostic"`
}

// Init instantiates the sub-command referenced by the first positional
// argument so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "list-actions":
		o.ListActions = &ListActionsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "call":
		o.Call = &CallCmd{}
	case "check":
		o.Check = &CheckCmd{}
	}
}

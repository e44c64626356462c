package cli

// Command descriptions
const (
	MsgRootShort = "Inspect the entity registries of the simulation framework"
	MsgRootLong  = `simreg lists and documents the module, channel and network types,
classes and functions registered at startup, and prepares runs from a run
file by instantiating the configured network by name.`

	MsgListShort      = "List registered entities, optionally of one kind"
	MsgDescribeShort  = "Show the interface declared for a module type"
	MsgDocsShort      = "Render documentation for every registered entity"
	MsgFunctionsShort = "List functions available to expressions"
	MsgCallShort      = "Call a registered function with numeric arguments"
	MsgPlanShort      = "Instantiate the network of a run configuration"
	MsgGenConfigShort = "Print an example run file"
	MsgVersionShort   = "Print version information"

	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat   = "Output format: auto, term, text or yaml"
	MsgFlagRun      = "Run file to read"
	MsgFlagConfig   = "Configuration in the run file (default: General)"
	MsgFlagSettings = "Print the default settings file instead"
)

// Output messages
const (
	MsgNoEntries      = "No %s registered."
	MsgPlanHeader     = "Network %s (config %s, chain %s)"
	MsgVersionFormat  = "simreg version %s\n  commit: %s\n  built:  %s\n"
	MsgUnknownKind    = "unknown kind %q, expected one of: %s"
	MsgBadArgument    = "argument %q is not a number"
	MsgNoSuchFunction = "no function named %q"
)

package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Inspect and plan FOMOD package installations"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgInspectShort    = "Show the pages, groups and options of a package"
	MsgInspectLong     = "Inspect loads a package description and prints its wizard pages, option groups, conditions and conditional installs."
	MsgPlanShort       = "Resolve the files a package would install"
	MsgRunShort        = "Walk the installation wizard interactively"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	// Status messages
	MsgPackageNotApplicable = "Package %q does not apply to this installation"
	MsgPageHeader           = "Page %d: %s"
	MsgBackOption           = "« back"
	MsgSelectOne            = "%s (choose one)"
	MsgSelectMany           = "%s (choose any)"

	// Version output
	MsgVersionFormat = "fomod version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrLoadPackage = "failed to load package: %w"
	MsgErrBadFlag     = "invalid --flag %q, expected name=value"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/fomod/config.toml)"
	MsgFlagFormat      = "Output format: auto, term, text, json, yaml or toml"
	MsgFlagAnswers     = "YAML file with the options to select on each page"
	MsgFlagGameVersion = "Game version used by game dependencies"
	MsgFlagFlag        = "Initial flag as name=value (repeatable)"
	MsgFlagTarget      = "Game directory probed for file dependencies"
	MsgFlagForce       = "Plan even when the package dependencies are not met"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/plan-long.txt
	msgPlanLongRaw string
	MsgPlanLong    = strings.TrimSpace(msgPlanLongRaw)

	//go:embed msgs/plan-example.txt
	msgPlanExampleRaw string
	MsgPlanExample    = strings.TrimRight(msgPlanExampleRaw, "\n")

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)
)

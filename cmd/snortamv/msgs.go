package snortamv

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A lifecycle manager for intrusion-detection rule files"
	MsgRuleShort       = "Author, enable, disable, build and back up rule files"
	MsgAddShort        = "Append an alert directive to a rule file"
	MsgListShort       = "List rule files in every state"
	MsgListLong        = "List shows the rule files in source/, enabled/ and disabled/, the backups taken so far and the state of the quick-start file."
	MsgEnableShort     = "Copy a source rule file into enabled/"
	MsgDisableShort    = "Move an enabled rule file into disabled/"
	MsgBuildShort      = "Compile enabled rule files into the generated ruleset"
	MsgBackupShort     = "Archive the rule tree into backups/"
	MsgValidateShort   = "Check the rule tree for problems"
	MsgSetupShort      = "Create the rule tree and the quick-start file"
	MsgGenConfigShort  = "Print or write a configuration file"
	MsgVersionShort    = "Show version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat = "snortamv %s (commit %s, built %s)"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrTreeInvalid  = "rule tree has problems"
	MsgErrHelpNotFound = "help command not found"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagConfig      = "Configuration file (default $XDG_CONFIG_HOME/snortamv/config.toml)"
	MsgFlagRoot        = "Root of the rule tree (overrides rules.root)"
	MsgFlagFormat      = "Output format: auto, term, text, json, yaml or xml"
	MsgFlagName        = "Source rule file to append to (default: the quick-start file)"
	MsgFlagProtocol    = "Protocol: tcp, udp, icmp or ip"
	MsgFlagSrc         = "Source address"
	MsgFlagSrcPort     = "Source port"
	MsgFlagDst         = "Destination address"
	MsgFlagDstPort     = "Destination port"
	MsgFlagMsg         = "Alert message"
	MsgFlagSID         = "Signature id"
	MsgFlagRev         = "Revision"
	MsgFlagInteractive = "Prompt for every field not given as a flag"
	MsgFlagEffective   = "Show the configuration in use instead of the commented defaults"
	MsgFlagWrite       = "Write the configuration to the user config location"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/rule-long.txt
	msgRuleLongRaw string
	MsgRuleLong    = strings.TrimSpace(msgRuleLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/add-example.txt
	msgAddExampleRaw string
	MsgAddExample    = strings.TrimRight(msgAddExampleRaw, "\n")

	//go:embed msgs/enable-long.txt
	msgEnableLongRaw string
	MsgEnableLong    = strings.TrimSpace(msgEnableLongRaw)

	//go:embed msgs/disable-long.txt
	msgDisableLongRaw string
	MsgDisableLong    = strings.TrimSpace(msgDisableLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/backup-long.txt
	msgBackupLongRaw string
	MsgBackupLong    = strings.TrimSpace(msgBackupLongRaw)

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/setup-long.txt
	msgSetupLongRaw string
	MsgSetupLong    = strings.TrimSpace(msgSetupLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

package snortamv

import (
	"github.com/arthur-debert/snortamv/pkg/commands"
	"github.com/arthur-debert/snortamv/pkg/directive"
	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/types"
	"github.com/spf13/cobra"
)

func newRuleCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rule",
		Short:   MsgRuleShort,
		Long:    MsgRuleLong,
		GroupID: "core",
	}

	cmd.AddCommand(newAddCmd(s))
	cmd.AddCommand(newListCmd(s))
	cmd.AddCommand(newEnableCmd(s))
	cmd.AddCommand(newDisableCmd(s))
	cmd.AddCommand(newBuildCmd(s))
	cmd.AddCommand(newBackupCmd(s))
	cmd.AddCommand(newValidateCmd(s))

	return cmd
}

// ruleNamesCompletion completes rule file names picked from a listing
func ruleNamesCompletion(s *session, pick func(*types.ListResult) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		if s.config == nil {
			if err := s.prepare(cmd); err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
		}
		result, err := commands.List(commands.ListOptions{Env: s.env()})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return pick(result), cobra.ShellCompDirectiveNoFileComp
	}
}

func newAddCmd(s *session) *cobra.Command {
	var (
		name        string
		fields      directive.Fields
		interactive bool
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		Example: MsgAddExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Add(commands.AddOptions{
				Env:         s.env(),
				Name:        name,
				Fields:      fields,
				Interactive: interactive,
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
			})
			return s.render(cmd, result, err)
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", MsgFlagName)
	f.StringVar(&fields.Protocol, "protocol", "", MsgFlagProtocol)
	f.StringVar(&fields.Source, "src", "", MsgFlagSrc)
	f.StringVar(&fields.SourcePort, "src-port", "", MsgFlagSrcPort)
	f.StringVar(&fields.Destination, "dst", "", MsgFlagDst)
	f.StringVar(&fields.DestinationPort, "dst-port", "", MsgFlagDstPort)
	f.StringVar(&fields.Message, "msg", "", MsgFlagMsg)
	f.StringVar(&fields.SID, "sid", "", MsgFlagSID)
	f.StringVar(&fields.Rev, "rev", "", MsgFlagRev)
	f.BoolVarP(&interactive, "interactive", "i", false, MsgFlagInteractive)

	_ = cmd.RegisterFlagCompletionFunc("protocol", cobra.FixedCompletions(
		[]string{"tcp", "udp", "icmp", "ip"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("name", ruleNamesCompletion(s, func(l *types.ListResult) []string {
		return l.Source
	}))

	return cmd
}

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Long:  MsgListLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.List(commands.ListOptions{Env: s.env()})
			return s.render(cmd, result, err)
		},
	}
}

func newEnableCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "enable <name>",
		Short: MsgEnableShort,
		Long:  MsgEnableLong,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: ruleNamesCompletion(s, func(l *types.ListResult) []string {
			return l.Source
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Enable(commands.TransitionOptions{Env: s.env(), Name: args[0]})
			return s.render(cmd, result, err)
		},
	}
}

func newDisableCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "disable <name>",
		Short: MsgDisableShort,
		Long:  MsgDisableLong,
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: ruleNamesCompletion(s, func(l *types.ListResult) []string {
			return l.Enabled
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Disable(commands.TransitionOptions{Env: s.env(), Name: args[0]})
			return s.render(cmd, result, err)
		},
	}
}

func newBuildCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: MsgBuildShort,
		Long:  MsgBuildLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Build(commands.BuildOptions{Env: s.env()})
			return s.render(cmd, result, err)
		},
	}
}

func newBackupCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: MsgBackupShort,
		Long:  MsgBackupLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Backup(commands.BackupOptions{Env: s.env()})
			return s.render(cmd, result, err)
		},
	}
}

func newValidateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: MsgValidateShort,
		Long:  MsgValidateLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Validate(commands.ValidateOptions{Env: s.env()})
			if err := s.render(cmd, result, err); err != nil {
				return err
			}
			if !result.Valid {
				return errors.New(errors.ErrTreeInvalid, MsgErrTreeInvalid).
					WithDetail("problems", len(result.Problems)).
					WithDetail("conflicts", len(result.Conflicts))
			}
			return nil
		},
	}
}

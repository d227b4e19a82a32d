package snortamv

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/snortamv/internal/version"
	"github.com/arthur-debert/snortamv/pkg/cobrax/topics"
	"github.com/arthur-debert/snortamv/pkg/commands"
	"github.com/arthur-debert/snortamv/pkg/config"
	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/arthur-debert/snortamv/pkg/logging"
	"github.com/arthur-debert/snortamv/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// annotationNoConfig marks commands that run without loading the configuration
const annotationNoConfig = "snortamv/no-config"

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configFile string
	root       string
	format     string
}

// session carries what the persistent pre-run resolved for the running command
type session struct {
	flags  globalFlags
	config *config.Config
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	s := &session{}

	rootCmd := &cobra.Command{
		Use:     "snortamv",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.prepare(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&s.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&s.flags.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVar(&s.flags.configFile, "config", "", MsgFlagConfig)
	flags.StringVar(&s.flags.root, "root", "", MsgFlagRoot)
	flags.StringVar(&s.flags.format, "format", "", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json", "yaml", "xml"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRuleCmd(s))
	rootCmd.AddCommand(newSetupCmd(s))
	rootCmd.AddCommand(newGenConfigCmd(s))
	rootCmd.AddCommand(newVersionCmd(s))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".txt", ".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Debug().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// prepare loads the configuration and sets up logging
func (s *session) prepare(cmd *cobra.Command) error {
	if !needsConfig(cmd) {
		logging.SetupLogger(s.flags.verbosity)
		return nil
	}

	overrides := map[string]interface{}{}
	if s.flags.root != "" {
		overrides["rules.root"] = s.flags.root
	}
	if s.flags.format != "" {
		overrides["output.format"] = s.flags.format
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: s.flags.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		logging.SetupLogger(s.flags.verbosity)
		return err
	}
	s.config = cfg

	logging.SetLogFile(cfg.Logging.File)
	logging.SetupLogger(s.flags.verbosity)
	log.Debug().Str("command", cmd.CommandPath()).Bool("dry_run", s.flags.dryRun).Msg("Command started")

	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	if layout.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, layout.Root())
	}
	return nil
}

func needsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoConfig] != "" {
			return false
		}
	}
	return true
}

// env is the command environment for the resolved configuration
func (s *session) env() commands.Env {
	return commands.Env{
		Config: s.config,
		DryRun: s.flags.dryRun,
	}
}

// renderer writes results to the command's output in the configured format
func (s *session) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	name := s.flags.format
	if s.config != nil {
		name = s.config.Output.Format
	}
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// render prints result when the operation succeeded
func (s *session) render(cmd *cobra.Command, result interface{}, err error) error {
	if err != nil {
		return err
	}
	r, err := s.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

func newSetupCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		Short:   MsgSetupShort,
		Long:    MsgSetupLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.Setup(commands.SetupOptions{Env: s.env()})
			return s.render(cmd, result, err)
		},
	}
}

func newGenConfigCmd(s *session) *cobra.Command {
	var effective, write bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := commands.GenConfig(commands.GenConfigOptions{
				Env:       s.env(),
				Effective: effective,
				Write:     write,
			})
			if err != nil {
				return err
			}
			if write {
				return s.render(cmd, result, nil)
			}
			// Without --write the content itself is the output
			fmt.Fprint(cmd.OutOrStdout(), result.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)

	return cmd
}

func newVersionCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := s.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderMessage(fmt.Sprintf(MsgVersionFormat, version.Version, version.Commit, version.Date))
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "topics",
		Short:       MsgTopicsShort,
		Long:        MsgTopicsLong,
		GroupID:     "misc",
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return errors.New(errors.ErrInternal, MsgErrHelpNotFound)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		Annotations:           map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

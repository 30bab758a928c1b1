package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/fomod/internal/version"
	"github.com/arthur-debert/fomod/pkg/answers"
	"github.com/arthur-debert/fomod/pkg/config"
	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/arthur-debert/fomod/pkg/filesystem"
	"github.com/arthur-debert/fomod/pkg/logging"
	"github.com/arthur-debert/fomod/pkg/plan"
	"github.com/arthur-debert/fomod/pkg/style"
	"github.com/arthur-debert/fomod/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{fs: filesystem.NewOS()})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fomod",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&opts.format, "output", "o", "", MsgFlagFormat)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newInspectCmd(opts))
	rootCmd.AddCommand(newPlanCmd(opts))
	rootCmd.AddCommand(newRunCmd(opts, ptermPrompter{}))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <package-dir>",
		Short: MsgInspectShort,
		Long:  MsgInspectLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			format, err := outputFormat(cfg)
			if err != nil {
				return err
			}

			pkg, err := opts.loadPackage(args[0])
			if err != nil {
				return err
			}

			log.Info().Str("package", pkg.Name).Int("pages", len(pkg.Pages)).Msg("Package loaded")
			fmt.Fprintln(cmd.OutOrStdout(), style.NewRenderer(format).RenderPackage(pkg))
			return nil
		},
	}
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var (
		so          sessionOptions
		answersFile string
		force       bool
	)

	cmd := &cobra.Command{
		Use:     "plan <package-dir>",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(args[0], &so)
			if err != nil {
				return err
			}
			if err := s.checkApplicable(force); err != nil {
				return err
			}

			var ans *answers.Answers
			if answersFile != "" {
				if ans, err = answers.Load(opts.fs, answersFile); err != nil {
					return err
				}
			}

			if _, err := s.installer.Next(nil); err != nil {
				return err
			}
			for page := s.installer.Page(); page != nil; page = s.installer.Page() {
				selected, err := ans.Select(page)
				if err != nil {
					return err
				}
				log.Info().Str("page", page.Name).Int("selected", len(selected)).Msg("Page answered")
				if _, err := s.installer.Next(selected); err != nil {
					return err
				}
			}

			return s.printPlan(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&answersFile, "answers", "", MsgFlagAnswers)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	so.register(cmd)
	return cmd
}

func newRunCmd(opts *rootOptions, p prompter) *cobra.Command {
	var (
		so    sessionOptions
		force bool
	)

	cmd := &cobra.Command{
		Use:   "run <package-dir>",
		Short: MsgRunShort,
		Long:  MsgRunLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.openSession(args[0], &so)
			if err != nil {
				return err
			}
			if err := s.checkApplicable(force); err != nil {
				return err
			}

			format, err := outputFormat(s.cfg)
			if err != nil {
				return err
			}
			renderer := style.NewRenderer(format)
			out := cmd.OutOrStdout()

			w := &wizard{
				inst:   s.installer,
				prompt: p,
				show: func(page *types.Page) {
					fmt.Fprintln(out, renderer.RenderPage(page))
				},
			}
			if err := w.run(); err != nil {
				return err
			}

			return s.printPlan(out)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	so.register(cmd)
	return cmd
}

func (so *sessionOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&so.gameVersion, "game-version", "", MsgFlagGameVersion)
	cmd.Flags().StringArrayVar(&so.flags, "flag", nil, MsgFlagFlag)
	cmd.Flags().StringVar(&so.target, "target", "", MsgFlagTarget)
}

func (s *session) checkApplicable(force bool) error {
	valid, err := s.installer.IsValid()
	if err != nil {
		return err
	}
	if !valid && !force {
		return fomoderrors.Newf(fomoderrors.ErrPackageInvalid, MsgPackageNotApplicable, s.pkg.Name).
			WithDetail("dependencies", style.DescribeDependency(s.pkg.Dependencies))
	}
	return nil
}

func (s *session) printPlan(out io.Writer) error {
	format, err := outputFormat(s.cfg)
	if err != nil {
		return err
	}

	entries := plan.FromFiles(s.installer.Files())
	if format.Structured() {
		return plan.Encode(out, format.String(), entries)
	}
	fmt.Fprintln(out, style.NewRenderer(format).RenderPlan(entries))
	return nil
}

// outputFormat resolves the configured format against stdout
func outputFormat(cfg *config.Config) (style.Format, error) {
	format, err := style.ParseFormat(cfg.Output.Format)
	if err != nil {
		return format, err
	}
	return format.Resolve(os.Stdout), nil
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(fomod completion bash)

Zsh:
  $ fomod completion zsh > "${fpath[1]}/_fomod"

Fish:
  $ fomod completion fish | source

PowerShell:
  PS> fomod completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenMan(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// GenMan writes the man page for root to w
func GenMan(root *cobra.Command, w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "FOMOD",
		Section: "1",
		Source:  "fomod " + version.Version,
		Manual:  "fomod manual",
	}
	return doc.GenMan(root, header, w)
}

// Package cmd provides the command-line interface for covgap
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/yeisme/covgap/pkg/check"
	"github.com/yeisme/covgap/pkg/configs"
	"github.com/yeisme/covgap/pkg/context"
	"github.com/yeisme/covgap/pkg/utils/log"
	"github.com/yeisme/covgap/pkg/utils/version"
)

const usageText = `Usage: covgap <folder-path>
Example: covgap src/components
`

// errUsage is returned when the positional arguments are wrong; nothing else runs.
var errUsage = errors.New("expected exactly one folder path")

// checkError marks failures of the coverage pipeline itself, as opposed to
// flag or config errors raised before it starts.
type checkError struct {
	err error
}

func (e *checkError) Error() string { return e.err.Error() }
func (e *checkError) Unwrap() error { return e.err }

// flagBindings maps root command flags onto config keys, so a flag that is
// set wins over the config file and environment.
var flagBindings = map[string]string{
	"format":     "check.format",
	"report":     "check.report_path",
	"exclude":    "check.exclude",
	"skip-tests": "check.skip_tests",
}

func newRootCmd() *cobra.Command {
	var (
		globalFlags context.GlobalFlags
		covCtx      *context.CovContext
	)

	rootCmd := &cobra.Command{
		Use:   "covgap <folder-path>",
		Short: "Report files in a folder that are not fully covered by tests",
		Long: strings.TrimSpace(`
covgap runs the project's test command, reads coverage/coverage-final.json and
lists every file under <folder-path> whose statement, function or branch
coverage is below 100%.

Examples:
  # Run "npm run test" and check src/components
  covgap src/components

  # Reuse the report from a previous run
  covgap --skip-tests src/components

  # Machine readable output
  covgap --format json src

  # Ignore test helpers
  covgap --exclude "**/*.stories.tsx" --exclude "src/mocks/**" src

Notes:
  - The test command and report location can be changed in .covgap.yaml
    (check.test_command, check.report_path) or via COVGAP_* variables.
  - The test command runs with all standard streams discarded.
  - Exit status is 1 on any failure, 0 otherwise.`),
		Version:       version.Version,
		Args:          exactlyOneFolder,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := context.InitCovContext(cmd.Context(), globalFlags, func(v *viper.Viper) error {
				return bindFlags(v, cmd.Root().Flags())
			})
			if err != nil {
				return err
			}
			covCtx = ctx

			covCtx.Logger.Info().
				Str("config", covCtx.Viper.ConfigFileUsed()).
				Msgf("Execute Command: %s %s", "covgap", strings.Join(os.Args[1:], " "))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := check.OptionsFromConfig(args[0], &covCtx.Config.Check)
			if err != nil {
				return err
			}
			covCtx.Logger.Debug().
				Strs("test_command", opts.TestCommand).
				Str("report", opts.ReportPath).
				Str("format", string(opts.Format)).
				Msg("checking coverage")

			checker := check.NewChecker(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if _, err := checker.Run(covCtx, opts); err != nil {
				return &checkError{err: err}
			}
			return nil
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(version.GetShortVersionString() + "\n")

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all logging")

	rootCmd.Flags().StringP("format", "f", string(configs.FormatText),
		"output format: "+strings.Join(configs.ValidFormats(), ", "))
	rootCmd.Flags().String("report", "", "coverage report path (default coverage/coverage-final.json)")
	rootCmd.Flags().StringSlice("exclude", nil, "doublestar pattern of files to ignore (repeatable)")
	rootCmd.Flags().Bool("skip-tests", false, "read the existing report without running tests")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")

	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func exactlyOneFolder(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagBindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// run executes the CLI with args and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var ce *checkError
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprint(stdout, usageText)
	case errors.As(err, &ce):
		log.Debug().Err(ce.err).Msg("coverage check failed")
		fmt.Fprintln(stdout, check.Message(ce.err))
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

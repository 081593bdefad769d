package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yeisme/covgap/pkg/utils/version"
)

func newVersionCmd() *cobra.Command {
	var (
		versionDetailed bool
		versionJSON     bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `
Display version information for covgap.

Examples:
  # Show short version info (default)
  covgap version

  # Show detailed version info
  covgap version --detailed

  # Show version info in JSON format
  covgap version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			switch {
			case versionJSON:
				output, err := json.MarshalIndent(version.GetVersion(), "", "  ")
				if err != nil {
					return fmt.Errorf("format version as JSON: %w", err)
				}
				fmt.Fprintln(out, string(output))
			case versionDetailed:
				fmt.Fprintln(out, version.GetVersionString())
			default:
				fmt.Fprintln(out, version.GetShortVersionString())
			}
			return nil
		},
	}

	versionCmd.Flags().BoolVarP(&versionDetailed, "detailed", "d", false, "show detailed version information")
	versionCmd.Flags().BoolVarP(&versionJSON, "json", "j", false, "output version information in JSON format")
	return versionCmd
}

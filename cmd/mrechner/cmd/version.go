package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/mRechner/pkg/core/version"
)

var (
	Version   = version.Application
	GitCommit = "development"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version an",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "meinRECHNER v%s\n", Version)
		fmt.Fprintf(out, "  Git Commit: %s\n", GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		if verbose {
			for _, c := range version.Components() {
				fmt.Fprintf(out, "  %-11s %s\n", c+":", version.ComponentVersion(c))
			}
			fmt.Fprintf(out, "  %-11s %d\n", "schema:", version.HistorySchema)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

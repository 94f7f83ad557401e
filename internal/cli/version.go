package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set with -ldflags "-X github.com/mgpai22/subed/internal/cli.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "subed %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

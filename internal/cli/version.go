// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the condenv release, set at build time with -ldflags
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(out, "condenv version %s\n", Version)
		fmt.Fprintln(out, "Conda environment manager")
		fmt.Fprintln(out, "https://github.com/arc-language/condenv")
	},
}

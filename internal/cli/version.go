package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Overridden at release time via -ldflags "-X ...cli.version=v1.2.3".
var (
	version = "dev"
	commit  = "none"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if settings.Output == "json" {
				newOutput(cmd).Print(map[string]string{
					"version": version,
					"commit":  commit,
					"go":      runtime.Version(),
				})
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gamebuild %s (%s, %s)\n", version, commit, runtime.Version())
			return nil
		},
	}
}

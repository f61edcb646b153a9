package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AttachCobraVersionCommand adds the shared `version` subcommand to a root
// command, so forge-builder and forge-verifier report build metadata the
// same way.
func AttachCobraVersionCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long: "Print the binary's version, commit hash and build timestamp. " +
			"These values are injected via ldflags on release builds and fall back to local-build defaults.",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full())
		},
	})
}

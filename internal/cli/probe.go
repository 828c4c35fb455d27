// internal/cli/probe.go
package cli

import (
	"github.com/arc-language/extconf"
	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run every probe and print the Makefile without writing it",
	Long: `Run the same probes as configure, in the same order, and print the
resulting Makefile to stdout. Nothing is written to disk.

Examples:
  extconf probe
  extconf probe --target=mingw32 > Makefile.mingw`,
	Args: cobra.NoArgs,
	RunE: runProbe,
}

func runProbe(cmd *cobra.Command, args []string) error {
	opts := extconf.Options{DryRun: cmd.OutOrStdout(), Debug: cmd.ErrOrStderr()}
	if _, err := extconf.Configure(config, opts); err != nil {
		return fail(cmd.ErrOrStderr(), err)
	}
	return nil
}

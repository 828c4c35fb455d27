// internal/cli/cross.go
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/arc-language/extconf"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var crossCmd = &cobra.Command{
	Use:   "cross",
	Short: "Manage vendored cross-compilation bundles",
}

var crossUnpackCmd = &cobra.Command{
	Use:   "unpack [bundle.tar.xz...]",
	Short: "Unpack bundles into <root>/cross",
	Long: `Unpack prebuilt win32 bundles into the cross directory searched for
windows-like targets.

Examples:
  extconf cross unpack libxml2-2.7.1.win32.tar.xz libxslt-1.1.24.win32.tar.xz
  extconf cross unpack --root=../.. include.tar.xz`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCrossUnpack,
}

func init() {
	crossCmd.AddCommand(crossUnpackCmd)
}

func runCrossUnpack(cmd *cobra.Command, args []string) error {
	var logger *log.Logger
	if config.Debug {
		logger = log.New(os.Stdout, "[CROSS] ", log.LstdFlags)
	}

	for _, bundle := range args {
		stats, err := extconf.UnpackCross(config, bundle, logger)
		if err != nil {
			return fail(cmd.ErrOrStderr(), fmt.Errorf("unpacking %s: %w", bundle, err))
		}
		color.Success.Printf("✓ %s: %d files, %d directories, %d symlinks\n",
			bundle, stats.Files, stats.Dirs, stats.Symlinks)
	}
	return nil
}

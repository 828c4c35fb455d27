// internal/cli/init.go
package cli

import (
	"fmt"
	"os"

	"github.com/arc-language/extconf/pkg/core"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an extconf.yaml with the current settings",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = core.DefaultConfigFile
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := core.SaveConfig(config, path); err != nil {
		return err
	}
	color.Success.Printf("wrote %s\n", path)
	return nil
}

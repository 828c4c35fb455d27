// internal/cli/root.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arc-language/extconf/pkg/core"
	"github.com/arc-language/extconf/pkg/platform"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	target     string
	root       string
	outputDir  string
	withOptDir []string
	debug      bool
	config     *core.Config
	configErr  error // Set when a config file exists but cannot be used
)

// errReported marks an error whose diagnostic has already been printed
var errReported = errors.New("configuration failed")

// IsReported reports whether err was already shown to the user
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}

// rootCmd represents the base command. Without a subcommand it configures.
var rootCmd = &cobra.Command{
	Use:   "extconf",
	Short: "Probe native dependencies and generate a Makefile",
	Long: `extconf - native extension configuration

Detects the target platform, checks for libxml2, libxslt, their headers
and the racc/frex generators, and writes a Makefile for the native
extension. Stops at the first missing dependency.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConfigure,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		return configErr
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./extconf.yaml)")
	rootCmd.PersistentFlags().StringVar(&target, "target", "",
		"target identifier or triple; known: "+strings.Join(platform.KnownTargets(), ", "))
	rootCmd.PersistentFlags().StringVar(&root, "root", "", "project root holding the cross/ directory")
	rootCmd.PersistentFlags().StringSliceVar(&withOptDir, "with-opt-dir", nil, "extra prefix to search first (repeatable)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory the Makefile is written to")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "echo probe log to stdout")

	// Add commands
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(crossCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	configErr = nil
	if err != nil {
		// LoadConfig only fails for a file that exists or was named explicitly
		name := cfgFile
		if name == "" {
			name = core.DefaultConfigFile
		}
		configErr = fmt.Errorf("loading config %s: %w", name, err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if target != "" {
		config.Target = target
	}
	if root != "" {
		config.Root = root
	}
	if outputDir != "" {
		config.OutputDir = outputDir
	}
	if len(withOptDir) > 0 {
		config.SearchRoots = append(withOptDir, config.SearchRoots...)
	}
	if debug {
		config.Debug = true
	}
}

// internal/cli/configure.go
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arc-language/extconf"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Probe dependencies and write the Makefile",
	Long: `Probe every hard dependency in order and write the Makefile.

Examples:
  extconf configure
  extconf configure --target=i686-w64-mingw32 --root=../..
  extconf configure --with-opt-dir=/opt/local --debug`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	res, err := extconf.Configure(config, extconf.Options{})
	if err != nil {
		return fail(cmd.ErrOrStderr(), err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "platform: %s\n", res.Platform.String())
	for _, lib := range res.Libraries {
		fmt.Fprintf(out, "  %-6s %s\n", lib.Link, lib.Path)
	}
	for _, h := range res.Headers {
		fmt.Fprintf(out, "  %-6s %s\n", "-I", h.Path)
	}
	for _, x := range res.Executables {
		fmt.Fprintf(out, "  %-6s %s\n", x.Name, x.Path)
	}
	fmt.Fprintln(out, color.Success.Sprintf("creating %s", res.Makefile))
	return nil
}

// fail prints the diagnostic to w (stderr) and returns an error so the
// process exits non-zero
func fail(w io.Writer, err error) error {
	fmt.Fprintln(w, color.Danger.Sprintf("*** extconf failed: %v", err))
	if config != nil && config.LogFile != "" {
		logPath := filepath.Join(config.OutputDir, config.LogFile)
		if _, statErr := os.Stat(logPath); statErr == nil {
			fmt.Fprintf(w, "Check %s for details.\n", logPath)
		}
	}
	return errReported
}

// cmd/extconf/main.go
package main

import (
	"fmt"
	"os"

	"github.com/arc-language/extconf/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

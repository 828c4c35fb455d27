//go:build unix

// pkg/env/executable_unix.go
package env

import (
	"os"

	"golang.org/x/sys/unix"
)

func executableNames(name string, _ []string) []string {
	return []string{name}
}

// isExecutable reports whether path is a regular file the current user may execute
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return unix.Access(path, unix.X_OK) == nil
}

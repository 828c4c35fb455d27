//go:build !unix && !windows

// pkg/env/executable_other.go
package env

import "os"

func executableNames(name string, _ []string) []string {
	return []string{name}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

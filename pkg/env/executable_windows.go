//go:build windows

// pkg/env/executable_windows.go
package env

import (
	"os"
	"path/filepath"
	"strings"
)

var defaultPathExt = []string{".com", ".exe", ".bat", ".cmd"}

// executableNames expands name with each PATHEXT extension unless it already has one
func executableNames(name string, pathExt []string) []string {
	if len(pathExt) == 0 {
		pathExt = defaultPathExt
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range pathExt {
		if ext != "" && ext == e {
			return []string{name}
		}
	}
	names := make([]string, 0, len(pathExt))
	for _, e := range pathExt {
		if e != "" {
			names = append(names, name+e)
		}
	}
	return names
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

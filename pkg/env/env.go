// pkg/env/env.go
package env

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/extconf/pkg/platform"
)

// Environment answers presence queries against the host: libraries,
// headers and executables
type Environment struct {
	Root     string        // Project root, expanded for $ROOT
	Snapshot Snapshot      // Captured environment variables
	Roots    []string      // Extra search prefixes, searched first
	Symbols  SymbolChecker // Decides whether a candidate exports the probe symbol

	// Paths overrides the built-in per-variant search table when set
	Paths map[platform.Variant]SearchPaths

	// DefaultLibraryDirs overrides the toolchain default library path when set
	DefaultLibraryDirs []string

	logger *log.Logger
}

// New creates an environment. A nil logger discards probe output and a nil
// checker accepts any library file.
func New(root string, snap Snapshot, symbols SymbolChecker, logger *log.Logger) *Environment {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if symbols == nil {
		symbols = AnySymbol{}
	}
	return &Environment{
		Root:     root,
		Snapshot: snap,
		Symbols:  symbols,
		logger:   logger,
	}
}

// Capture reads the variables a run depends on. getenv is normally os.Getenv.
func Capture(getenv func(string) string) Snapshot {
	if getenv == nil {
		getenv = os.Getenv
	}
	var pathExt []string
	if v := getenv("PATHEXT"); v != "" {
		pathExt = strings.Split(strings.ToLower(v), ";")
	}
	return Snapshot{
		Home:        getenv("HOME"),
		Path:        splitList(getenv("PATH")),
		PathExt:     pathExt,
		LibraryPath: splitList(getenv("LIBRARY_PATH")),
		ArchFlags:   getenv("ARCHFLAGS"),
	}
}

// splitList splits a PATH-style value, keeping empty entries (they mean ".")
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return filepath.SplitList(v)
}

// searchPaths returns the table entry for v
func (e *Environment) searchPaths(v platform.Variant) SearchPaths {
	if e.Paths != nil {
		if sp, ok := e.Paths[v]; ok {
			return sp
		}
	}
	return DefaultSearchPaths(v)
}

// expand substitutes $ROOT and $HOME from the environment's own values,
// never from the process environment. It reports false when a placeholder
// has no value; such entries are dropped rather than rooted at "/".
func (e *Environment) expand(dir string) (string, bool) {
	ok := true
	out := os.Expand(dir, func(key string) string {
		var v string
		switch key {
		case "ROOT":
			v = e.Root
		case "HOME":
			v = e.Snapshot.Home
		}
		if v == "" {
			ok = false
		}
		return v
	})
	if !ok {
		return "", false
	}
	return filepath.Clean(out), true
}

// LibraryDirs returns the ordered directories searched for a library on v:
// search roots, then the variant's explicit directories, or the toolchain
// default path when the variant names none
func (e *Environment) LibraryDirs(v platform.Variant, name string) []string {
	var dirs []string
	for _, root := range e.Roots {
		dirs = append(dirs, e.rootLayout(root).libraryDirs(root)...)
	}

	if explicit := e.searchPaths(v).Libraries[name]; len(explicit) > 0 {
		for _, dir := range explicit {
			if d, ok := e.expand(dir); ok {
				dirs = append(dirs, d)
			}
		}
		return dedupe(dirs)
	}

	dirs = append(dirs, e.Snapshot.LibraryPath...)
	if e.DefaultLibraryDirs != nil {
		dirs = append(dirs, e.DefaultLibraryDirs...)
	} else {
		dirs = append(dirs, defaultLibraryDirs()...)
	}
	return dedupe(dirs)
}

// HeaderDirs returns the ordered candidate include directories for a header on v
func (e *Environment) HeaderDirs(v platform.Variant, name, subdir string) []string {
	var dirs []string
	for _, root := range e.Roots {
		for _, inc := range e.rootLayout(root).includeDirs(root) {
			dirs = append(dirs, inc)
			if subdir != "" {
				dirs = append(dirs, filepath.Join(inc, subdir))
			}
		}
	}
	for _, dir := range e.searchPaths(v).Headers[name] {
		if d, ok := e.expand(dir); ok {
			dirs = append(dirs, d)
		}
	}
	return dedupe(dirs)
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// pkg/env/roots.go
package env

import (
	"path/filepath"

	"zombiezen.com/go/nix"
)

// rootLayout picks the layout for a search root. Nix store paths are flat;
// anything else is treated as an FHS-style prefix.
func (e *Environment) rootLayout(root string) PackageLayout {
	if sp, err := nix.ParseStorePath(filepath.Clean(root)); err == nil {
		e.logger.Printf("search root %s is nix store object %s", root, sp.Name())
		return getNixLayout()
	}
	return getDefaultLayout()
}

func (l PackageLayout) libraryDirs(root string) []string {
	dirs := make([]string, 0, len(l.Libraries))
	for _, rel := range l.Libraries {
		dirs = append(dirs, filepath.Join(root, rel))
	}
	return dirs
}

func (l PackageLayout) includeDirs(root string) []string {
	dirs := make([]string, 0, len(l.Includes))
	for _, rel := range l.Includes {
		dirs = append(dirs, filepath.Join(root, rel))
	}
	return dirs
}

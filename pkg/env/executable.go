// pkg/env/executable.go
package env

import (
	"fmt"
	"path/filepath"

	"github.com/arc-language/extconf/pkg/core"
)

// FindExecutable walks the captured PATH for req.Name. There are no
// fallback directories.
func (e *Environment) FindExecutable(req core.ExecutableRequirement) (*Executable, error) {
	e.logger.Printf("checking for %s in PATH", req.Name)

	for _, dir := range e.Snapshot.Path {
		if dir == "" {
			dir = "."
		}
		for _, name := range executableNames(req.Name, e.Snapshot.PathExt) {
			path := filepath.Join(dir, name)
			if isExecutable(path) {
				e.logger.Printf("  found %s", path)
				return &Executable{Name: req.Name, Path: path}, nil
			}
		}
	}

	return nil, &core.Error{
		Op:   "need " + req.Name,
		Name: req.Name,
		Hint: req.Hint,
		Err:  fmt.Errorf("%w in PATH", core.ErrExecutableNotFound),
	}
}

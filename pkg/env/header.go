// pkg/env/header.go
package env

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arc-language/extconf/pkg/core"
	"github.com/arc-language/extconf/pkg/platform"
)

// FindHeader checks each candidate include directory for req.Name
func (e *Environment) FindHeader(v platform.Variant, req core.HeaderRequirement) (*Header, error) {
	dirs := e.HeaderDirs(v, req.Name, req.Subdir)
	e.logger.Printf("checking for %s in %s", req.Name, strings.Join(dirs, ", "))

	for _, dir := range dirs {
		path := filepath.Join(dir, filepath.FromSlash(req.Name))
		if !fileExists(path) {
			continue
		}
		e.logger.Printf("  found %s", path)
		return &Header{
			Name:   req.Name,
			Dir:    dir,
			Path:   path,
			Define: req.Define(),
		}, nil
	}

	return nil, &core.Error{
		Op:   "need " + req.Package,
		Name: req.Name,
		Err:  fmt.Errorf("%w (searched %s)", core.ErrHeaderNotFound, strings.Join(dirs, ", ")),
	}
}

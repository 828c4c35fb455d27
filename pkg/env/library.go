// pkg/env/library.go
package env

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arc-language/extconf/pkg/core"
	"github.com/arc-language/extconf/pkg/platform"
)

// FindLibrary searches the variant's library directories, in order, for a
// file that exports req.Symbol. The first match wins.
func (e *Environment) FindLibrary(v platform.Variant, req core.LibraryRequirement) (*Library, error) {
	dirs := e.LibraryDirs(v, req.Name)
	e.logger.Printf("checking for %s() in -l%s in %s", req.Symbol, req.Name, strings.Join(dirs, ", "))

	for _, dir := range dirs {
		for _, path := range libraryCandidates(v, dir, req.Name) {
			ok, err := e.Symbols.HasSymbol(path, req.Symbol)
			if err != nil {
				e.logger.Printf("  %s: %v", path, err)
				continue
			}
			if !ok {
				e.logger.Printf("  %s: %s not exported", path, req.Symbol)
				continue
			}

			ext := libraryType(path)
			e.logger.Printf("  found %s", path)
			return &Library{
				Name:     req.Name,
				Path:     path,
				Dir:      dir,
				Type:     ext,
				IsStatic: isStaticType(ext),
				Link:     req.LinkDirective(),
			}, nil
		}
	}

	return nil, &core.Error{
		Op:   "need " + req.Package,
		Name: "-l" + req.Name,
		Err:  fmt.Errorf("%w: no candidate exports %s (searched %s)", core.ErrLibraryNotFound, req.Symbol, strings.Join(dirs, ", ")),
	}
}

// libraryCandidates lists existing library files for name in dir, in
// preference order. Only names the linker resolves for -l<name> count;
// a lone libxml2.so.2 without its libxml2.so link is not linkable.
func libraryCandidates(v platform.Variant, dir, name string) []string {
	var found []string
	for _, base := range libraryFileNames(v, name) {
		for _, ext := range libraryFileTypes(v) {
			fullPath := filepath.Join(dir, base+ext)
			if fileExists(fullPath) {
				found = append(found, fullPath)
			}
		}
	}
	return found
}

// libraryType returns the library extension of path, ignoring version suffixes
func libraryType(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".dll.a", ".dylib", ".dll", ".lib", ".so", ".a"} {
		if strings.HasSuffix(base, ext) || strings.Contains(base, ext+".") {
			return ext
		}
	}
	return filepath.Ext(base)
}

// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed deps.toml
var builtin string

// Entry maps one dependency to the package that provides it on each
// package manager backend
type Entry struct {
	Name     string            `toml:"name"`
	Backends map[string]string `toml:"backends"`
}

// Registry resolves dependency names (e.g. "libxslt") to backend package
// names (e.g. "libxslt1-dev" on apt)
type Registry struct {
	entries map[string]*Entry
}

// New returns the built-in registry
func New() *Registry {
	r := &Registry{entries: make(map[string]*Entry)}
	if err := r.merge(builtin); err != nil {
		panic(fmt.Sprintf("registry: built-in deps.toml: %v", err))
	}
	return r
}

// Load returns the built-in registry extended by the file at path.
// Entries in the file replace built-in entries of the same key.
func Load(path string) (*Registry, error) {
	r := New()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	if err := r.merge(string(data)); err != nil {
		return nil, fmt.Errorf("registry: failed to parse %s: %w", path, err)
	}
	return r, nil
}

func (r *Registry) merge(data string) error {
	var entries map[string]*Entry
	if _, err := toml.Decode(data, &entries); err != nil {
		return err
	}
	for key, e := range entries {
		if e.Name == "" {
			e.Name = key
		}
		r.entries[key] = e
	}
	return nil
}

// Names returns the registered dependency keys, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve takes a dependency name and a backend and returns the
// backend-specific package name.
// e.g. Resolve("libxml", "apt") -> "libxml2-dev"
func (r *Registry) Resolve(name, backend string) (string, error) {
	entry, ok := r.entries[name]
	if !ok {
		return "", fmt.Errorf("registry: package '%s' not found", name)
	}
	pkgName, ok := entry.Backends[backend]
	if !ok {
		return "", fmt.Errorf("registry: package '%s' has no entry for backend '%s'", name, backend)
	}
	return pkgName, nil
}

// Hint returns an install command for name on backend, or "" if either
// is unknown
func (r *Registry) Hint(name, backend string) string {
	pkgName, err := r.Resolve(name, backend)
	if err != nil {
		return ""
	}
	cmd, ok := installCommands[backend]
	if !ok {
		return ""
	}
	return "try: " + fmt.Sprintf(cmd, pkgName)
}

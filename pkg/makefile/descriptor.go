// pkg/makefile/descriptor.go
package makefile

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/arc-language/extconf/pkg/flags"
	"github.com/arc-language/extconf/pkg/platform"
)

// Params are the inputs a descriptor is built from
type Params struct {
	Variant    platform.Variant
	Flags      flags.FlagSet
	Defines    []string // HAVE_ defines from found headers
	Includes   []string // -I directives
	LibDirs    []string // -L directives
	Libs       []string // -l directives
	TargetName string   // e.g. "nokogiri/native"
	Sources    []string // C source files, relative to the source dir
	SourceDir  string   // Where Sources live, relative to the Makefile; empty means "."
}

// Descriptor is the build description handed to make. It is built once,
// after every probe succeeded, and is read-only afterwards.
type Descriptor struct {
	variant      platform.Variant
	arch         platform.ArchFlags
	cflags       []string
	defines      []string
	includes     []string
	libDirs      []string
	libs         []string
	target       string
	targetPrefix string
	sources      []string
	srcDir       string
}

// NewDescriptor copies p into a new descriptor
func NewDescriptor(p Params) *Descriptor {
	target, prefix := splitTarget(p.TargetName)
	return &Descriptor{
		variant:      p.Variant,
		arch:         p.Flags.Arch(),
		cflags:       p.Flags.Freeze().CFlags(),
		defines:      clone(p.Defines),
		includes:     clone(p.Includes),
		libDirs:      clone(p.LibDirs),
		libs:         clone(p.Libs),
		target:       target,
		targetPrefix: prefix,
		sources:      clone(p.Sources),
		srcDir:       srcDir(p.SourceDir),
	}
}

// splitTarget turns "nokogiri/native" into ("native", "/nokogiri")
func splitTarget(name string) (target, prefix string) {
	name = strings.Trim(path.Clean("/"+name), "/")
	dir, base := path.Split(name)
	if dir == "" {
		return base, ""
	}
	return base, "/" + strings.TrimSuffix(dir, "/")
}

func srcDir(dir string) string {
	if dir == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(dir))
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

func (d *Descriptor) Variant() platform.Variant     { return d.variant }
func (d *Descriptor) ArchFlags() platform.ArchFlags { return d.arch }
func (d *Descriptor) CFlags() []string              { return clone(d.cflags) }
func (d *Descriptor) Defines() []string             { return clone(d.defines) }
func (d *Descriptor) Includes() []string            { return clone(d.includes) }
func (d *Descriptor) LibDirs() []string             { return clone(d.libDirs) }
func (d *Descriptor) Libs() []string                { return clone(d.libs) }
func (d *Descriptor) Target() string                { return d.target }
func (d *Descriptor) TargetPrefix() string          { return d.targetPrefix }
func (d *Descriptor) Sources() []string             { return clone(d.sources) }
func (d *Descriptor) SourceDir() string             { return d.srcDir }

// Objects returns the object file for each source
func (d *Descriptor) Objects() []string {
	objs := make([]string, len(d.sources))
	for i, src := range d.sources {
		objs[i] = strings.TrimSuffix(src, filepath.Ext(src)) + ".o"
	}
	return objs
}

// ListSources returns the C sources in dir, sorted by name
func ListSources(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.c"))
	if err != nil {
		return nil, err
	}
	sources := make([]string, len(matches))
	for i, m := range matches {
		sources[i] = filepath.Base(m)
	}
	return sources, nil
}

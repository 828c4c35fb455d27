// pkg/core/requirements.go
package core

import (
	"strings"
)

// LibraryRequirement is a native library that must export Symbol
type LibraryRequirement struct {
	Name    string // Link name (e.g., "xml2" for -lxml2)
	Symbol  string // Entry point the library must export
	Package string // Human name used in diagnostics (e.g., "libxml")
}

// LinkDirective returns the linker argument for the library
func (r LibraryRequirement) LinkDirective() string {
	return "-l" + r.Name
}

// HeaderRequirement is a header file that must be present in one of the
// candidate include directories
type HeaderRequirement struct {
	Name    string // Relative header path (e.g., "libxslt/xslt.h")
	Package string // Library the header belongs to
	Subdir  string // Directory under a search root's include/ that may hold the header
}

// Define returns the HAVE_ preprocessor define recorded when the header is found.
func (r HeaderRequirement) Define() string {
	name := strings.ToUpper(r.Name)
	name = strings.NewReplacer("/", "_", ".", "_", "-", "_", "+", "_").Replace(name)
	return "-DHAVE_" + name
}

// ExecutableRequirement is a tool that must be on the executable search path
type ExecutableRequirement struct {
	Name string // Binary name
	Hint string // How to obtain it
}

// Requirements is the full, ordered list of hard requirements for a run.
// Order within each slice is the probe order.
type Requirements struct {
	Libraries   []LibraryRequirement
	Headers     []HeaderRequirement
	Executables []ExecutableRequirement
}

// DefaultRequirements returns the dependencies of the XML/XSLT extension
func DefaultRequirements() Requirements {
	return Requirements{
		Libraries: []LibraryRequirement{
			{Name: "xml2", Symbol: "xmlParseDoc", Package: "libxml"},
			{Name: "xslt", Symbol: "xsltParseStylesheetDoc", Package: "libxslt"},
		},
		Headers: []HeaderRequirement{
			{Name: "libxml/xmlversion.h", Package: "libxml", Subdir: "libxml2"},
			{Name: "libxslt/xslt.h", Package: "libxslt"},
		},
		Executables: []ExecutableRequirement{
			{
				Name: "racc",
				Hint: "get the tarball from http://i.loveruby.net/archive/racc/racc-1.4.5-all.tar.gz",
			},
			{
				Name: "frex",
				Hint: "sudo gem install aaronp-frex -s http://gems.github.com",
			},
		},
	}
}

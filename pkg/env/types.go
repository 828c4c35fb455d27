// pkg/env/types.go
package env

// PackageLayout defines where libraries and headers live under a search root
type PackageLayout struct {
	Libraries []string // Relative paths to library directories
	Includes  []string // Relative paths to include directories
}

// SearchPaths holds the platform-conditional fallback directories for one
// variant. Entries may use $ROOT and $HOME.
type SearchPaths struct {
	// Libraries maps a library link name to explicit directories. A library
	// without an entry is searched on the toolchain default path.
	Libraries map[string][]string

	// Headers maps a header name to its candidate include directories
	Headers map[string][]string
}

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "xml2")
	Path     string // Path to the library file that exports the symbol
	Dir      string // Directory the library was found in
	Type     string // Extension: ".so", ".a", ".dylib", ".dll", ".lib"
	IsStatic bool   // True for archives
	Link     string // Linker directive (e.g., "-lxml2")
}

// Header represents a found header file
type Header struct {
	Name   string // Relative header path (e.g., "libxslt/xslt.h")
	Dir    string // Include directory that satisfied the probe
	Path   string // Full path to the header
	Define string // HAVE_ define for the descriptor
}

// Executable represents a tool found on the search path
type Executable struct {
	Name string
	Path string
}

// Snapshot is the slice of the process environment a run consults,
// captured once so probes never read process-wide state directly
type Snapshot struct {
	Home        string   // HOME
	Path        []string // PATH entries, in order
	PathExt     []string // PATHEXT entries (windows hosts)
	LibraryPath []string // LIBRARY_PATH entries, in order
	ArchFlags   string   // ARCHFLAGS override, if set
}

// CompilerFlags holds the include and library directives derived from probe results
type CompilerFlags struct {
	IncludeFlags []string // -I flags
	LibraryFlags []string // -L flags
	LinkFlags    []string // -l flags
}

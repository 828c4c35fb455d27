// pkg/env/constants.go
package env

import (
	"path/filepath"
	"runtime"

	"github.com/arc-language/extconf/pkg/platform"
)

// searchTable is the single place platform-conditional search paths live.
// Adding a variant means adding an entry here.
var searchTable = map[platform.Variant]SearchPaths{
	platform.WindowsLike: {
		Libraries: map[string][]string{
			"xml2": {"$ROOT/cross/libxml2-2.7.1.win32/bin"},
			"xslt": {"$ROOT/cross/libxslt-1.1.24.win32/bin"},
		},
		Headers: map[string][]string{
			"libxml/xmlversion.h": {"/usr/include/libxml2"},
			"libxslt/xslt.h":      {"$HOME/cross/include"},
		},
	},
	platform.UnixLike: {
		Headers: map[string][]string{
			"libxml/xmlversion.h": {"/usr/include/libxml2"},
			"libxslt/xslt.h":      {"/usr/include"},
		},
	},
}

// DefaultSearchPaths returns the built-in search paths for a variant.
// Unknown variants get the unix-like table.
func DefaultSearchPaths(v platform.Variant) SearchPaths {
	if sp, ok := searchTable[v]; ok {
		return sp
	}
	return searchTable[platform.Default]
}

// getDefaultLayout is used for search roots that are plain prefixes (FHS-like)
func getDefaultLayout() PackageLayout {
	return PackageLayout{
		Libraries: []string{
			"lib",
			"lib64",
			"bin", // mingw builds keep DLLs in bin/
			filepath.Join("usr", "lib"),
		},
		Includes: []string{
			"include",
			filepath.Join("usr", "include"),
		},
	}
}

// Nix store paths are flat: lib/, include/
func getNixLayout() PackageLayout {
	return PackageLayout{
		Libraries: []string{
			"lib",
			"lib64",
		},
		Includes: []string{
			"include",
		},
	}
}

// defaultLibraryDirs is the toolchain's default library search path on the
// host, used when a variant names no explicit directory for a library
func defaultLibraryDirs() []string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i386"
	}

	if runtime.GOOS == "darwin" {
		return []string{
			"/usr/local/lib",
			"/opt/homebrew/lib",
			"/usr/lib",
		}
	}

	return []string{
		"/usr/local/lib",
		filepath.Join("/usr", "lib", arch+"-linux-gnu"),
		"/usr/lib64",
		"/usr/lib",
		filepath.Join("/lib", arch+"-linux-gnu"),
		"/lib64",
		"/lib",
	}
}

// libraryFileTypes returns file extensions to look for, in preference order
func libraryFileTypes(v platform.Variant) []string {
	if v == platform.WindowsLike {
		return []string{".dll", ".dll.a", ".a", ".lib"}
	}
	switch runtime.GOOS {
	case "darwin":
		return []string{".dylib", ".a"}
	default: // linux, etc.
		return []string{".so", ".a"}
	}
}

// libraryFileNames returns the base names a library may be stored under
func libraryFileNames(v platform.Variant, name string) []string {
	if v == platform.WindowsLike {
		// libxml2.dll, xml2.dll, libxml2.dll.a ...
		return []string{"lib" + name, name}
	}
	return []string{"lib" + name}
}

func isStaticType(ext string) bool {
	return ext == ".a" || ext == ".lib" || ext == ".dll.a"
}

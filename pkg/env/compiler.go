// pkg/env/compiler.go
package env

// GetCompilerFlags derives -I, -L and -l directives from resolved probes.
// Directories keep probe order and are listed once.
func GetCompilerFlags(libs []*Library, headers []*Header) CompilerFlags {
	var flags CompilerFlags
	seen := make(map[string]bool)

	for _, h := range headers {
		flag := "-I" + h.Dir
		if !seen[flag] {
			seen[flag] = true
			flags.IncludeFlags = append(flags.IncludeFlags, flag)
		}
	}

	for _, lib := range libs {
		flag := "-L" + lib.Dir
		if !seen[flag] {
			seen[flag] = true
			flags.LibraryFlags = append(flags.LibraryFlags, flag)
		}
		flags.LinkFlags = append(flags.LinkFlags, lib.Link)
	}

	return flags
}

// pkg/platform/arch.go
package platform

import (
	"strings"

	"github.com/magefile/mage/sh"
)

// ArchFlags is the value of the ARCHFLAGS build variable (e.g. "-arch i386").
// Empty means no architecture flag is passed.
type ArchFlags string

// Runner executes a command and returns its trimmed stdout
type Runner func(cmd string, args ...string) (string, error)

// DefaultRunner shells out through mage's sh helpers
var DefaultRunner Runner = sh.Output

// archByProcessor maps `uname -p` output to the -arch value the compiler expects
var archByProcessor = map[string]string{
	"powerpc": "ppc",
	"ppc":     "ppc",
	"ppc64":   "ppc64",
	"i386":    "i386",
	"i486":    "i386",
	"i586":    "i386",
	"i686":    "i386",
	"x86_64":  "x86_64",
	"amd64":   "x86_64",
	"arm":     "arm64",
	"arm64":   "arm64",
	"aarch64": "arm64",
}

// DetectProcessor asks the host for its processor type via `uname -p`.
// Returns "" if the command is unavailable or reports "unknown".
func DetectProcessor(run Runner) string {
	if run == nil {
		run = DefaultRunner
	}
	out, err := run("uname", "-p")
	if err != nil {
		return ""
	}
	proc := strings.ToLower(strings.TrimSpace(out))
	if proc == "unknown" {
		return ""
	}
	return proc
}

// ArchFlagsFor maps a processor type to ARCHFLAGS. Unrecognized processors
// produce no flag rather than a guessed one.
func ArchFlagsFor(processor string) ArchFlags {
	arch, ok := archByProcessor[processor]
	if !ok && strings.HasPrefix(processor, "powerpc") {
		// powerpc64, powerpc64le, ...
		arch, ok = "ppc", true
	}
	if !ok {
		return ""
	}
	return ArchFlags("-arch " + arch)
}

// ResolveArchFlags returns override when it is set (the ARCHFLAGS
// environment value), otherwise the flags derived from the processor.
func ResolveArchFlags(override string, run Runner) ArchFlags {
	if override = strings.TrimSpace(override); override != "" {
		return ArchFlags(override)
	}
	return ArchFlagsFor(DetectProcessor(run))
}

// Fields splits the flags into compiler arguments
func (a ArchFlags) Fields() []string {
	return strings.Fields(string(a))
}

// pkg/platform/detect.go
package platform

import (
	"fmt"
	"strings"
)

// Variant is the classified build target. It drives flag selection and
// the default search paths.
type Variant string

const (
	WindowsLike Variant = "windows-like"
	UnixLike    Variant = "unix-like"
)

// Default is used for identifiers that are not in the table
const Default = UnixLike

// knownTargets maps target OS identifiers to their variant
var knownTargets = map[string]Variant{
	"mingw32":   WindowsLike,
	"mingw64":   WindowsLike,
	"mswin32":   WindowsLike,
	"mswin64":   WindowsLike,
	"windows":   WindowsLike,
	"linux":     UnixLike,
	"darwin":    UnixLike,
	"freebsd":   UnixLike,
	"openbsd":   UnixLike,
	"netbsd":    UnixLike,
	"solaris":   UnixLike,
	"cygwin":    UnixLike,
	"aix":       UnixLike,
	"dragonfly": UnixLike,
}

// Detect classifies a target identifier. The identifier is either a bare
// OS name ("mingw32") or a target triple ("i686-w64-mingw32"), in which
// case each dash-separated component is tried from the right.
// Unknown identifiers map to Default.
func Detect(target string) Variant {
	target = strings.ToLower(strings.TrimSpace(target))
	if v, ok := knownTargets[target]; ok {
		return v
	}

	parts := strings.Split(target, "-")
	for i := len(parts) - 1; i >= 0; i-- {
		if v, ok := knownTargets[parts[i]]; ok {
			return v
		}
	}

	return Default
}

// String returns the variant name
func (v Variant) String() string {
	return string(v)
}

// Platform represents the detected build target
type Platform struct {
	Target    string    // Identifier the variant was derived from
	Variant   Variant   // windows-like, unix-like
	ArchFlags ArchFlags // Architecture flags threaded into flag selection
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	if p.ArchFlags == "" {
		return fmt.Sprintf("%s (%s)", p.Target, p.Variant)
	}
	return fmt.Sprintf("%s (%s, %s)", p.Target, p.Variant, p.ArchFlags)
}

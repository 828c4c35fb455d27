// pkg/flags/flags.go
package flags

import (
	"strings"

	"github.com/arc-language/extconf/pkg/platform"
)

// platformFlags are the preprocessor/debug flags specific to each variant
var platformFlags = map[platform.Variant][]string{
	platform.WindowsLike: {"-DXP_WIN", "-DXP_WIN32"},
	platform.UnixLike:    {"-g", "-DXP_UNIX"},
}

// commonFlags follow the platform flags for every variant
var commonFlags = []string{
	"-O3",
	"-Wall",
	"-Wextra",
	"-Wcast-qual",
	"-Wwrite-strings",
	"-Wconversion",
	"-Wmissing-noreturn",
	"-Winline",
}

// FlagSet is an ordered list of compiler flags plus the architecture flags
// they are compiled with. The zero value is empty and usable.
type FlagSet struct {
	cflags []string
	arch   platform.ArchFlags
	frozen bool
}

// Select builds the flag set for a variant: platform flags first, then the
// common tail. Variants without an entry use the unix-like flags.
func Select(v platform.Variant, arch platform.ArchFlags) FlagSet {
	var fs FlagSet
	fs.arch = arch
	fs.Append(PlatformSpecific(v)...)
	fs.Append(commonFlags...)
	return fs
}

// Append adds flags to the end of the set. It panics once the set is frozen.
func (fs *FlagSet) Append(flags ...string) {
	if fs.frozen {
		panic("flags: append to frozen FlagSet")
	}
	fs.cflags = append(fs.cflags, flags...)
}

// Freeze returns a copy that rejects further appends
func (fs FlagSet) Freeze() FlagSet {
	return FlagSet{
		cflags: append([]string(nil), fs.cflags...),
		arch:   fs.arch,
		frozen: true,
	}
}

// Frozen reports whether the set has been frozen
func (fs FlagSet) Frozen() bool {
	return fs.frozen
}

// CFlags returns a copy of the compiler flags in order
func (fs FlagSet) CFlags() []string {
	return append([]string(nil), fs.cflags...)
}

// Arch returns the architecture flags
func (fs FlagSet) Arch() platform.ArchFlags {
	return fs.arch
}

// Contains reports whether flag is in the compiler flags
func (fs FlagSet) Contains(flag string) bool {
	for _, f := range fs.cflags {
		if f == flag {
			return true
		}
	}
	return false
}

// String joins the compiler flags with spaces
func (fs FlagSet) String() string {
	return strings.Join(fs.cflags, " ")
}

// Common returns a copy of the flags shared by every variant
func Common() []string {
	return append([]string(nil), commonFlags...)
}

// PlatformSpecific returns a copy of the flags specific to v
func PlatformSpecific(v platform.Variant) []string {
	specific, ok := platformFlags[v]
	if !ok {
		specific = platformFlags[platform.Default]
	}
	return append([]string(nil), specific...)
}

// errors.go
package extconf

import "github.com/arc-language/extconf/pkg/core"

var (
	// ErrLibraryNotFound indicates no search location provides a library's probe symbol
	ErrLibraryNotFound = core.ErrLibraryNotFound

	// ErrHeaderNotFound indicates a required header is missing
	ErrHeaderNotFound = core.ErrHeaderNotFound

	// ErrExecutableNotFound indicates a required tool is not on PATH
	ErrExecutableNotFound = core.ErrExecutableNotFound

	// ErrDescriptorWriteFailed indicates the Makefile could not be written
	ErrDescriptorWriteFailed = core.ErrDescriptorWriteFailed
)

// Error wraps an error with the dependency it concerns
type Error = core.Error

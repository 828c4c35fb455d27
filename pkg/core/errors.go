// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrLibraryNotFound indicates no search location provides the library's probe symbol
	ErrLibraryNotFound = errors.New("library not found")

	// ErrHeaderNotFound indicates a required header is missing from every candidate directory
	ErrHeaderNotFound = errors.New("header not found")

	// ErrExecutableNotFound indicates a required tool is not on the executable search path
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrDescriptorWriteFailed indicates the build descriptor could not be written
	ErrDescriptorWriteFailed = errors.New("descriptor write failed")
)

// Error wraps a probe or emission failure with the dependency it concerns
type Error struct {
	Op   string // Operation that failed (e.g. "need libxslt", "write")
	Name string // Dependency or file name
	Hint string // How to obtain the dependency, if known
	Err  error  // Underlying error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Name != "" {
		msg += ": " + e.Name
	}
	msg = fmt.Sprintf("%s: %v", msg, e.Err)
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

//go:build !darwin && !linux

// pkg/env/dlopen_other.go
package env

import (
	"fmt"
	"runtime"
)

// DlopenSymbols is unavailable on this host; use the object probe instead
type DlopenSymbols struct{}

func (DlopenSymbols) HasSymbol(path, symbol string) (bool, error) {
	return false, fmt.Errorf("dlopen symbol probe not supported on %s", runtime.GOOS)
}

//go:build darwin || linux

// pkg/env/dlopen.go
package env

import (
	"github.com/ebitengine/purego"
)

// DlopenSymbols loads the library into the host process and looks the
// symbol up. Only host-native shared libraries can be checked this way.
type DlopenSymbols struct{}

func (DlopenSymbols) HasSymbol(path, symbol string) (bool, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return false, err
	}
	defer purego.Dlclose(handle)

	if _, err := purego.Dlsym(handle, symbol); err != nil {
		return false, nil
	}
	return true, nil
}

// pkg/platform/utils.go
package platform

import (
	"sort"
)

// KnownTargets returns the recognized target identifiers, sorted
func KnownTargets() []string {
	names := make([]string, 0, len(knownTargets))
	for name := range knownTargets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

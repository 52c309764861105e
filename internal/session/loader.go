//go:build darwin || freebsd || linux || netbsd

package session

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// DlopenLoader returns a Loader that opens the shared library at path with
// global symbol binding, so the engine's own dependencies resolve against it.
// An empty path returns nil: the engine is linked in.
func DlopenLoader(path string) Loader {
	if path == "" {
		return nil
	}
	return func() error {
		if _, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL); err != nil {
			return fmt.Errorf("session: load %s: %w", path, err)
		}
		return nil
	}
}

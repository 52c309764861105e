//go:build !(darwin || freebsd || linux || netbsd)

package session

import "fmt"

// DlopenLoader returns a Loader for the shared library at path. Dynamic
// loading is not available on this platform, so a non-empty path always
// fails to load. An empty path returns nil: the engine is linked in.
func DlopenLoader(path string) Loader {
	if path == "" {
		return nil
	}
	return func() error {
		return fmt.Errorf("session: load %s: dynamic loading not supported", path)
	}
}

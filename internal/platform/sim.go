package platform

import "sync"

// SimPermissions stands in for the platform permission system on hosts that
// have none. Requests are counted; the answer arrives later as a
// PermissionResult event.
type SimPermissions struct {
	mu       sync.Mutex
	granted  bool
	requests int
}

// NewSimPermissions creates a permission stub with the given initial state.
func NewSimPermissions(granted bool) *SimPermissions {
	return &SimPermissions{granted: granted}
}

// Granted reports whether the permission is held.
func (p *SimPermissions) Granted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.granted
}

// Request counts a permission request.
func (p *SimPermissions) Request() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests++
}

// SetGranted records the user's answer.
func (p *SimPermissions) SetGranted(granted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.granted = granted
}

// Requests returns how many times the permission was requested.
func (p *SimPermissions) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

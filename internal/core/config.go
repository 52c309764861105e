package core

// RuntimeConfig carries the tunables the bridge components are built with.
// The platform layer fills it from the YAML config and flags.
type RuntimeConfig struct {
	HomeDir         string  // Absolute path handed to the engine
	ViewMultiplier  float32 // Scale applied to the look stick
	ButtonThreshold float32 // Magnitude at which a hat/trigger axis counts as pressed
	SurfaceScale    float32 // Render buffer size relative to the measured view
}

// DefaultConfig returns a RuntimeConfig with the values the engine was tuned for.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		HomeDir:         "",
		ViewMultiplier:  2.0,
		ButtonThreshold: 0.5,
		SurfaceScale:    0.5,
	}
}

// SurfaceHandle is a borrowed reference to a platform drawable surface.
// The platform owns it; the engine may only hold it between the
// NotifySurface call that delivered it and the next NotifySurface call.
type SurfaceHandle struct {
	ID     uint64
	Width  int
	Height int

	// Native is the platform object (window pointer, draw context).
	Native any
}

// Engine is the one-way boundary into the native engine.
// None of the calls report errors back; failures are the engine's concern.
type Engine interface {
	// SetHomeDirectory tells the engine where its data lives.
	// Called exactly once, before the first Start.
	SetHomeDirectory(path string)

	// InitializeEngine runs engine init. Called exactly once per process.
	InitializeEngine(path string)

	// NotifySurface hands over the current surface; nil means "no surface".
	NotifySurface(h *SurfaceHandle)

	Start()
	Stop()

	DispatchKeyEvent(code KeyCode, pressed bool)
	SetAxisValue(axis AxisID, value float32)

	// RequestProfilingDump is diagnostic and fire-and-forget.
	RequestProfilingDump()
}

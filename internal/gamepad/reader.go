package gamepad

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/vovakirdan/serious-bridge/internal/platform"
)

// Options configures a Reader.
type Options struct {
	PollHz   int     // state polls per second, default 250
	Deadzone float32 // stick deadzone, default 0.05
	Logger   *log.Logger
}

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *DeviceMapping
	name     string
	id       sdl.JoystickID
}

// sdlDevice reads one open SDL joystick.
type sdlDevice struct {
	js *sdl.Joystick
}

func (d sdlDevice) Axis(index int32) int16  { return sdl.GetJoystickAxis(d.js, index) }
func (d sdlDevice) Button(index int32) bool { return sdl.GetJoystickButton(d.js, index) }
func (d sdlDevice) NumButtons() int32       { return sdl.GetNumJoystickButtons(d.js) }
func (d sdlDevice) Hat() (bits uint8, ok bool) {
	if sdl.GetNumJoystickHats(d.js) == 0 {
		return 0, false
	}
	return sdl.GetJoystickHat(d.js, 0), true
}

// Reader reads gamepad input from the SDL3 Joystick API and emits platform
// events for every change of the active controller.
type Reader struct {
	opts   Options
	logger *log.Logger

	joysticks map[sdl.JoystickID]*joystickInfo
	activeID  sdl.JoystickID // the first connected joystick
	hasActive bool
	prev      State

	events chan platform.Event
	mu     sync.RWMutex
	state  State
}

// NewReader creates a reader. Call Run to start it.
func NewReader(opts Options) *Reader {
	if opts.PollHz <= 0 {
		opts.PollHz = 250
	}
	if opts.Deadzone <= 0 {
		opts.Deadzone = 0.05
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reader{
		opts:      opts,
		logger:    logger,
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		events:    make(chan platform.Event, 64),
	}
}

// Events returns the channel on which platform events are sent. It is closed
// when Run returns.
func (r *Reader) Events() <-chan platform.Event {
	return r.events
}

// CurrentState returns a snapshot of the active controller state.
func (r *Reader) CurrentState() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Run initializes SDL and runs the event and polling loop on a locked OS
// thread until ctx is done.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.events)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return errors.New("gamepad: SDL init failed: " + sdl.GetError())
	}
	defer sdl.Quit()

	r.logger.Info("SDL3 joystick subsystem initialized")

	// Check for already-connected joysticks
	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	delay := uint64(time.Second) / uint64(r.opts.PollHz)
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		if !r.pollState(ctx) {
			r.closeAll()
			return nil
		}
		sdl.DelayNS(delay)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		r.logger.Warn("failed to open joystick", "id", instanceID, "error", sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := GetMapping(vendorID, productID)

	r.joysticks[jsID] = &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
	}

	r.logger.Info("joystick connected",
		"name", name,
		"vid", vendorID, "pid", productID,
		"mapping", mapping.Name,
		"axes", sdl.GetNumJoystickAxes(js),
		"buttons", sdl.GetNumJoystickButtons(js),
		"hats", sdl.GetNumJoystickHats(js))

	// Use the first connected joystick as active
	if !r.hasActive {
		r.activeID = jsID
		r.hasActive = true
		r.logger.Info("active joystick set", "name", name, "id", jsID)
	}
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	r.logger.Info("joystick disconnected", "name", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	if !r.hasActive || r.activeID != instanceID {
		return
	}
	r.hasActive = false

	// Promote the next available joystick
	for id, js := range r.joysticks {
		if sdl.JoystickConnected(js.joystick) {
			r.activeID = id
			r.hasActive = true
			r.logger.Info("active joystick switched", "name", js.name, "id", id)
			break
		}
	}
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
}

// pollState reads the active joystick and emits the difference to the last
// state. It returns false if ctx ended while emitting.
func (r *Reader) pollState(ctx context.Context) bool {
	var next State
	if r.hasActive {
		if info, ok := r.joysticks[r.activeID]; ok && sdl.JoystickConnected(info.joystick) {
			next = info.mapping.Read(sdlDevice{js: info.joystick}, r.opts.Deadzone)
			next.Name = info.name
		}
	}

	evs := Events(r.prev, next)
	r.prev = next

	r.mu.Lock()
	r.state = next
	r.mu.Unlock()

	for _, ev := range evs {
		// Key events are never dropped: a lost release would leave the
		// engine with a held button.
		select {
		case r.events <- ev:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

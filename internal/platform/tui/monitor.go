package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/surface"
)

// Monitor defaults
const (
	defaultTickRate      = 30
	defaultSurfaceWidth  = 1920
	defaultSurfaceHeight = 1080
	recentCalls          = 14
	barWidth             = 21
)

// MonitorKeyMap defines the key bindings of the monitor. The stick,
// trigger and button keys are handled by KeyMapper and listed for help only.
type MonitorKeyMap struct {
	NewSurface     key.Binding
	DestroySurface key.Binding
	Grant          key.Binding
	Deny           key.Binding
	Profile        key.Binding
	Pause          key.Binding
	Help           key.Binding
	Quit           key.Binding

	Move     key.Binding
	Look     key.Binding
	Dpad     key.Binding
	Triggers key.Binding
	Buttons  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MonitorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewSurface, k.Grant, k.Deny, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MonitorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewSurface, k.DestroySurface, k.Pause, k.Profile},
		{k.Grant, k.Deny, k.Help, k.Quit},
		{k.Move, k.Look, k.Dpad, k.Triggers, k.Buttons},
	}
}

// DefaultMonitorKeyMap returns default key bindings.
func DefaultMonitorKeyMap() MonitorKeyMap {
	return MonitorKeyMap{
		NewSurface: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new surface"),
		),
		DestroySurface: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "destroy surface"),
		),
		Grant: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "grant"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "deny"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profiling dump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "pause/resume"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Move: key.NewBinding(
			key.WithKeys("w", "a", "s", "d"),
			key.WithHelp("wasd", "move"),
		),
		Look: key.NewBinding(
			key.WithKeys("i", "j", "k", "l"),
			key.WithHelp("ijkl", "look"),
		),
		Dpad: key.NewBinding(
			key.WithKeys("up", "down", "left", "right"),
			key.WithHelp("arrows", "d-pad"),
		),
		Triggers: key.NewBinding(
			key.WithKeys("z", "x"),
			key.WithHelp("z/x", "triggers"),
		),
		Buttons: key.NewBinding(
			key.WithKeys(" ", "e", "r", "f", "1", "3", "enter", "backspace"),
			key.WithHelp("space/e/r/f", "buttons"),
		),
	}
}

// MonitorOptions configures the monitor.
type MonitorOptions struct {
	// Recorder is the engine call log shown in the calls panel.
	Recorder *engine.Recorder

	// SurfaceWidth and SurfaceHeight are the measured size of simulated
	// surfaces before scaling. Zero uses 1920x1080.
	SurfaceWidth  int
	SurfaceHeight int
	Scale         float32

	TickRate int // ticks per second, zero uses 30
}

// launchMsg delivers the launch event once the program is running.
type launchMsg struct{}

// MonitorModel is the Bubble Tea model that drives a Host from the keyboard
// and shows the bridge state and the engine calls it produces.
type MonitorModel struct {
	host     *platform.Host
	recorder *engine.Recorder
	mapper   *KeyMapper
	keys     MonitorKeyMap
	help     help.Model
	opts     MonitorOptions
	now      func() time.Time

	nextSurface uint64
	paused      bool
	lastEvent   string
	width       int
	height      int
	quitting    bool
}

// NewMonitorModel creates a monitor over host.
func NewMonitorModel(host *platform.Host, opts MonitorOptions) MonitorModel {
	if opts.SurfaceWidth <= 0 || opts.SurfaceHeight <= 0 {
		opts.SurfaceWidth, opts.SurfaceHeight = defaultSurfaceWidth, defaultSurfaceHeight
	}
	if opts.TickRate <= 0 {
		opts.TickRate = defaultTickRate
	}
	return MonitorModel{
		host:     host,
		recorder: opts.Recorder,
		mapper:   NewKeyMapper(),
		keys:     DefaultMonitorKeyMap(),
		help:     help.New(),
		opts:     opts,
		now:      time.Now,
	}
}

// Init starts the tick loop and delivers the launch event.
func (m MonitorModel) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return launchMsg{} },
		tickCmd(m.opts.TickRate),
	)
}

// deliver hands events to the host and remembers the last one.
func (m *MonitorModel) deliver(events ...platform.Event) {
	for _, ev := range events {
		m.host.Deliver(ev)
		m.lastEvent = platform.Name(ev)
	}
}

// newSurface simulates a surface being created and sized.
func (m *MonitorModel) newSurface() {
	m.nextSurface++
	h := &core.SurfaceHandle{ID: m.nextSurface}
	w, ht := surface.FixedSize(m.opts.SurfaceWidth, m.opts.SurfaceHeight, m.opts.Scale)
	m.deliver(
		platform.SurfaceCreated{Handle: h},
		platform.SurfaceChanged{Handle: h, Width: w, Height: ht},
	)
}

// Update handles messages for the monitor.
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case launchMsg:
		m.deliver(platform.Launched{})
		return m, nil

	case TickMsg:
		m.deliver(m.mapper.Expire(time.Time(msg))...)
		return m, tickCmd(m.opts.TickRate)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if !m.paused {
				m.deliver(platform.Paused{})
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.NewSurface):
			m.newSurface()
		case key.Matches(msg, m.keys.DestroySurface):
			m.deliver(platform.SurfaceDestroyed{})
		case key.Matches(msg, m.keys.Grant):
			m.deliver(platform.PermissionResult{Granted: true})
		case key.Matches(msg, m.keys.Deny):
			m.deliver(platform.PermissionResult{Granted: false})
		case key.Matches(msg, m.keys.Profile):
			m.deliver(platform.ProfilingRequested{})
		case key.Matches(msg, m.keys.Pause):
			if m.paused {
				m.deliver(platform.Resumed{})
			} else {
				m.deliver(platform.Paused{})
			}
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		default:
			m.deliver(m.mapper.Press(msg.String(), m.now())...)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the monitor.
func (m MonitorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("ENGINE BRIDGE MONITOR", m.width)))
	b.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Render(m.renderStatus()),
		panelStyle.Render(m.renderAxes()),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", panelStyle.Render(m.renderCalls())))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderStatus renders the session, surface and permission state.
func (m MonitorModel) renderStatus() string {
	sess := m.host.Session
	state := sess.State().String()
	switch {
	case sess.Started():
		state = okStyle.Render(state)
	case m.host.Surface.Delivered():
		state = warnStyle.Render(state)
	}

	perm := badStyle.Render("denied")
	if m.host.Permissions.Granted() {
		perm = okStyle.Render("granted")
	}

	surf := m.host.Surface.State().String()
	if h := m.host.Surface.Current(); h != nil {
		surf = fmt.Sprintf("%s #%d", surf, h.ID)
	}

	home := sess.HomeDirectory()
	if home == "" {
		home = "-"
	}

	lifecycle := "resumed"
	if m.paused {
		lifecycle = "paused"
	}

	last := m.lastEvent
	if last == "" {
		last = "-"
	}

	lines := []string{
		"Bridge",
		labeled("session", state),
		labeled("surface", surf),
		labeled("permission", fmt.Sprintf("%s (%d requests)", perm, m.host.Gate.Requests())),
		labeled("home", home),
		labeled("lifecycle", lifecycle),
		labeled("last event", last),
	}
	return strings.Join(lines, "\n")
}

// renderAxes renders the simulated raw axes.
func (m MonitorModel) renderAxes() string {
	axes := m.mapper.Axes()
	lines := make([]string, 0, input.RawAxisCount+1)
	lines = append(lines, "Axes")
	for a := input.RawX; int(a) < input.RawAxisCount; a++ {
		lines = append(lines, fmt.Sprintf("%-14s %s %+.2f", a.String(), axisBar(axes[a], barWidth), axes[a]))
	}
	return strings.Join(lines, "\n")
}

// renderCalls renders the most recent engine calls.
func (m MonitorModel) renderCalls() string {
	lines := []string{"Engine calls"}
	if m.recorder == nil {
		return strings.Join(append(lines, labelStyle.Render("not recording")), "\n")
	}
	calls := m.recorder.Calls()
	if len(calls) == 0 {
		return strings.Join(append(lines, labelStyle.Render("none yet")), "\n")
	}
	start := max(len(calls)-recentCalls, 0)
	for _, c := range calls[start:] {
		lines = append(lines, fmt.Sprintf("%4d %s", c.Seq, c.String()))
	}
	return strings.Join(lines, "\n")
}

// Quitting returns true once the user quit.
func (m MonitorModel) Quitting() bool {
	return m.quitting
}

// RunMonitor runs the monitor until the user quits.
func RunMonitor(host *platform.Host, opts MonitorOptions) error {
	p := tea.NewProgram(
		NewMonitorModel(host, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

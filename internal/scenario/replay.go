package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/core"
	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/input"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/session"
)

// Options configures a replay.
type Options struct {
	Rules           []input.AxisRule
	ButtonThreshold float32
	Logger          *log.Logger

	// Sinks see every engine call as it happens, e.g. a journal.
	Sinks []func(engine.Call)
}

// Result is the outcome of a replay.
type Result struct {
	Calls    []engine.Call
	State    session.State
	Requests int
}

// Replay runs the scenario's events through a fresh host. Directories are
// never created; the scenario home only names a path.
func Replay(sc Scenario, opts Options) Result {
	rec := engine.NewRecorder(opts.Sinks...)
	var eng core.Engine = rec
	if opts.Logger != nil {
		eng = engine.NewLogging(rec, opts.Logger.WithPrefix("engine"))
	}

	host := platform.NewHost(eng, platform.HostOptions{
		Runtime: core.RuntimeConfig{
			HomeDir:         sc.HomeDir,
			ButtonThreshold: opts.ButtonThreshold,
		},
		Rules:    opts.Rules,
		Granted:  sc.Granted,
		MkdirAll: func(string) error { return nil },
		Logger:   opts.Logger,
	})

	for _, ev := range sc.Events {
		host.Deliver(ev)
	}

	return Result{
		Calls:    rec.Calls(),
		State:    host.Session.State(),
		Requests: host.Permissions.Requests(),
	}
}

// Verify checks a replay result against the scenario expectations and
// reports every mismatch.
func (sc Scenario) Verify(res Result) error {
	var errs []error

	if len(sc.Expect.Calls) > 0 {
		got := make([]string, len(res.Calls))
		for i, c := range res.Calls {
			got[i] = c.String()
		}
		if len(got) != len(sc.Expect.Calls) {
			errs = append(errs, fmt.Errorf("expected %d calls, got %d:\n  %s",
				len(sc.Expect.Calls), len(got), strings.Join(got, "\n  ")))
		} else {
			for i := range got {
				if got[i] != sc.Expect.Calls[i] {
					errs = append(errs, fmt.Errorf("call %d: got %s, expected %s", i+1, got[i], sc.Expect.Calls[i]))
				}
			}
		}
	}

	if len(sc.Expect.Counts) > 0 {
		counts := make(map[string]int)
		for _, c := range res.Calls {
			counts[c.Kind.String()]++
		}
		for name, want := range sc.Expect.Counts {
			if counts[name] != want {
				errs = append(errs, fmt.Errorf("%s called %d times, expected %d", name, counts[name], want))
			}
		}
	}

	if sc.Expect.State != "" && res.State.String() != sc.Expect.State {
		errs = append(errs, fmt.Errorf("state %s, expected %s", res.State, sc.Expect.State))
	}

	if sc.Expect.Requests != nil && res.Requests != *sc.Expect.Requests {
		errs = append(errs, fmt.Errorf("permission requested %d times, expected %d", res.Requests, *sc.Expect.Requests))
	}

	return errors.Join(errs...)
}

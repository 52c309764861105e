package main

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/serious-bridge/internal/config"
	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/session"
	"github.com/vovakirdan/serious-bridge/internal/storage"
)

// liveBridge is a host around a recording engine whose calls are journaled.
type liveBridge struct {
	host     *platform.Host
	recorder *engine.Recorder
	store    *storage.Store
	runID    int64
}

// newLiveBridge builds a host for an interactive run. With journal set, the
// run is recorded under label in the journal database.
func newLiveBridge(cfg config.Config, logger *log.Logger, source, label string, granted, journal bool) (*liveBridge, error) {
	runtime, err := cfg.Runtime()
	if err != nil {
		return nil, err
	}
	rules, err := cfg.AxisRules()
	if err != nil {
		return nil, err
	}

	lb := &liveBridge{}
	var sinks []func(engine.Call)
	if journal {
		lb.store, err = openStore(cfg)
		if err != nil {
			return nil, err
		}
		lb.runID, err = lb.store.BeginRun(label, source)
		if err != nil {
			lb.store.Close()
			return nil, err
		}
		sinks = append(sinks, engine.JournalSink(lb.store, lb.runID, logger.WithPrefix("journal")))
	}

	lb.recorder = engine.NewRecorder(sinks...)
	lb.host = platform.NewHost(engine.NewLogging(lb.recorder, logger.WithPrefix("engine")), platform.HostOptions{
		Runtime: runtime,
		Rules:   rules,
		Granted: granted,
		Loader:  session.DlopenLoader(cfg.Engine.Library),
		Logger:  logger,
	})
	return lb, nil
}

// Close closes the journal, if any.
func (lb *liveBridge) Close() error {
	if lb.store == nil {
		return nil
	}
	return lb.store.Close()
}

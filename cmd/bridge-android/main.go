//go:build android

// bridge-android runs the bridge inside an x/mobile app: lifecycle, size,
// key and touch events from the app loop are translated and delivered to a
// host whose engine logs every call to logcat.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/paint"

	"github.com/vovakirdan/serious-bridge/internal/config"
	"github.com/vovakirdan/serious-bridge/internal/engine"
	"github.com/vovakirdan/serious-bridge/internal/platform"
	"github.com/vovakirdan/serious-bridge/internal/platform/mobile"
	"github.com/vovakirdan/serious-bridge/internal/session"
)

// defaultLibrary is the engine library packaged with the app.
const defaultLibrary = "libSeriousSam.so"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "bridge"})

	cfg, err := config.Load("")
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.Default()
	}
	logger.SetLevel(cfg.LogLevel())

	runtime, err := cfg.Runtime()
	if err != nil {
		logger.Fatal("invalid home directory", "error", err)
	}
	rules, err := cfg.AxisRules()
	if err != nil {
		logger.Fatal("invalid axis rules", "error", err)
	}

	library := cfg.Engine.Library
	if library == "" {
		library = defaultLibrary
	}

	rec := engine.NewRecorder()
	host := platform.NewHost(engine.NewLogging(rec, logger.WithPrefix("engine")), platform.HostOptions{
		Runtime: runtime,
		Rules:   rules,
		Granted: true,
		Loader:  session.DlopenLoader(library),
		Logger:  logger,
	})
	adapter := mobile.NewAdapter(cfg.Surface.Scale)

	app.Main(func(a app.App) {
		host.Deliver(platform.Launched{})
		for e := range a.Events() {
			e = a.Filter(e)
			for _, ev := range adapter.Translate(e) {
				host.Deliver(ev)
			}
			if _, ok := e.(paint.Event); ok {
				a.Publish()
			}
		}
	})
}

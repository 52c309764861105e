package engine

import (
	"io"

	"github.com/charmbracelet/log"
)

// CallAppender persists one call of a run.
// Implemented by storage.Store.
type CallAppender interface {
	AppendCall(runID int64, seq int, name, args string) error
}

// JournalSink returns a Recorder sink that writes each call to the journal.
// Write failures are logged and otherwise ignored.
func JournalSink(store CallAppender, runID int64, logger *log.Logger) func(Call) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(c Call) {
		if err := store.AppendCall(runID, c.Seq, c.Kind.String(), c.Args()); err != nil {
			logger.Warn("could not journal engine call", "run", runID, "seq", c.Seq, "error", err)
		}
	}
}

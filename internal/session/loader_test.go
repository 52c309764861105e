package session

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/serious-bridge/internal/engine"
)

func TestDlopenLoaderEmptyPath(t *testing.T) {
	if DlopenLoader("") != nil {
		t.Error("Empty path should mean a linked-in engine")
	}
}

func TestDlopenLoaderMissingLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libengine.so")
	load := DlopenLoader(path)

	err := load()
	if err == nil {
		t.Fatal("Loading a missing library should fail")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Error %q should name the library", err)
	}

	s := New(engine.NewRecorder(), Options{Loader: load})
	if err := s.EnsureLibraryLoaded(); err == nil {
		t.Error("EnsureLibraryLoaded should report the load failure")
	}
	if err := s.EnsureInitialized("/data/game"); err == nil {
		t.Error("EnsureInitialized should not initialize without the library")
	}
}

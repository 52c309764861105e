package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/serious-bridge/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedRun(t *testing.T, store *storage.Store, label string, calls ...string) int64 {
	t.Helper()
	id, err := store.BeginRun(label, "replay")
	if err != nil {
		t.Fatalf("BeginRun failed: %v", err)
	}
	for i, name := range calls {
		if err := store.AppendCall(id, i+1, name, ""); err != nil {
			t.Fatalf("AppendCall failed: %v", err)
		}
	}
	return id
}

func TestHistoryLoadsNewestRunFirst(t *testing.T) {
	store := newTestStore(t)
	seedRun(t, store, "first", "start")
	seedRun(t, store, "second", "start", "stop")

	m := NewHistoryModel(store, 120, 40)
	sel := m.Selected()
	if sel == nil || sel.Label != "second" {
		t.Fatalf("Selected = %v, expected run \"second\"", sel)
	}
	if len(m.calls) != 2 {
		t.Errorf("Loaded %d calls, expected 2", len(m.calls))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if sel := m.Selected(); sel == nil || sel.Label != "first" {
		t.Errorf("After tab selected %v, expected run \"first\"", sel)
	}
	if len(m.calls) != 1 {
		t.Errorf("Loaded %d calls, expected 1", len(m.calls))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if sel := m.Selected(); sel == nil || sel.Label != "second" {
		t.Errorf("After shift+tab selected %v, expected run \"second\"", sel)
	}
}

func TestHistoryDeleteRun(t *testing.T) {
	store := newTestStore(t)
	seedRun(t, store, "keep", "start")
	seedRun(t, store, "drop", "start")

	m := NewHistoryModel(store, 120, 40)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = next.(HistoryModel)

	if len(m.runs) != 1 || m.runs[0].Label != "keep" {
		t.Errorf("Runs after delete = %v, expected only \"keep\"", m.runs)
	}
}

func TestHistoryEmptyView(t *testing.T) {
	store := newTestStore(t)
	m := NewHistoryModel(store, 60, 20)

	if m.Selected() != nil {
		t.Error("Selected should be nil without runs")
	}
	if view := m.View(); !strings.Contains(view, "No calls recorded yet.") {
		t.Errorf("Empty view missing placeholder:\n%s", view)
	}
}

func TestHistoryNilStore(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if next.(HistoryModel).Selected() != nil {
		t.Error("Selected should be nil without a store")
	}
}

func TestHistoryQuit(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Quit should return a command")
	}
	if next.(HistoryModel).View() != "" {
		t.Error("View should be empty after quitting")
	}
}

package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blast/internal/registry"
	"github.com/vovakirdan/blast/internal/storage"
)

type fakeSource struct {
	sessions map[string][]storage.Session
	err      error
}

func (f *fakeSource) RecentSessions(variant string, limit int) ([]storage.Session, error) {
	return f.sessions[variant], f.err
}

func (f *fakeSource) Stats(variant string) (storage.VariantStats, error) {
	st := storage.VariantStats{Variant: variant}
	for _, s := range f.sessions[variant] {
		st.Sessions++
		st.Selections += s.Selections
		st.TilesCleared += s.TilesCleared
	}
	return st, f.err
}

func testStats(source StatsSource) StatsModel {
	m := NewStatsModel(source, "", 100, 30)
	m.variants = []registry.GameInfo{{ID: "a", Title: "Alpha"}, {ID: "b", Title: "Beta"}}
	m.cursor = 0
	m.load()
	return m
}

func TestStatsCyclesVariants(t *testing.T) {
	src := &fakeSource{sessions: map[string][]storage.Session{
		"b": {{Variant: "b", Rows: 6, Columns: 6, Colors: 3, Selections: 2, TilesCleared: 9}},
	}}
	m := testStats(src)
	if len(m.sessions) != 0 {
		t.Fatalf("sessions for a = %d, want 0", len(m.sessions))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(StatsModel)
	if m.cursor != 1 || len(m.sessions) != 1 {
		t.Fatalf("after tab: cursor %d sessions %d, want 1 and 1", m.cursor, len(m.sessions))
	}
	if !strings.Contains(m.View(), "9 tiles") {
		t.Errorf("view missing summary:\n%s", m.View())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(StatsModel)
	if m.cursor != 0 {
		t.Errorf("cursor after wrap = %d, want 0", m.cursor)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(StatsModel)
	if m.cursor != 1 {
		t.Errorf("cursor after shift+tab = %d, want 1", m.cursor)
	}
}

func TestStatsEmptyStates(t *testing.T) {
	tests := []struct {
		name   string
		source StatsSource
		want   string
	}{
		{"no store", nil, "unavailable"},
		{"read error", &fakeSource{err: errors.New("locked")}, "locked"},
		{"no sessions", &fakeSource{}, "No sessions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testStats(tt.source).View(); !strings.Contains(got, tt.want) {
				t.Errorf("View() missing %q:\n%s", tt.want, got)
			}
		})
	}
}

func TestStatsBackAndQuit(t *testing.T) {
	next, _ := testStats(nil).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(StatsModel).IsGoingBack() {
		t.Error("esc did not go back")
	}
	next, _ = testStats(nil).Update(runeKey('q'))
	if m := next.(StatsModel); m.IsGoingBack() || !m.quitting {
		t.Error("q did not quit")
	}
}

func TestSessionRows(t *testing.T) {
	at := time.Date(2026, 3, 4, 15, 6, 0, 0, time.UTC)
	rows := sessionRows([]storage.Session{{
		Rows: 8, Columns: 8, Colors: 4, Selections: 12, TilesCleared: 40,
		LargestGroup: 9, Recreations: 1, Duration: 95 * time.Second, CreatedAt: at,
	}})
	want := []string{"Mar 04 15:06", "8x8/4", "12", "40", "9", "1", "1:35"}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59*time.Second + 600*time.Millisecond, "1:00"},
		{61 * time.Minute, "1:01:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hookgenie-api/internal/domain/entity"
	"hookgenie-api/internal/infrastructure/persistence/memory"
	apperrors "hookgenie-api/pkg/errors"
)

func newStore() *Store {
	return NewStore(memory.NewHistoryRepository(), nil)
}

func record(t *testing.T, s *Store, session, script string) *entity.HistoryEntry {
	t.Helper()
	e, err := s.Record(context.Background(), session, &entity.HistoryEntry{Script: script, Hooks: []string{"h1", "h2", "h3"}})
	if err != nil {
		t.Fatalf("Record(%s) error = %v", script, err)
	}
	return e
}

func TestRecordCapsAtThree(t *testing.T) {
	s := newStore()
	var entries []*entity.HistoryEntry
	for i := 1; i <= 4; i++ {
		entries = append(entries, record(t, s, "s", fmt.Sprintf("script-%d", i)))
	}

	list, err := s.List(context.Background(), "s")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, want 3", len(list))
	}
	if list[0].ID != entries[3].ID {
		t.Errorf("newest entry should be first, got %s", list[0].Script)
	}
	for _, e := range list {
		if e.ID == entries[0].ID {
			t.Error("oldest entry should have been evicted")
		}
	}
	if list[2].ID != entries[1].ID {
		t.Errorf("last entry = %s, want script-2", list[2].Script)
	}
}

func TestRecordFillsIDAndTimestamp(t *testing.T) {
	s := newStore()
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	e := record(t, s, "s", "x")
	if e.ID == "" {
		t.Error("expected generated id")
	}
	if !e.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, fixed)
	}
}

func TestRemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	a := record(t, s, "s", "a")
	record(t, s, "s", "b")

	if err := s.Remove(ctx, "s", a.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	err := s.Remove(ctx, "s", a.ID)
	if !errors.Is(err, apperrors.ErrHistoryEntryNotFound) {
		t.Fatalf("second Remove() error = %v, want not found", err)
	}
	if _, err := s.Get(ctx, "s", a.ID); !errors.Is(err, apperrors.ErrHistoryEntryNotFound) {
		t.Fatalf("Get() error = %v, want not found", err)
	}

	if err := s.Clear(ctx, "s"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	list, _ := s.List(ctx, "s")
	if len(list) != 0 {
		t.Fatalf("len after clear = %d", len(list))
	}
}

func TestSubscribersReceiveEvents(t *testing.T) {
	ctx := context.Background()
	s := newStore()

	var got []EventKind
	unsubscribe := s.Subscribe(func(_ context.Context, ev Event) {
		if ev.SessionID != "s" {
			t.Errorf("event session = %q", ev.SessionID)
		}
		got = append(got, ev.Kind)
	})

	e := record(t, s, "s", "a")
	_ = s.Remove(ctx, "s", e.ID)
	_ = s.Clear(ctx, "s")

	unsubscribe()
	unsubscribe()
	record(t, s, "s", "after")

	want := []EventKind{EventRecorded, EventRemoved, EventCleared}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newStore()
	record(t, s, "a", "x")
	list, _ := s.List(context.Background(), "b")
	if len(list) != 0 {
		t.Fatalf("session b sees %d entries", len(list))
	}
}

func TestReload(t *testing.T) {
	e := &entity.HistoryEntry{ID: "1", Hooks: []string{"a", "b", "c"}}
	res := Reload(e)
	if res.PolishedScript != ReloadPolishedScript || res.PlatformContent.Formatted != ReloadFormatted {
		t.Fatalf("unexpected reload result: %+v", res)
	}
	res.Hooks[0] = "changed"
	if e.Hooks[0] != "a" {
		t.Fatal("Reload must not alias entry hooks")
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "Just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now, now.Add(-tt.ago)); got != tt.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

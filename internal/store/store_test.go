package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"jarvis/internal/gateway"
)

func openTest(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestNotes_SaveAndLoad(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()

	if err := s.SaveNote(ctx, "Grocery List", "• milk\n• eggs"); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	got, err := s.LoadNote(ctx, "grocery list")
	if err != nil {
		t.Fatalf("LoadNote: %v", err)
	}
	if got != "• milk\n• eggs" {
		t.Errorf("LoadNote = %q", got)
	}

	// Same title replaces the content.
	if err := s.SaveNote(ctx, "GROCERY LIST", "• bread"); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	got, _ = s.LoadNote(ctx, "Grocery List")
	if got != "• bread" {
		t.Errorf("after overwrite LoadNote = %q", got)
	}
	notes, err := s.Notes(ctx)
	if err != nil {
		t.Fatalf("Notes: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "GROCERY LIST" {
		t.Errorf("Notes = %+v", notes)
	}
}

func TestNotes_NotFound(t *testing.T) {
	s, _ := openTest(t)
	_, err := s.LoadNote(context.Background(), "missing")
	if !errors.Is(err, gateway.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNotes_Ordering(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	if err := s.SaveNote(ctx, "Older", "a"); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return base.Add(time.Hour) }
	if err := s.SaveNote(ctx, "Newer", "b"); err != nil {
		t.Fatal(err)
	}

	notes, err := s.Notes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 || notes[0].Title != "Newer" || notes[1].Title != "Older" {
		t.Errorf("Notes order = %+v", notes)
	}
	if !notes[1].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", notes[1].CreatedAt, base)
	}
}

func TestReminders(t *testing.T) {
	s, _ := openTest(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, r := range []struct {
		title string
		due   time.Time
	}{
		{"later", base.Add(48 * time.Hour)},
		{"past", base.Add(-time.Hour)},
		{"soon", base.Add(time.Hour)},
	} {
		if err := s.SaveReminder(ctx, r.title, r.due); err != nil {
			t.Fatalf("SaveReminder: %v", err)
		}
	}

	got, err := s.Reminders(ctx, base)
	if err != nil {
		t.Fatalf("Reminders: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 upcoming reminders, got %d", len(got))
	}
	if got[0].Title != "soon" || got[1].Title != "later" {
		t.Errorf("order = %s, %s", got[0].Title, got[1].Title)
	}
	if !got[0].DueAt.Equal(base.Add(time.Hour)) {
		t.Errorf("DueAt = %v", got[0].DueAt)
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	s, path := openTest(t)
	if err := s.SaveNote(context.Background(), "Note", "• keep me"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	got, err := again.LoadNote(context.Background(), "note")
	if err != nil || got != "• keep me" {
		t.Errorf("LoadNote = %q, %v", got, err)
	}
}

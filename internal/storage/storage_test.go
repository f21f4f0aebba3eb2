package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func TestRecordAndHistory(t *testing.T) {
	t.Parallel()

	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	rec := InvocationRecord{
		ChannelID: "c1",
		UserID:    "u1",
		Username:  "alice",
		Command:   "ping",
		Datetime:  time.Now(),
	}
	if err := s.RecordInvocation("g1", rec); err != nil {
		t.Fatalf("RecordInvocation: %v", err)
	}

	history, err := s.History("g1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Command != "ping" {
		t.Errorf("History = %+v", history)
	}

	// Other guilds stay empty.
	other, err := s.History("g2")
	if err != nil {
		t.Fatalf("History(g2): %v", err)
	}
	if len(other) != 0 {
		t.Errorf("History(g2) = %+v, want empty", other)
	}
}

func TestHistoryCap(t *testing.T) {
	t.Parallel()

	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	for i := 0; i < historyLimit+10; i++ {
		rec := InvocationRecord{Command: fmt.Sprintf("cmd%d", i)}
		if err := s.RecordInvocation("g", rec); err != nil {
			t.Fatalf("RecordInvocation %d: %v", i, err)
		}
	}

	history, err := s.History("g")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != historyLimit {
		t.Fatalf("len = %d, want %d", len(history), historyLimit)
	}
	// The oldest entries were dropped.
	if history[0].Command != "cmd10" {
		t.Errorf("oldest = %s, want cmd10", history[0].Command)
	}
}

package ledger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestJournal_Log(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	j := NewJournal(path)
	err := j.Log("test_event", map[string]interface{}{
		"key": "value",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read journal file: %v", err)
	}

	var entry JournalEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}
	if entry.Event != "test_event" {
		t.Errorf("event mismatch: got %s, want test_event", entry.Event)
	}
	if entry.Data["key"] != "value" {
		t.Errorf("data mismatch: got %v, want value", entry.Data["key"])
	}
	if entry.Timestamp.IsZero() {
		t.Error("timestamp should not be zero")
	}
}

func TestJournal_MultipleEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")

	j := NewJournal(path)
	events := []string{"event1", "event2", "event3"}
	for _, evt := range events {
		if err := j.Log(evt, nil); err != nil {
			t.Fatalf("unexpected error logging %s: %v", evt, err)
		}
	}

	// Each event is one JSON line, appended in order.
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open journal file: %v", err)
	}
	defer f.Close()

	var got []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse line: %v", err)
		}
		got = append(got, entry.Event)
	}

	if len(got) != len(events) {
		t.Fatalf("event count mismatch: got %d, want %d", len(got), len(events))
	}
	for i, evt := range events {
		if got[i] != evt {
			t.Errorf("event %d mismatch: got %s, want %s", i, got[i], evt)
		}
	}
}

func TestJournal_TypedHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	j := NewJournal(path)

	if err := j.TaskAdded(1, "Implement auth"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := j.StatusChanged(1, StatusNotStarted, StatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := j.CriterionToggled(1, 0, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := j.TasksArchived("abc123", "20250118_1445", []int{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open journal file: %v", err)
	}
	defer f.Close()

	want := []string{EventTaskAdded, EventStatusChanged, EventCriterionToggled, EventTasksArchived}
	var entries []JournalEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry JournalEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse line: %v", err)
		}
		entries = append(entries, entry)
	}

	if len(entries) != len(want) {
		t.Fatalf("entry count mismatch: got %d, want %d", len(entries), len(want))
	}
	for i, event := range want {
		if entries[i].Event != event {
			t.Errorf("entry %d event mismatch: got %s, want %s", i, entries[i].Event, event)
		}
	}

	archived := entries[3].Data
	if archived["batch_id"] != "abc123" {
		t.Errorf("batch id mismatch: got %v", archived["batch_id"])
	}
	if archived["timestamp"] != "20250118_1445" {
		t.Errorf("timestamp mismatch: got %v", archived["timestamp"])
	}
}

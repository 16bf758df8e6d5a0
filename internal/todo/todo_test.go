package todo

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/foolishimp/taskledger/internal/ledger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore(filepath.Join(t.TempDir(), "TODO_LIST.md"))
	s.Now = func() time.Time {
		return time.Date(2025, 1, 18, 14, 45, 0, 0, time.UTC)
	}

	empty := &List{LastUpdated: "2025-01-18"}
	if err := os.WriteFile(s.Path, Render(empty), 0644); err != nil {
		t.Fatalf("failed to seed todo list: %v", err)
	}
	return s
}

func TestRender_ParseRoundTrip(t *testing.T) {
	l := &List{
		LastUpdated: "2025-01-18",
		Items: []Item{
			{Added: "20250118_1445", Text: "Look into flaky login test"},
			{Added: "20250117_0900", Text: "Upgrade linter"},
		},
	}

	parsed, err := Parse(Render(l))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(parsed, l) {
		t.Errorf("list mismatch:\ngot  %+v\nwant %+v", parsed, l)
	}
}

func TestRender_Deterministic(t *testing.T) {
	l := &List{LastUpdated: "2025-01-18", Items: []Item{{Added: "20250118_1445", Text: "x"}}}

	first := Render(l)
	if !bytes.Equal(first, Render(l)) {
		t.Error("two renders of the same list differ")
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "entry without todo line", doc: "# Todo List\n\n### 20250118_1445\n\n### 20250118_1500\n**Todo**: later\n"},
		{name: "todo line outside entry", doc: "# Todo List\n\n**Todo**: orphaned\n"},
		{name: "stray prose", doc: "# Todo List\n\nsome prose\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestStore_Add(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("first note"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, err := s.Add("second note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Added != "20250118_1445" {
		t.Errorf("added timestamp mismatch: got %q, want %q", item.Added, "20250118_1445")
	}

	// Newest entry first.
	l, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Items) != 2 {
		t.Fatalf("item count mismatch: got %d, want 2", len(l.Items))
	}
	if l.Items[0].Text != "second note" {
		t.Errorf("first item mismatch: got %q, want %q", l.Items[0].Text, "second note")
	}
}

func TestStore_Add_EmptyText(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("   "); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	s.Add("oldest")
	s.Add("newest")

	item, err := s.Remove(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Text != "oldest" {
		t.Errorf("removed item mismatch: got %q, want %q", item.Text, "oldest")
	}

	l, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Items) != 1 || l.Items[0].Text != "newest" {
		t.Errorf("remaining items mismatch: %+v", l.Items)
	}
}

func newTestLedgerStore(t *testing.T) *ledger.Store {
	t.Helper()
	dir := t.TempDir()

	s := ledger.NewStore(filepath.Join(dir, "ACTIVE_TASKS.md"), filepath.Join(dir, "finished"))
	empty := &ledger.Ledger{LastUpdated: "2025-01-18"}
	if err := os.WriteFile(s.ActivePath, ledger.Render(empty), 0644); err != nil {
		t.Fatalf("failed to seed active ledger: %v", err)
	}
	return s
}

func TestStore_Promote(t *testing.T) {
	s := newTestStore(t)
	s.Add("older note")
	s.Add("Implement retry backoff")
	tasks := newTestLedgerStore(t)

	task, err := s.Promote(1, tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != 1 {
		t.Errorf("task id mismatch: got %d, want 1", task.ID)
	}
	if task.Title != "Implement retry backoff" {
		t.Errorf("task title mismatch: got %q", task.Title)
	}

	// Exactly one entry moved: the todo list keeps the other entry and
	// the ledger holds the promoted task once.
	list, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Text != "older note" {
		t.Errorf("remaining todos mismatch: %+v", list.Items)
	}

	l, err := tasks.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Tasks) != 1 {
		t.Fatalf("ledger task count mismatch: got %d, want 1", len(l.Tasks))
	}
	got := l.Tasks[0]
	if got.Status != ledger.StatusNotStarted || got.Priority != ledger.PriorityMedium {
		t.Errorf("promoted task fields mismatch: %+v", got)
	}
	if len(got.Criteria) != 1 || got.Criteria[0].Checked {
		t.Errorf("promoted task placeholder criterion mismatch: %+v", got.Criteria)
	}
}

func TestStore_Promote_OutOfRange(t *testing.T) {
	s := newTestStore(t)
	s.Add("only one")
	tasks := newTestLedgerStore(t)

	for _, n := range []int{0, 2, -1} {
		if _, err := s.Promote(n, tasks); err == nil {
			t.Errorf("Promote(%d): expected error, got nil", n)
		}
	}

	list, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 1 {
		t.Errorf("todo list changed by failed promote: %+v", list.Items)
	}
}

func TestStore_Promote_LedgerFailureKeepsTodo(t *testing.T) {
	s := newTestStore(t)
	s.Add("keep me around")

	// A ledger store whose active document is missing fails every add.
	tasks := ledger.NewStore(filepath.Join(t.TempDir(), "missing.md"), "")

	if _, err := s.Promote(1, tasks); err == nil {
		t.Fatal("expected error, got nil")
	}

	list, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].Text != "keep me around" {
		t.Errorf("todo list changed by failed promote: %+v", list.Items)
	}
}

func TestStore_Add_RejectsMultilineText(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Add("line one\nline two"); err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, err := s.Load(); err != nil {
		t.Fatalf("todo list no longer loads: %v", err)
	}
}

func TestStore_Remove_OutOfRange(t *testing.T) {
	s := newTestStore(t)
	s.Add("only one")

	for _, n := range []int{0, 2, -1} {
		if _, err := s.Remove(n); err == nil {
			t.Errorf("Remove(%d): expected error, got nil", n)
		}
	}
}

// Package todo manages the quick-capture todo list document. Todos are
// informal notes; promoting one turns it into a formal ledger task.
package todo

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/foolishimp/taskledger/internal/ledger"
)

// Item is a single quick-capture entry.
type Item struct {
	Added string // capture timestamp, e.g. "20250118_1445"
	Text  string
}

// List is the in-memory form of the todo document, newest entry first.
type List struct {
	LastUpdated string
	Items       []Item
}

// Parse reads a todo list document.
func Parse(data []byte) (*List, error) {
	l := &List{}
	var cur *Item
	for i, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, " \t")
		n := i + 1
		switch {
		case line == "" || line == "---":
		case strings.HasPrefix(line, "### "):
			if cur != nil {
				return nil, fmt.Errorf("line %d: todo entry without **Todo** line", n)
			}
			cur = &Item{Added: strings.TrimSpace(strings.TrimPrefix(line, "### "))}
		case strings.HasPrefix(line, "**Todo**:"):
			if cur == nil {
				return nil, fmt.Errorf("line %d: **Todo** line outside an entry", n)
			}
			cur.Text = strings.TrimSpace(strings.TrimPrefix(line, "**Todo**:"))
			l.Items = append(l.Items, *cur)
			cur = nil
		case strings.HasPrefix(line, "*Last Updated:"):
			s := strings.TrimPrefix(line, "*Last Updated:")
			l.LastUpdated = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "*"))
		case strings.HasPrefix(line, "#"):
		default:
			return nil, fmt.Errorf("line %d: unrecognized content %q", n, line)
		}
	}
	if cur != nil {
		return nil, fmt.Errorf("todo entry %q missing **Todo** line", cur.Added)
	}
	return l, nil
}

// Render serializes the todo list in its stable document form.
func Render(l *List) []byte {
	var b strings.Builder
	b.WriteString("# Todo List\n\n")
	fmt.Fprintf(&b, "*Last Updated: %s*\n\n", l.LastUpdated)
	b.WriteString("---\n\n")
	b.WriteString("## Todo Items\n")
	for _, item := range l.Items {
		fmt.Fprintf(&b, "\n### %s\n**Todo**: %s\n\n---\n", item.Added, item.Text)
	}
	return []byte(b.String())
}

// Store owns the todo document on disk.
type Store struct {
	Path string

	// Now stamps new entries and the Last Updated line. Overridable in tests.
	Now func() time.Time
}

// NewStore creates a store for the given todo document path.
func NewStore(path string) *Store {
	return &Store{Path: path, Now: time.Now}
}

// Load reads and parses the todo document.
func (s *Store) Load() (*List, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read todo list: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse todo list: %w", err)
	}
	return l, nil
}

// Save atomically rewrites the todo document via temp file + rename.
func (s *Store) Save(l *List) error {
	tmp := fmt.Sprintf("%s.tmp.%d", s.Path, os.Getpid())
	if err := os.WriteFile(tmp, Render(l), 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Add prepends a new timestamped entry and bumps Last Updated.
func (s *Store) Add(text string) (Item, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Item{}, fmt.Errorf("todo text is empty")
	}
	// One entry per **Todo** line; a newline in the text would save a
	// document that can never be loaded again.
	if strings.ContainsAny(text, "\r\n") {
		return Item{}, fmt.Errorf("todo text must be a single line")
	}
	l, err := s.Load()
	if err != nil {
		return Item{}, err
	}
	now := s.Now()
	item := Item{Added: now.Format("20060102_1504"), Text: text}
	l.Items = append([]Item{item}, l.Items...)
	l.LastUpdated = now.Format("2006-01-02")
	if err := s.Save(l); err != nil {
		return Item{}, err
	}
	return item, nil
}

// Promote converts the n-th entry (1-based, newest first) into a formal
// ledger task: next free id, the todo text as title, Medium priority,
// one unchecked placeholder criterion. The entry leaves the todo list
// only after the ledger add has succeeded, so a failed promotion moves
// nothing.
func (s *Store) Promote(n int, tasks *ledger.Store) (ledger.Task, error) {
	l, err := s.Load()
	if err != nil {
		return ledger.Task{}, err
	}
	if n < 1 || n > len(l.Items) {
		return ledger.Task{}, fmt.Errorf("no todo entry %d (list has %d)", n, len(l.Items))
	}
	item := l.Items[n-1]

	id, err := tasks.NextID()
	if err != nil {
		return ledger.Task{}, err
	}
	t := ledger.Task{
		ID:       id,
		Title:    item.Text,
		Priority: ledger.PriorityMedium,
		Status:   ledger.StatusNotStarted,
		Criteria: []ledger.ChecklistItem{{Text: "Define acceptance criteria"}},
	}
	if err := tasks.Add(t); err != nil {
		return ledger.Task{}, err
	}

	if _, err := s.Remove(n); err != nil {
		return t, fmt.Errorf("task %d added, but removing the todo entry failed: %w", id, err)
	}
	return t, nil
}

// Remove deletes the n-th entry (1-based, newest first) and returns it.
// Used by promotion after the ledger add has succeeded.
func (s *Store) Remove(n int) (Item, error) {
	l, err := s.Load()
	if err != nil {
		return Item{}, err
	}
	if n < 1 || n > len(l.Items) {
		return Item{}, fmt.Errorf("no todo entry %d (list has %d)", n, len(l.Items))
	}
	item := l.Items[n-1]
	l.Items = append(l.Items[:n-1], l.Items[n:]...)
	l.LastUpdated = s.Now().Format("2006-01-02")
	if err := s.Save(l); err != nil {
		return Item{}, err
	}
	return item, nil
}

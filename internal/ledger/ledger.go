package ledger

import (
	"fmt"
	"strings"
)

// Add appends a record to the end of the ledger, preserving insertion
// order. The record must carry an unused positive id, a valid status,
// and single-line field values: the document layout is one field per
// line, so a value holding a newline would save a document that can
// never be loaded again.
func (l *Ledger) Add(t Task) error {
	if t.ID <= 0 {
		return fmt.Errorf("task id must be a positive integer, got %d", t.ID)
	}
	if !ValidStatus(t.Status) {
		return fmt.Errorf("unknown status %q", t.Status)
	}
	if !ValidPriority(t.Priority) {
		return fmt.Errorf("unknown priority %q", t.Priority)
	}
	if err := validateText(&t); err != nil {
		return err
	}
	if l.find(t.ID) != nil {
		return &DuplicateIDError{ID: t.ID}
	}
	l.Tasks = append(l.Tasks, t)
	return nil
}

func validateText(t *Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title must not be empty")
	}
	fields := []struct {
		name, value string
	}{
		{"title", t.Title},
		{"estimated time", t.EstimatedTime},
		{"description", t.Description},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("task %s must be a single line", f.name)
		}
	}
	for _, items := range [][]ChecklistItem{t.Criteria, t.Behaviors} {
		for _, item := range items {
			if strings.TrimSpace(item.Text) == "" {
				return fmt.Errorf("checklist item text must not be empty")
			}
			if strings.ContainsAny(item.Text, "\r\n") {
				return fmt.Errorf("checklist item text must be a single line")
			}
		}
	}
	return nil
}

// UpdateStatus mutates the status field of the addressed record in
// place. Setting the current status again is a no-op, not an error.
func (l *Ledger) UpdateStatus(id int, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	t := l.find(id)
	if t == nil {
		return &NotFoundError{ID: id}
	}
	t.Status = status
	return nil
}

// ToggleCriterion flips the checked flag of the addressed checklist
// entry. Acceptance criteria and behaviors share one zero-based index
// space, criteria first.
func (l *Ledger) ToggleCriterion(id, index int) error {
	t := l.find(id)
	if t == nil {
		return &NotFoundError{ID: id}
	}
	total := len(t.Criteria) + len(t.Behaviors)
	if index < 0 || index >= total {
		return &IndexOutOfRangeError{ID: id, Index: index, Len: total}
	}
	if index < len(t.Criteria) {
		t.Criteria[index].Checked = !t.Criteria[index].Checked
	} else {
		i := index - len(t.Criteria)
		t.Behaviors[i].Checked = !t.Behaviors[i].Checked
	}
	return nil
}

// Completed returns the records with status Completed, in ledger order.
func (l *Ledger) Completed() []Task {
	var done []Task
	for _, t := range l.Tasks {
		if t.Status == StatusCompleted {
			done = append(done, t)
		}
	}
	return done
}

// RemoveCompleted drops every Completed record, preserving the order of
// the rest.
func (l *Ledger) RemoveCompleted() {
	kept := l.Tasks[:0]
	for _, t := range l.Tasks {
		if t.Status != StatusCompleted {
			kept = append(kept, t)
		}
	}
	l.Tasks = kept
}

// Find returns the record with the given id, or nil.
func (l *Ledger) Find(id int) *Task {
	return l.find(id)
}

func (l *Ledger) find(id int) *Task {
	for i := range l.Tasks {
		if l.Tasks[i].ID == id {
			return &l.Tasks[i]
		}
	}
	return nil
}

// CountByStatus returns how many records hold each status value.
func (l *Ledger) CountByStatus() map[string]int {
	counts := make(map[string]int, 4)
	for _, t := range l.Tasks {
		counts[t.Status]++
	}
	return counts
}

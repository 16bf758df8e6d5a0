package ledger

import "strings"

// Task status constants. No transition graph is enforced; any status
// may be set to any other.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusBlocked    = "Blocked"
	StatusCompleted  = "Completed"
)

// Task priority constants
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ChecklistItem is a single acceptance criterion or behavior scenario
// with its checked state.
type ChecklistItem struct {
	Text    string
	Checked bool
}

// Task represents a single record in the active ledger.
type Task struct {
	ID            int
	Title         string
	Priority      string
	Status        string
	EstimatedTime string
	Dependencies  []int // empty means "None"
	Description   string
	Criteria      []ChecklistItem
	Behaviors     []ChecklistItem
}

// Checklist returns the task's checklist entries as one index space:
// acceptance criteria first, then behavior scenarios.
func (t *Task) Checklist() []ChecklistItem {
	items := make([]ChecklistItem, 0, len(t.Criteria)+len(t.Behaviors))
	items = append(items, t.Criteria...)
	items = append(items, t.Behaviors...)
	return items
}

// ValidStatus reports whether s is one of the four known status values.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusBlocked, StatusCompleted:
		return true
	}
	return false
}

// ValidPriority reports whether s is one of the three known priorities.
func ValidPriority(s string) bool {
	switch s {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ParseStatus normalizes user input like "in-progress" or "not_started"
// to a canonical status value. Returns false if the input matches no
// known status.
func ParseStatus(s string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")
	for _, status := range []string{StatusNotStarted, StatusInProgress, StatusBlocked, StatusCompleted} {
		if normalized == strings.ToLower(status) {
			return status, true
		}
	}
	return "", false
}

// ParsePriority normalizes user input to a canonical priority value.
func ParsePriority(s string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, priority := range []string{PriorityHigh, PriorityMedium, PriorityLow} {
		if normalized == strings.ToLower(priority) {
			return priority, true
		}
	}
	return "", false
}

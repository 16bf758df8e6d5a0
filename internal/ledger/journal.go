package ledger

import (
	"encoding/json"
	"os"
	"time"
)

// Event type constants for the mutation journal.
const (
	EventTaskAdded        = "task_added"
	EventStatusChanged    = "status_changed"
	EventCriterionToggled = "criterion_toggled"
	EventTasksArchived    = "tasks_archived"
	EventTodoAdded        = "todo_added"
	EventTodoPromoted     = "todo_promoted"
)

// JournalEntry represents a single journal line.
type JournalEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Journal appends mutation events to a JSON Lines file.
type Journal struct {
	path string
}

// NewJournal creates a journal writing to the given file path.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// Log appends one event to the journal file.
func (j *Journal) Log(event string, data map[string]interface{}) error {
	entry := JournalEntry{
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	jsonBytes = append(jsonBytes, '\n')

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(jsonBytes)
	return err
}

// TaskAdded logs a task_added event.
func (j *Journal) TaskAdded(id int, title string) error {
	return j.Log(EventTaskAdded, map[string]interface{}{
		"task_id": id,
		"title":   title,
	})
}

// StatusChanged logs a status_changed event.
func (j *Journal) StatusChanged(id int, from, to string) error {
	return j.Log(EventStatusChanged, map[string]interface{}{
		"task_id": id,
		"from":    from,
		"to":      to,
	})
}

// CriterionToggled logs a criterion_toggled event.
func (j *Journal) CriterionToggled(id, index int, checked bool) error {
	return j.Log(EventCriterionToggled, map[string]interface{}{
		"task_id": id,
		"index":   index,
		"checked": checked,
	})
}

// TasksArchived logs a tasks_archived event with the batch id and the
// archived task ids.
func (j *Journal) TasksArchived(batchID, timestamp string, ids []int) error {
	return j.Log(EventTasksArchived, map[string]interface{}{
		"batch_id":  batchID,
		"timestamp": timestamp,
		"task_ids":  ids,
	})
}

// TodoAdded logs a todo_added event.
func (j *Journal) TodoAdded(text string) error {
	return j.Log(EventTodoAdded, map[string]interface{}{
		"text": text,
	})
}

// TodoPromoted logs a todo_promoted event.
func (j *Journal) TodoPromoted(text string, taskID int) error {
	return j.Log(EventTodoPromoted, map[string]interface{}{
		"text":    text,
		"task_id": taskID,
	})
}

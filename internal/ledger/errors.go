package ledger

import "fmt"

// DuplicateIDError indicates an add with an id that already exists in
// the active ledger or the archive.
type DuplicateIDError struct {
	ID int
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("task id %d already exists", e.ID)
}

// NotFoundError indicates an operation referencing an id that is not in
// the active ledger.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found in active ledger", e.ID)
}

// IndexOutOfRangeError indicates a checklist index outside the task's
// combined criteria and behaviors range.
type IndexOutOfRangeError struct {
	ID    int
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("checklist index %d out of range for task %d (%d entries)", e.Index, e.ID, e.Len)
}

// PersistenceError indicates the underlying document could not be read,
// parsed, or written.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger document %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

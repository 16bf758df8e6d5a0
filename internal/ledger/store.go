package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foolishimp/taskledger/internal/util"
)

// TimestampLayout is the completion timestamp format used in archive
// filenames and Completed fields, e.g. "20250118_1445".
const TimestampLayout = "20060102_1504"

// Timestamp formats t in the archive timestamp layout.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Store owns the on-disk documents of one task workspace: the active
// ledger file and the archive directory. It is the sole writer; every
// operation is a bounded read-modify-write of the active document.
type Store struct {
	ActivePath  string
	FinishedDir string

	// Journal, when set, receives an event for each successful
	// mutation. Journal write failures never fail the mutation.
	Journal *Journal

	// Now is the clock used to stamp the Last Updated header line.
	// Overridable in tests.
	Now func() time.Time
}

// NewStore creates a store for the given active file and archive directory.
func NewStore(activePath, finishedDir string) *Store {
	return &Store{
		ActivePath:  activePath,
		FinishedDir: finishedDir,
		Now:         time.Now,
	}
}

// Load reads and parses the active ledger document. A missing or
// malformed document is a PersistenceError.
func (s *Store) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.ActivePath)
	if err != nil {
		return nil, &PersistenceError{Path: s.ActivePath, Err: err}
	}
	l, err := Parse(data)
	if err != nil {
		return nil, &PersistenceError{Path: s.ActivePath, Err: err}
	}
	return l, nil
}

// Save atomically rewrites the active ledger document via temp file +
// rename, so readers observe either the old or the new content.
func (s *Store) Save(l *Ledger) error {
	if err := writeFileAtomic(s.ActivePath, Render(l)); err != nil {
		return &PersistenceError{Path: s.ActivePath, Err: err}
	}
	return nil
}

// Add appends a record to the active ledger. The id must be unused in
// both the active ledger and the archive; on failure the active
// document is left unmodified.
func (s *Store) Add(t Task) error {
	l, err := s.Load()
	if err != nil {
		return err
	}
	archived, err := s.archivedIDs()
	if err != nil {
		return err
	}
	if archived[t.ID] {
		return &DuplicateIDError{ID: t.ID}
	}
	if err := l.Add(t); err != nil {
		return err
	}
	l.LastUpdated = s.today()
	if err := s.Save(l); err != nil {
		return err
	}
	s.journal(func(j *Journal) error { return j.TaskAdded(t.ID, t.Title) })
	return nil
}

// UpdateStatus sets the status of an active record.
func (s *Store) UpdateStatus(id int, status string) error {
	l, err := s.Load()
	if err != nil {
		return err
	}
	var from string
	if t := l.Find(id); t != nil {
		from = t.Status
	}
	if err := l.UpdateStatus(id, status); err != nil {
		return err
	}
	l.LastUpdated = s.today()
	if err := s.Save(l); err != nil {
		return err
	}
	s.journal(func(j *Journal) error { return j.StatusChanged(id, from, status) })
	return nil
}

// ToggleCriterion flips one checklist entry of an active record.
func (s *Store) ToggleCriterion(id, index int) error {
	l, err := s.Load()
	if err != nil {
		return err
	}
	if err := l.ToggleCriterion(id, index); err != nil {
		return err
	}
	checked := l.Find(id).Checklist()[index].Checked
	l.LastUpdated = s.today()
	if err := s.Save(l); err != nil {
		return err
	}
	s.journal(func(j *Journal) error { return j.CriterionToggled(id, index, checked) })
	return nil
}

// ArchiveCompleted moves every Completed record out of the active
// ledger into one archive document each, tagged with timestamp. The
// testSummary, when non-empty, is recorded on each archive document.
//
// The move is all-or-nothing: every archive document is written and
// confirmed before the active ledger is rewritten, and any failure
// removes the documents written so far and leaves the active ledger
// byte-for-byte unchanged. Returns the archived ids in ledger order;
// an empty result with no error means nothing had status Completed.
func (s *Store) ArchiveCompleted(timestamp, testSummary string) ([]int, error) {
	l, err := s.Load()
	if err != nil {
		return nil, err
	}
	done := l.Completed()
	if len(done) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(s.FinishedDir, 0755); err != nil {
		return nil, &PersistenceError{Path: s.FinishedDir, Err: err}
	}

	var written []string
	rollback := func() {
		for _, path := range written {
			os.Remove(path)
		}
	}

	taken := make(map[string]bool, len(done))
	ids := make([]int, 0, len(done))
	for _, t := range done {
		path := filepath.Join(s.FinishedDir, s.archiveName(timestamp, t, taken))
		doc := &ArchiveDocument{Timestamp: timestamp, TestSummary: testSummary, Task: t}
		if err := writeFileAtomic(path, RenderArchive(doc)); err != nil {
			rollback()
			return nil, &PersistenceError{Path: path, Err: err}
		}
		written = append(written, path)
		ids = append(ids, t.ID)
	}

	l.RemoveCompleted()
	l.LastUpdated = s.today()
	if err := s.Save(l); err != nil {
		rollback()
		return nil, err
	}

	batch, _ := util.GenerateShortID()
	s.journal(func(j *Journal) error { return j.TasksArchived(batch, timestamp, ids) })
	return ids, nil
}

// NextID returns the smallest positive id not used by any record in the
// active ledger or the archive. Issued ids are never reused.
func (s *Store) NextID() (int, error) {
	l, err := s.Load()
	if err != nil {
		return 0, err
	}
	archived, err := s.archivedIDs()
	if err != nil {
		return 0, err
	}
	max := 0
	for _, t := range l.Tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	for id := range archived {
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}

// archiveName picks the deterministic archive filename for a record:
// <timestamp>_<kebab-title>.md, falling back to a -<id> suffix and then
// a counter when the name is already taken on disk or within the batch.
// An existing archive document is never chosen, so no archived record
// can be renamed over.
func (s *Store) archiveName(timestamp string, t Task, taken map[string]bool) string {
	base := util.ToKebabCase(t.Title)
	if base == "" {
		base = fmt.Sprintf("task-%d", t.ID)
	}
	name := fmt.Sprintf("%s_%s.md", timestamp, base)
	for n := 0; taken[name] || fileExists(filepath.Join(s.FinishedDir, name)); n++ {
		if n == 0 {
			name = fmt.Sprintf("%s_%s-%d.md", timestamp, base, t.ID)
		} else {
			name = fmt.Sprintf("%s_%s-%d-%d.md", timestamp, base, t.ID, n)
		}
	}
	taken[name] = true
	return name
}

// archivedIDs collects the ids of every record in the archive directory.
func (s *Store) archivedIDs() (map[int]bool, error) {
	ids := make(map[int]bool)
	entries, err := os.ReadDir(s.FinishedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return ids, nil
		}
		return nil, &PersistenceError{Path: s.FinishedDir, Err: err}
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(s.FinishedDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &PersistenceError{Path: path, Err: err}
		}
		doc, err := ParseArchive(data)
		if err != nil {
			return nil, &PersistenceError{Path: path, Err: err}
		}
		ids[doc.Task.ID] = true
	}
	return ids, nil
}

func (s *Store) journal(log func(*Journal) error) {
	if s.Journal == nil {
		return
	}
	// Journal failures are reported nowhere: the mutation already
	// succeeded and must not be failed retroactively.
	_ = log(s.Journal)
}

func (s *Store) today() string {
	return s.Now().Format("2006-01-02")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// writeFileAtomic writes data to a temp file in the target directory
// and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

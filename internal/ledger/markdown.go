package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// Document headers for the two ledger document kinds.
const (
	activeHeader  = "# Active Tasks"
	archiveHeader = "# Finished Task"
)

// Ledger is the in-memory form of the active task document: a fixed
// header plus an ordered list of task records.
type Ledger struct {
	LastUpdated string
	Tasks       []Task
}

// ArchiveDocument is a single archived task record plus the completion
// timestamp and an optional test summary.
type ArchiveDocument struct {
	Timestamp   string
	TestSummary string
	Task        Task
}

// Render serializes the active ledger to its markdown document form.
// The layout is stable: fixed field order, one field per line, so the
// output is deterministic and diff-friendly.
func Render(l *Ledger) []byte {
	var b strings.Builder
	b.WriteString(activeHeader + "\n\n")
	fmt.Fprintf(&b, "*Last Updated: %s*\n\n", l.LastUpdated)
	b.WriteString("---\n\n")
	b.WriteString("## Task Queue\n")
	for i := range l.Tasks {
		b.WriteString("\n")
		renderTask(&b, &l.Tasks[i])
		b.WriteString("\n---\n")
	}
	return []byte(b.String())
}

// RenderArchive serializes an archived record to its document form.
func RenderArchive(doc *ArchiveDocument) []byte {
	var b strings.Builder
	b.WriteString(archiveHeader + "\n\n")
	fmt.Fprintf(&b, "*Archived: %s*\n\n", doc.Timestamp)
	b.WriteString("---\n\n")
	renderTask(&b, &doc.Task)
	fmt.Fprintf(&b, "- **Completed**: %s\n", doc.Timestamp)
	if doc.TestSummary != "" {
		fmt.Fprintf(&b, "- **Tests**: %s\n", doc.TestSummary)
	}
	return []byte(b.String())
}

func renderTask(b *strings.Builder, t *Task) {
	fmt.Fprintf(b, "### Task %d: %s\n", t.ID, t.Title)
	fmt.Fprintf(b, "- **ID**: %d\n", t.ID)
	fmt.Fprintf(b, "- **Priority**: %s\n", t.Priority)
	fmt.Fprintf(b, "- **Status**: %s\n", t.Status)
	fmt.Fprintf(b, "- **Estimated Time**: %s\n", t.EstimatedTime)
	fmt.Fprintf(b, "- **Dependencies**: %s\n", formatDependencies(t.Dependencies))
	fmt.Fprintf(b, "- **Description**: %s\n", t.Description)
	if len(t.Criteria) > 0 {
		b.WriteString("- **Acceptance Criteria**:\n")
		renderChecklist(b, t.Criteria)
	}
	if len(t.Behaviors) > 0 {
		b.WriteString("- **Behaviors**:\n")
		renderChecklist(b, t.Behaviors)
	}
}

func renderChecklist(b *strings.Builder, items []ChecklistItem) {
	for _, item := range items {
		box := " "
		if item.Checked {
			box = "x"
		}
		fmt.Fprintf(b, "  - [%s] %s\n", box, item.Text)
	}
}

func formatDependencies(deps []int) string {
	if len(deps) == 0 {
		return "None"
	}
	parts := make([]string, len(deps))
	for i, d := range deps {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ", ")
}

// ParseDependencies parses a dependency list like "1, 2" or "None".
func ParseDependencies(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	var deps []int
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid dependency %q", strings.TrimSpace(part))
		}
		deps = append(deps, id)
	}
	return deps, nil
}

// Parse reads an active ledger document. Malformed task record blocks
// are reported as errors, never skipped or guessed.
func Parse(data []byte) (*Ledger, error) {
	p := &parser{archive: false}
	if err := p.run(data); err != nil {
		return nil, err
	}
	l := &Ledger{LastUpdated: p.lastUpdated, Tasks: p.tasks}
	seen := make(map[int]bool, len(l.Tasks))
	for i := range l.Tasks {
		if seen[l.Tasks[i].ID] {
			return nil, fmt.Errorf("duplicate task id %d in document", l.Tasks[i].ID)
		}
		seen[l.Tasks[i].ID] = true
	}
	return l, nil
}

// ParseArchive reads an archive document holding exactly one record.
func ParseArchive(data []byte) (*ArchiveDocument, error) {
	p := &parser{archive: true}
	if err := p.run(data); err != nil {
		return nil, err
	}
	if len(p.tasks) != 1 {
		return nil, fmt.Errorf("archive document holds %d task records, want exactly 1", len(p.tasks))
	}
	if p.completed == "" {
		return nil, fmt.Errorf("archive document missing Completed field")
	}
	return &ArchiveDocument{
		Timestamp:   p.completed,
		TestSummary: p.testSummary,
		Task:        p.tasks[0],
	}, nil
}

// parser holds line-scanning state for both document kinds.
type parser struct {
	archive     bool
	lastUpdated string
	completed   string
	testSummary string
	tasks       []Task

	cur     *Task
	curLine int
	hasID   bool
	section string // "", "criteria" or "behaviors"
}

func (p *parser) run(data []byte) error {
	lines := strings.Split(string(data), "\n")
	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		n := i + 1
		switch {
		case line == "" || line == "---":
			// separators carry no record data
		case strings.HasPrefix(line, "### Task "):
			if err := p.finishTask(); err != nil {
				return err
			}
			if err := p.startTask(line, n); err != nil {
				return err
			}
		case strings.HasPrefix(line, "  - ["):
			if err := p.checklistItem(line, n); err != nil {
				return err
			}
		case strings.HasPrefix(line, "- **"):
			if err := p.fieldLine(line, n); err != nil {
				return err
			}
		case strings.HasPrefix(line, "*Last Updated:"):
			p.lastUpdated = trimMeta(line, "*Last Updated:")
		case strings.HasPrefix(line, "*Archived:"):
			// header metadata on archive documents; the authoritative
			// timestamp is the Completed field
		case strings.HasPrefix(line, "#"):
			// document and section headings
		default:
			return fmt.Errorf("line %d: unrecognized content %q", n, line)
		}
	}
	return p.finishTask()
}

func trimMeta(line, prefix string) string {
	s := strings.TrimPrefix(line, prefix)
	s = strings.TrimSuffix(strings.TrimSpace(s), "*")
	return strings.TrimSpace(s)
}

func (p *parser) startTask(line string, n int) error {
	rest := strings.TrimPrefix(line, "### Task ")
	_, title, ok := strings.Cut(rest, ":")
	if !ok {
		return fmt.Errorf("line %d: malformed task heading %q", n, line)
	}
	p.cur = &Task{Title: strings.TrimSpace(title)}
	p.curLine = n
	p.hasID = false
	p.section = ""
	return nil
}

func (p *parser) fieldLine(line string, n int) error {
	if p.cur == nil {
		return fmt.Errorf("line %d: field outside a task record block", n)
	}
	rest := strings.TrimPrefix(line, "- **")
	name, value, ok := strings.Cut(rest, "**:")
	if !ok {
		return fmt.Errorf("line %d: malformed field line %q", n, line)
	}
	value = strings.TrimSpace(value)
	p.section = ""

	switch name {
	case "ID":
		id, err := strconv.Atoi(value)
		if err != nil || id <= 0 {
			return fmt.Errorf("line %d: invalid task id %q", n, value)
		}
		p.cur.ID = id
		p.hasID = true
	case "Priority":
		if !ValidPriority(value) {
			return fmt.Errorf("line %d: unknown priority %q", n, value)
		}
		p.cur.Priority = value
	case "Status":
		if !ValidStatus(value) {
			return fmt.Errorf("line %d: unknown status %q", n, value)
		}
		p.cur.Status = value
	case "Estimated Time":
		p.cur.EstimatedTime = value
	case "Dependencies":
		deps, err := ParseDependencies(value)
		if err != nil {
			return fmt.Errorf("line %d: %v", n, err)
		}
		p.cur.Dependencies = deps
	case "Description":
		p.cur.Description = value
	case "Acceptance Criteria":
		p.section = "criteria"
	case "Behaviors":
		p.section = "behaviors"
	case "Completed":
		if !p.archive {
			return fmt.Errorf("line %d: Completed field is only valid in archive documents", n)
		}
		p.completed = value
	case "Tests":
		if !p.archive {
			return fmt.Errorf("line %d: Tests field is only valid in archive documents", n)
		}
		p.testSummary = value
	default:
		return fmt.Errorf("line %d: unknown field %q", n, name)
	}
	return nil
}

func (p *parser) checklistItem(line string, n int) error {
	if p.cur == nil || p.section == "" {
		return fmt.Errorf("line %d: checklist item outside a checklist section", n)
	}
	item := strings.TrimPrefix(line, "  - ")
	var checked bool
	switch {
	case strings.HasPrefix(item, "[ ] "):
		checked = false
	case strings.HasPrefix(item, "[x] "):
		checked = true
	default:
		return fmt.Errorf("line %d: malformed checklist item %q", n, line)
	}
	entry := ChecklistItem{Text: item[4:], Checked: checked}
	if p.section == "criteria" {
		p.cur.Criteria = append(p.cur.Criteria, entry)
	} else {
		p.cur.Behaviors = append(p.cur.Behaviors, entry)
	}
	return nil
}

func (p *parser) finishTask() error {
	if p.cur == nil {
		return nil
	}
	t := p.cur
	p.cur = nil
	switch {
	case !p.hasID:
		return fmt.Errorf("line %d: task record %q missing ID field", p.curLine, t.Title)
	case t.Title == "":
		return fmt.Errorf("line %d: task record %d missing title", p.curLine, t.ID)
	case t.Status == "":
		return fmt.Errorf("line %d: task record %d missing Status field", p.curLine, t.ID)
	case t.Priority == "":
		return fmt.Errorf("line %d: task record %d missing Priority field", p.curLine, t.ID)
	}
	p.tasks = append(p.tasks, *t)
	return nil
}

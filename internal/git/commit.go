package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/foolishimp/taskledger/internal/ledger"
)

// DefaultTagLine is the fixed methodology line closing every commit
// message, unless overridden in the workspace config.
const DefaultTagLine = "Methodology: TDD with claude_tasks"

// Metrics holds the aggregate test counts supplied by an external test
// reporter. This tool never runs tests itself.
type Metrics struct {
	Unit        int
	Integration int
	E2E         int
	Coverage    float64
}

// Summary formats the metrics as a single test-summary line body,
// e.g. "12 unit, 4 integration, 1 e2e (87.5% coverage)".
func (m Metrics) Summary() string {
	return fmt.Sprintf("%d unit, %d integration, %d e2e (%.1f%% coverage)",
		m.Unit, m.Integration, m.E2E, m.Coverage)
}

// CommitMessage formats a commit message for a batch of just-archived
// records: title line, blank line, one body line per record, blank
// line, the test-summary line, blank line, and the methodology tag
// line. Pure and deterministic: records are ordered by id and the same
// inputs always yield the same string.
func CommitMessage(records []ledger.Task, m Metrics, tagLine string) string {
	if tagLine == "" {
		tagLine = DefaultTagLine
	}

	sorted := make([]ledger.Task, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var b strings.Builder
	switch len(sorted) {
	case 0:
		b.WriteString("Complete tasks")
	case 1:
		fmt.Fprintf(&b, "Complete task: %s", sorted[0].Title)
	default:
		fmt.Fprintf(&b, "Complete %d tasks", len(sorted))
	}
	b.WriteString("\n\n")

	for _, t := range sorted {
		if t.Description != "" {
			fmt.Fprintf(&b, "- %s (#%d): %s\n", t.Title, t.ID, t.Description)
		} else {
			fmt.Fprintf(&b, "- %s (#%d)\n", t.Title, t.ID)
		}
	}

	fmt.Fprintf(&b, "\nTests: %s\n\n%s\n", m.Summary(), tagLine)
	return b.String()
}

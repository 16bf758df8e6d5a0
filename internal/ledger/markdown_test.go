package ledger

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func sampleLedger() *Ledger {
	return &Ledger{
		LastUpdated: "2025-01-18",
		Tasks: []Task{
			{
				ID:            1,
				Title:         "Implement user authentication",
				Priority:      PriorityHigh,
				Status:        StatusInProgress,
				EstimatedTime: "4 hours",
				Description:   "Add login and session handling",
				Criteria: []ChecklistItem{
					{Text: "Login succeeds with valid credentials"},
					{Text: "Login fails with invalid credentials", Checked: true},
				},
				Behaviors: []ChecklistItem{
					{Text: "Session expires after 30 minutes"},
				},
			},
			{
				ID:           2,
				Title:        "Write API documentation",
				Priority:     PriorityLow,
				Status:       StatusNotStarted,
				Dependencies: []int{1},
			},
		},
	}
}

func TestRender_ParseRoundTrip(t *testing.T) {
	l := sampleLedger()
	data := Render(l)

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.LastUpdated != l.LastUpdated {
		t.Errorf("last updated mismatch: got %q, want %q", parsed.LastUpdated, l.LastUpdated)
	}
	if !reflect.DeepEqual(parsed.Tasks, l.Tasks) {
		t.Errorf("tasks mismatch:\ngot  %+v\nwant %+v", parsed.Tasks, l.Tasks)
	}
}

func TestRender_Deterministic(t *testing.T) {
	l := sampleLedger()

	first := Render(l)
	second := Render(l)
	if !bytes.Equal(first, second) {
		t.Error("two renders of the same ledger differ")
	}

	parsed, err := Parse(first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(Render(parsed), first) {
		t.Error("render-parse-render is not byte stable")
	}
}

func TestRender_EmptyLedger(t *testing.T) {
	l := &Ledger{LastUpdated: "2025-01-18"}
	data := Render(l)

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed.Tasks) != 0 {
		t.Errorf("task count mismatch: got %d, want 0", len(parsed.Tasks))
	}
	if !strings.Contains(string(data), "## Task Queue") {
		t.Error("empty ledger should still contain the task queue heading")
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	l := &Ledger{LastUpdated: "2025-01-18"}
	for _, id := range []int{3, 1, 2} {
		l.Tasks = append(l.Tasks, Task{
			ID:       id,
			Title:    "Task",
			Priority: PriorityMedium,
			Status:   StatusNotStarted,
		})
	}

	parsed, err := Parse(Render(l))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []int
	for _, task := range parsed.Tasks {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []int{3, 1, 2}) {
		t.Errorf("order mismatch: got %v, want [3 1 2]", ids)
	}
}

func TestParse_Malformed(t *testing.T) {
	header := "# Active Tasks\n\n*Last Updated: 2025-01-18*\n\n---\n\n## Task Queue\n\n"

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "duplicate id",
			doc: header +
				"### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Not Started\n\n---\n\n" +
				"### Task 1: Second\n- **ID**: 1\n- **Priority**: Low\n- **Status**: Not Started\n",
		},
		{
			name: "missing id field",
			doc:  header + "### Task 1: First\n- **Priority**: High\n- **Status**: Not Started\n",
		},
		{
			name: "missing status field",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n",
		},
		{
			name: "unknown status",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Paused\n",
		},
		{
			name: "unknown priority",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: Urgent\n- **Status**: Blocked\n",
		},
		{
			name: "non positive id",
			doc:  header + "### Task 0: First\n- **ID**: 0\n- **Priority**: High\n- **Status**: Not Started\n",
		},
		{
			name: "unknown field",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Not Started\n- **Owner**: alice\n",
		},
		{
			name: "unrecognized content",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Not Started\nstray prose line\n",
		},
		{
			name: "malformed checklist item",
			doc: header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Not Started\n" +
				"- **Acceptance Criteria**:\n  - [y] broken box\n",
		},
		{
			name: "checklist item outside section",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Not Started\n  - [ ] orphaned\n",
		},
		{
			name: "completed field in active document",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Completed\n- **Completed**: 20250118_1445\n",
		},
		{
			name: "invalid dependencies",
			doc:  header + "### Task 1: First\n- **ID**: 1\n- **Priority**: High\n- **Status**: Not Started\n- **Dependencies**: 1, two\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseDependencies(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "None", want: nil},
		{in: "none", want: nil},
		{in: "", want: nil},
		{in: "1", want: []int{1}},
		{in: "1, 2, 3", want: []int{1, 2, 3}},
		{in: "1, two", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDependencies(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDependencies(%q): expected error, got nil", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDependencies(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseDependencies(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderArchive_ParseRoundTrip(t *testing.T) {
	doc := &ArchiveDocument{
		Timestamp:   "20250118_1445",
		TestSummary: "12 unit, 3 integration, 1 e2e (87.5% coverage)",
		Task: Task{
			ID:       7,
			Title:    "Fix login retry loop",
			Priority: PriorityHigh,
			Status:   StatusCompleted,
			Criteria: []ChecklistItem{{Text: "Retries capped at 3", Checked: true}},
		},
	}

	parsed, err := ParseArchive(RenderArchive(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(parsed, doc) {
		t.Errorf("archive mismatch:\ngot  %+v\nwant %+v", parsed, doc)
	}
}

func TestParseArchive_Malformed(t *testing.T) {
	block := "### Task 7: Fix login retry loop\n- **ID**: 7\n- **Priority**: High\n- **Status**: Completed\n"

	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "no task record",
			doc:  "# Finished Task\n\n*Archived: 20250118_1445*\n\n---\n",
		},
		{
			name: "missing completed field",
			doc:  "# Finished Task\n\n*Archived: 20250118_1445*\n\n---\n\n" + block,
		},
		{
			name: "two task records",
			doc: "# Finished Task\n\n*Archived: 20250118_1445*\n\n---\n\n" + block +
				"- **Completed**: 20250118_1445\n\n" + block + "- **Completed**: 20250118_1445\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseArchive([]byte(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

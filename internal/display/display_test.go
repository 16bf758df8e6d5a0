package display

import (
	"strings"
	"testing"

	"github.com/foolishimp/taskledger/internal/ledger"
)

func testLedger() *ledger.Ledger {
	return &ledger.Ledger{
		LastUpdated: "2025-01-18",
		Tasks: []ledger.Task{
			{
				ID:       1,
				Title:    "Implement user authentication",
				Priority: ledger.PriorityHigh,
				Status:   ledger.StatusInProgress,
				Criteria: []ledger.ChecklistItem{
					{Text: "Login succeeds", Checked: true},
					{Text: "Login fails cleanly"},
				},
			},
			{
				ID:       2,
				Title:    "Write API documentation",
				Priority: ledger.PriorityLow,
				Status:   ledger.StatusNotStarted,
			},
		},
	}
}

func TestRenderList(t *testing.T) {
	out := RenderList(testLedger(), "")

	for _, want := range []string{
		"Active Tasks",
		"Implement user authentication",
		"Write API documentation",
		"1/2 criteria",
		"2 tasks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderList_StatusFilter(t *testing.T) {
	out := RenderList(testLedger(), ledger.StatusInProgress)

	if !strings.Contains(out, "Implement user authentication") {
		t.Errorf("output missing matching task:\n%s", out)
	}
	if strings.Contains(out, "Write API documentation") {
		t.Errorf("output contains filtered-out task:\n%s", out)
	}
}

func TestRenderList_Empty(t *testing.T) {
	out := RenderList(&ledger.Ledger{}, "")
	if !strings.Contains(out, "No active tasks.") {
		t.Errorf("output missing empty message:\n%s", out)
	}

	out = RenderList(testLedger(), ledger.StatusBlocked)
	if !strings.Contains(out, `No tasks with status "Blocked".`) {
		t.Errorf("output missing filter-empty message:\n%s", out)
	}
}

func TestRenderTask(t *testing.T) {
	l := testLedger()
	task := l.Find(1)
	task.Behaviors = []ledger.ChecklistItem{{Text: "Session expires"}}

	out := RenderTask(task)

	for _, want := range []string{
		"Task 1: Implement user authentication",
		"Priority: High",
		"0. ",
		"Login succeeds",
		// Behaviors continue the criteria index space.
		"2. ",
		"Session expires",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(testLedger())
	for _, want := range []string{"2 tasks", "1 In Progress", "1 Not Started"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q: %s", want, out)
		}
	}

	if out := RenderSummary(&ledger.Ledger{}); !strings.Contains(out, "0 tasks") {
		t.Errorf("empty summary mismatch: %s", out)
	}
}

// Package display renders ledger content for the terminal, shared by
// the list and watch commands.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/foolishimp/taskledger/internal/ledger"
)

var (
	// Palette shared with the TUI.
	primaryColor   = lipgloss.Color("#5FAFAF")
	secondaryColor = lipgloss.Color("#666666")
	successColor   = lipgloss.Color("#87AF87")
	warnColor      = lipgloss.Color("#D7AF5F")
	errorColor     = lipgloss.Color("#AF5F5F")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	subtleStyle = lipgloss.NewStyle().Foreground(secondaryColor)

	statusStyles = map[string]lipgloss.Style{
		ledger.StatusNotStarted: lipgloss.NewStyle().Foreground(secondaryColor),
		ledger.StatusInProgress: lipgloss.NewStyle().Foreground(warnColor),
		ledger.StatusBlocked:    lipgloss.NewStyle().Foreground(errorColor),
		ledger.StatusCompleted:  lipgloss.NewStyle().Foreground(successColor),
	}

	priorityMarks = map[string]string{
		ledger.PriorityHigh:   "!",
		ledger.PriorityMedium: "-",
		ledger.PriorityLow:    " ",
	}
)

// RenderList renders the active ledger as one line per task, optionally
// filtered by status, followed by a summary line.
func RenderList(l *ledger.Ledger, statusFilter string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Active Tasks"))
	if l.LastUpdated != "" {
		b.WriteString(subtleStyle.Render(fmt.Sprintf("  (updated %s)", l.LastUpdated)))
	}
	b.WriteString("\n\n")

	shown := 0
	for i := range l.Tasks {
		t := &l.Tasks[i]
		if statusFilter != "" && t.Status != statusFilter {
			continue
		}
		b.WriteString(renderRow(t))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		if statusFilter != "" {
			b.WriteString(subtleStyle.Render(fmt.Sprintf("No tasks with status %q.", statusFilter)))
		} else {
			b.WriteString(subtleStyle.Render("No active tasks."))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderSummary(l))
	return b.String()
}

func renderRow(t *ledger.Task) string {
	status := statusStyles[t.Status].Render(fmt.Sprintf("[%s]", t.Status))
	checked, total := checklistProgress(t)
	progress := ""
	if total > 0 {
		progress = subtleStyle.Render(fmt.Sprintf("  %d/%d criteria", checked, total))
	}
	return fmt.Sprintf("%3d %s %-14s %s%s", t.ID, priorityMarks[t.Priority], status, t.Title, progress)
}

// RenderTask renders the full detail of one record.
func RenderTask(t *ledger.Task) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Task %d: %s", t.ID, t.Title)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Priority: %s   Status: %s   Estimate: %s\n",
		t.Priority, statusStyles[t.Status].Render(t.Status), t.EstimatedTime)
	if len(t.Dependencies) > 0 {
		fmt.Fprintf(&b, "Depends on: %v\n", t.Dependencies)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n", t.Description)
	}
	for i, item := range t.Checklist() {
		box := "[ ]"
		if item.Checked {
			box = statusStyles[ledger.StatusCompleted].Render("[x]")
		}
		fmt.Fprintf(&b, "  %d. %s %s\n", i, box, item.Text)
	}
	return b.String()
}

// RenderSummary renders one line of per-status counts.
func RenderSummary(l *ledger.Ledger) string {
	counts := l.CountByStatus()
	parts := make([]string, 0, 4)
	for _, status := range []string{
		ledger.StatusNotStarted,
		ledger.StatusInProgress,
		ledger.StatusBlocked,
		ledger.StatusCompleted,
	} {
		if n := counts[status]; n > 0 {
			parts = append(parts, statusStyles[status].Render(fmt.Sprintf("%d %s", n, status)))
		}
	}
	if len(parts) == 0 {
		return subtleStyle.Render("0 tasks")
	}
	return fmt.Sprintf("%d tasks: %s", len(l.Tasks), strings.Join(parts, ", "))
}

func checklistProgress(t *ledger.Task) (checked, total int) {
	items := t.Checklist()
	for _, item := range items {
		if item.Checked {
			checked++
		}
	}
	return checked, len(items)
}

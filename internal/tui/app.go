package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foolishimp/taskledger/internal/config"
	"github.com/foolishimp/taskledger/internal/ledger"
)

// statusCycle is the order `enter` steps a task through.
var statusCycle = []string{
	ledger.StatusNotStarted,
	ledger.StatusInProgress,
	ledger.StatusBlocked,
	ledger.StatusCompleted,
}

// Model is the Bubble Tea model for the ledger browser.
type Model struct {
	cfg    config.Config
	tasks  []ledger.Task
	cursor int // selected task
	item   int // selected checklist item within the task
	detail viewport.Model
	width  int
	height int
	status string // transient message shown in the status bar
	err    error
}

// Run starts the TUI application.
func Run(dir string) error {
	m, err := initialModel(dir)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func initialModel(dir string) (Model, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return Model{}, err
	}
	if !cfg.Initialized() {
		return Model{}, fmt.Errorf("no active ledger found in %s. Run 'taskledger init' first", cfg.Dir)
	}

	m := Model{cfg: cfg, detail: viewport.New(0, 0)}
	m.reload()
	return m, nil
}

// reload re-reads the ledger from disk and clamps the cursors.
func (m *Model) reload() {
	l, err := m.cfg.NewStore().Load()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.tasks = l.Tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampItem()
	m.detail.SetContent(m.renderDetail())
}

func (m *Model) clampItem() {
	n := 0
	if m.cursor < len(m.tasks) {
		n = len(m.tasks[m.cursor].Checklist())
	}
	if m.item >= n {
		m.item = n - 1
	}
	if m.item < 0 {
		m.item = 0
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - len(m.tasks) - 8
		if m.detail.Height < 3 {
			m.detail.Height = 3
		}
		m.detail.SetContent(m.renderDetail())
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.item = 0
				m.status = ""
				m.detail.SetContent(m.renderDetail())
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
				m.item = 0
				m.status = ""
				m.detail.SetContent(m.renderDetail())
			}
		case "left", "h":
			if m.item > 0 {
				m.item--
				m.detail.SetContent(m.renderDetail())
			}
		case "right", "l":
			m.item++
			m.clampItem()
			m.detail.SetContent(m.renderDetail())
		case "enter":
			m.cycleStatus()
		case " ":
			m.toggleItem()
		case "r":
			m.reload()
			m.status = "reloaded"
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// cycleStatus advances the selected task to the next status and persists it.
func (m *Model) cycleStatus() {
	if m.cursor >= len(m.tasks) {
		return
	}
	t := m.tasks[m.cursor]
	next := statusCycle[0]
	for i, s := range statusCycle {
		if s == t.Status {
			next = statusCycle[(i+1)%len(statusCycle)]
			break
		}
	}
	if err := m.mutate(func(s *ledger.Store) error {
		return s.UpdateStatus(t.ID, next)
	}); err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.status = fmt.Sprintf("task %d → %s", t.ID, next)
	m.reload()
}

// toggleItem flips the selected checklist item and persists it.
func (m *Model) toggleItem() {
	if m.cursor >= len(m.tasks) {
		return
	}
	t := m.tasks[m.cursor]
	if len(t.Checklist()) == 0 {
		return
	}
	idx := m.item
	if err := m.mutate(func(s *ledger.Store) error {
		return s.ToggleCriterion(t.ID, idx)
	}); err != nil {
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.status = fmt.Sprintf("task %d: toggled item %d", t.ID, idx)
	m.reload()
}

// mutate runs fn against the store while holding the ledger lock.
func (m *Model) mutate(fn func(*ledger.Store) error) error {
	lock := m.cfg.NewLock()
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()
	return fn(m.cfg.NewStore())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n\n" + subtleStyle.Render("r reload · q quit")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Active Tasks"))
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(subtleStyle.Render("No active tasks. Add one with 'taskledger task add'."))
		b.WriteString("\n")
	}

	for i, t := range m.tasks {
		line := fmt.Sprintf("  %d. [%s] %s", t.ID, t.Status, t.Title)
		if i == m.cursor {
			line = selectedStyle.Render("▸" + line[1:])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.tasks) > 0 {
		b.WriteString("\n")
		b.WriteString(boxStyle.Render(m.detail.View()))
		b.WriteString("\n")
	}

	help := subtleStyle.Render("↑↓ task · ←→ item · space toggle · enter status · r reload · q quit")
	footer := help
	if m.status != "" {
		footer = m.status + "  " + help
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Left, footer))
	return b.String()
}

// renderDetail renders the selected task's fields and checklist.
func (m Model) renderDetail() string {
	if m.cursor >= len(m.tasks) {
		return ""
	}
	t := m.tasks[m.cursor]

	var b strings.Builder
	fmt.Fprintf(&b, "Task %d: %s\n", t.ID, t.Title)
	fmt.Fprintf(&b, "Priority: %s   Status: %s", t.Priority, t.Status)
	if t.EstimatedTime != "" {
		fmt.Fprintf(&b, "   Estimate: %s", t.EstimatedTime)
	}
	b.WriteString("\n")
	if len(t.Dependencies) > 0 {
		deps := make([]string, len(t.Dependencies))
		for i, d := range t.Dependencies {
			deps[i] = fmt.Sprintf("%d", d)
		}
		fmt.Fprintf(&b, "Dependencies: %s\n", strings.Join(deps, ", "))
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}

	items := t.Checklist()
	if len(items) > 0 {
		b.WriteString("\n")
		for i, item := range items {
			mark := " "
			if item.Checked {
				mark = "x"
			}
			line := fmt.Sprintf("  [%s] %s", mark, item.Text)
			if i == m.item {
				line = selectedStyle.Render("▸ [" + mark + "] " + item.Text)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

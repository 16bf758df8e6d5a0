package scaffold

// Embedded methodology documents written by Init when no --source is
// given. CLAUDE.md and the two ledger documents are generated
// separately so their formats stay in sync with the parsers.

const quickReferenceTemplate = `# Task Management Quick Reference

## Session Start Checklist
` + "```bash" + `
# 1. Check current state
git status
taskledger task list
` + "```" + `

## Start a New Task (TDD Process)
1. **CHECK**: Current state and active tasks
2. **PLAN**: Set the task to In Progress: taskledger task status <id> "In Progress"
3. **RED**: Write failing tests FIRST
4. **GREEN**: Write minimal code to pass tests
5. **REFACTOR**: Improve code quality

## Complete a Task
1. **CHECK OFF**: taskledger task toggle <id> <criterion>
2. **COMPLETE**: taskledger task status <id> Completed
3. **ARCHIVE**: taskledger finish --print-commit
4. **COMMIT**: With the generated message
`

const principlesTemplate = `# Development Principles Quick Card

## The 7 Core Principles

1. **Test Driven Development** - No code without tests
2. **Fail Fast & Root Cause** - No workarounds, fix causes
3. **Modular & Maintainable** - Single responsibility
4. **Reuse Before Build** - Check existing code first
5. **Open Source First** - Suggest alternatives
6. **No Legacy Baggage** - Clean slate, no tech debt
7. **Perfectionist Excellence** - Best of breed only

## TDD Workflow
RED -> GREEN -> REFACTOR

## Code Quality Standards
- >80% test coverage
- Clear naming conventions
- Documented decisions
- No commented-out code
`

const configTemplate = `# taskledger workspace configuration
# All keys are optional; missing keys fall back to defaults.
#
# active_file: active/ACTIVE_TASKS.md
# finished_dir: finished
# todo_file: todo/TODO_LIST.md
# journal_file: journal.log
#
# commit:
#   tag_line: "Methodology: TDD with claude_tasks"
`

const claudeMDTemplate = `# CLAUDE.md

This file provides guidance to coding agents working in this repository.

## Development Process

This project follows the claude_tasks task management methodology. See:
- ` + "`claude_tasks/QUICK_REFERENCE.md`" + ` - Quick commands and TDD workflow
- ` + "`claude_tasks/PRINCIPLES_QUICK_CARD.md`" + ` - Core principles
- ` + "`claude_tasks/active/ACTIVE_TASKS.md`" + ` - Current task tracking

## Working with this Codebase

Follow TDD: RED -> GREEN -> REFACTOR

Manage tasks with the taskledger CLI; do not hand-edit the active ledger.
`

const claudeMDReference = `# CLAUDE.md

## Development Process
This project uses the claude_tasks task management methodology.

### Key Documents
- ` + "`claude_tasks/QUICK_REFERENCE.md`" + ` - Quick commands and workflow
- ` + "`claude_tasks/PRINCIPLES_QUICK_CARD.md`" + ` - Core development principles
- ` + "`claude_tasks/active/ACTIVE_TASKS.md`" + ` - Current task tracking

---

`

var gitignoreEntries = []string{
	"",
	"# claude_tasks task management",
	"*.backup",
	"CLAUDE.md.backup",
	"claude_tasks/journal.log",
	"claude_tasks/ledger.lock",
}

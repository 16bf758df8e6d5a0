// Package scaffold installs the claude_tasks workspace into a project:
// directory structure, methodology documents, the empty ledger and todo
// documents, CLAUDE.md, and .gitignore entries.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foolishimp/taskledger/internal/config"
	"github.com/foolishimp/taskledger/internal/ledger"
	"github.com/foolishimp/taskledger/internal/todo"
)

// Options controls Init behavior.
type Options struct {
	Target string // project root; empty means current directory
	Dir    string // workspace directory name; empty means the default
	Force  bool   // overwrite existing files
	NoGit  bool   // skip .gitignore entries

	// Now stamps the Last Updated lines. Overridable in tests.
	Now func() time.Time
}

// Result lists what Init wrote and what it left alone, as paths
// relative to the target.
type Result struct {
	Created []string
	Skipped []string
}

// Init creates the workspace. Existing files are skipped unless Force
// is set; an existing CLAUDE.md is updated in place with a backup.
func Init(opts Options) (*Result, error) {
	if opts.Target == "" {
		opts.Target = "."
	}
	if opts.Dir == "" {
		opts.Dir = config.DefaultDir
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	res := &Result{}
	dir := filepath.Join(opts.Target, opts.Dir)

	for _, sub := range []string{"", "active", "finished", "todo"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", filepath.Join(dir, sub), err)
		}
	}

	date := opts.Now().Format("2006-01-02")
	files := []struct {
		rel     string
		content []byte
	}{
		{filepath.Join(opts.Dir, "QUICK_REFERENCE.md"), []byte(quickReferenceTemplate)},
		{filepath.Join(opts.Dir, "PRINCIPLES_QUICK_CARD.md"), []byte(principlesTemplate)},
		{filepath.Join(opts.Dir, config.ConfigFileName), []byte(configTemplate)},
		{filepath.Join(opts.Dir, "active", "ACTIVE_TASKS.md"), ledger.Render(&ledger.Ledger{LastUpdated: date})},
		{filepath.Join(opts.Dir, "todo", "TODO_LIST.md"), todo.Render(&todo.List{LastUpdated: date})},
	}
	for _, f := range files {
		path := filepath.Join(opts.Target, f.rel)
		if fileExists(path) && !opts.Force {
			res.Skipped = append(res.Skipped, f.rel)
			continue
		}
		if err := os.WriteFile(path, f.content, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.rel, err)
		}
		res.Created = append(res.Created, f.rel)
	}

	if err := handleClaudeMD(opts, res); err != nil {
		return nil, err
	}

	if !opts.NoGit {
		if err := updateGitignore(opts, res); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// handleClaudeMD creates CLAUDE.md, or prepends the task-system
// reference to an existing one, backing the original up first.
func handleClaudeMD(opts Options, res *Result) error {
	path := filepath.Join(opts.Target, "CLAUDE.md")
	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := os.WriteFile(path, []byte(claudeMDTemplate), 0644); writeErr != nil {
			return fmt.Errorf("failed to write CLAUDE.md: %w", writeErr)
		}
		res.Created = append(res.Created, "CLAUDE.md")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read CLAUDE.md: %w", err)
	}

	content := string(existing)
	if strings.Contains(content, "claude_tasks") {
		res.Skipped = append(res.Skipped, "CLAUDE.md")
		return nil
	}

	if !opts.Force {
		if err := os.WriteFile(path+".backup", existing, 0644); err != nil {
			return fmt.Errorf("failed to back up CLAUDE.md: %w", err)
		}
		res.Created = append(res.Created, "CLAUDE.md.backup")
	}

	// Drop the old header so the file keeps a single title line.
	if strings.HasPrefix(content, "# CLAUDE.md") {
		if i := strings.Index(content, "\n"); i >= 0 {
			content = content[i+1:]
		}
	}
	if err := os.WriteFile(path, []byte(claudeMDReference+content), 0644); err != nil {
		return fmt.Errorf("failed to update CLAUDE.md: %w", err)
	}
	res.Created = append(res.Created, "CLAUDE.md")
	return nil
}

// updateGitignore appends the workspace entries unless already present.
func updateGitignore(opts Options, res *Result) error {
	path := filepath.Join(opts.Target, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}

	content := string(existing)
	if strings.Contains(content, "claude_tasks") {
		res.Skipped = append(res.Skipped, ".gitignore")
		return nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += strings.Join(gitignoreEntries, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write .gitignore: %w", err)
	}
	res.Created = append(res.Created, ".gitignore")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

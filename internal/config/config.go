// Package config loads the optional workspace configuration from
// <dir>/config.yml. A missing file yields the defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/foolishimp/taskledger/internal/ledger"
)

// ConfigFileName is the config file inside the task workspace directory.
const ConfigFileName = "config.yml"

// DefaultDir is the task workspace directory name.
const DefaultDir = "claude_tasks"

// Config controls where the ledger documents live and how commit
// messages are tagged.
type Config struct {
	Dir         string       `yaml:"dir"`
	ActiveFile  string       `yaml:"active_file"`
	FinishedDir string       `yaml:"finished_dir"`
	TodoFile    string       `yaml:"todo_file"`
	JournalFile string       `yaml:"journal_file"`
	LockFile    string       `yaml:"lock_file"`
	Commit      CommitConfig `yaml:"commit"`
}

// CommitConfig controls commit message formatting.
type CommitConfig struct {
	TagLine string `yaml:"tag_line"`
}

// Default returns the configuration used when no config.yml exists.
func Default() Config {
	return Config{
		Dir:         DefaultDir,
		ActiveFile:  filepath.Join("active", "ACTIVE_TASKS.md"),
		FinishedDir: "finished",
		TodoFile:    filepath.Join("todo", "TODO_LIST.md"),
		JournalFile: "journal.log",
		LockFile:    "ledger.lock",
		Commit:      CommitConfig{TagLine: "Methodology: TDD with claude_tasks"},
	}
}

// Load reads the config from dir/config.yml. Empty or missing keys fall
// back to defaults; a missing file returns the defaults with Dir set to
// dir. Malformed YAML is an error.
func Load(dir string) (Config, error) {
	cfg := Default()
	if dir != "" {
		cfg.Dir = dir
	}

	path := filepath.Join(cfg.Dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	merge(&cfg, loaded)
	if dir != "" {
		// An explicit --dir always wins over the file's own dir key.
		cfg.Dir = dir
	}
	return cfg, nil
}

func merge(cfg *Config, loaded Config) {
	if loaded.Dir != "" {
		cfg.Dir = loaded.Dir
	}
	if loaded.ActiveFile != "" {
		cfg.ActiveFile = loaded.ActiveFile
	}
	if loaded.FinishedDir != "" {
		cfg.FinishedDir = loaded.FinishedDir
	}
	if loaded.TodoFile != "" {
		cfg.TodoFile = loaded.TodoFile
	}
	if loaded.JournalFile != "" {
		cfg.JournalFile = loaded.JournalFile
	}
	if loaded.LockFile != "" {
		cfg.LockFile = loaded.LockFile
	}
	if loaded.Commit.TagLine != "" {
		cfg.Commit.TagLine = loaded.Commit.TagLine
	}
}

// ActivePath returns the full path of the active ledger document.
func (c Config) ActivePath() string { return filepath.Join(c.Dir, c.ActiveFile) }

// FinishedPath returns the full path of the archive directory.
func (c Config) FinishedPath() string { return filepath.Join(c.Dir, c.FinishedDir) }

// TodoPath returns the full path of the todo list document.
func (c Config) TodoPath() string { return filepath.Join(c.Dir, c.TodoFile) }

// JournalPath returns the full path of the mutation journal.
func (c Config) JournalPath() string { return filepath.Join(c.Dir, c.JournalFile) }

// LockPath returns the full path of the workspace lock file.
func (c Config) LockPath() string { return filepath.Join(c.Dir, c.LockFile) }

// Initialized reports whether the active ledger document exists.
func (c Config) Initialized() bool {
	_, err := os.Stat(c.ActivePath())
	return err == nil
}

// NewStore builds the ledger store for this workspace, with the
// mutation journal attached.
func (c Config) NewStore() *ledger.Store {
	s := ledger.NewStore(c.ActivePath(), c.FinishedPath())
	s.Journal = ledger.NewJournal(c.JournalPath())
	return s
}

// NewLock builds the workspace lock.
func (c Config) NewLock() *ledger.Lock {
	return ledger.NewLock(c.LockPath())
}

package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/config"
	"github.com/foolishimp/taskledger/internal/ledger"
)

// TaskCmd is the parent command for task-related subcommands.
var TaskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage records in the active ledger",
	Long:  `Commands for adding tasks, updating status, toggling checklist items, and listing the active ledger.`,
}

func init() {
	TaskCmd.AddCommand(addCmd)
	TaskCmd.AddCommand(statusCmd)
	TaskCmd.AddCommand(toggleCmd)
	TaskCmd.AddCommand(listCmd)
}

// workspace resolves the config for the --dir flag inherited from the
// root command and verifies the ledger exists.
func workspace(cmd *cobra.Command) (config.Config, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return config.Config{}, err
	}
	if !cfg.Initialized() {
		return config.Config{}, fmt.Errorf("no active ledger found. Run 'taskledger init' first")
	}
	return cfg, nil
}

// withLock runs fn holding the workspace lock.
func withLock(cfg config.Config, fn func(*ledger.Store) error) error {
	lock := cfg.NewLock()
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()
	return fn(cfg.NewStore())
}

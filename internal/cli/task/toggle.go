package task

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/ledger"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <id> <index>",
	Short: "Toggle a checklist entry of an active task",
	Long:  `Flips the checked state of one checklist entry. Acceptance criteria and behaviors share one zero-based index space, criteria first (see 'task list').`,
	Args:  cobra.ExactArgs(2),
	RunE:  runToggle,
}

func runToggle(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid checklist index %q", args[1])
	}

	cfg, err := workspace(cmd)
	if err != nil {
		return err
	}
	return withLock(cfg, func(store *ledger.Store) error {
		if err := store.ToggleCriterion(id, index); err != nil {
			return err
		}
		l, err := store.Load()
		if err != nil {
			return err
		}
		item := l.Find(id).Checklist()[index]
		state := "unchecked"
		if item.Checked {
			state = "checked"
		}
		fmt.Printf("Task %d criterion %d is now %s: %s\n", id, index, state, item.Text)
		return nil
	})
}

package task

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/ledger"
)

var statusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Set the status of an active task",
	Long:  `Sets the status field of one record. Any status may follow any other; setting the current status again is a no-op.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task id %q", args[0])
	}
	status, ok := ledger.ParseStatus(args[1])
	if !ok {
		return fmt.Errorf("invalid status %q (valid: \"Not Started\", \"In Progress\", Blocked, Completed)", args[1])
	}

	cfg, err := workspace(cmd)
	if err != nil {
		return err
	}
	return withLock(cfg, func(store *ledger.Store) error {
		if err := store.UpdateStatus(id, status); err != nil {
			return err
		}
		fmt.Printf("Task %d is now %s\n", id, status)
		return nil
	})
}

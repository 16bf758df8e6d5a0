package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/display"
	"github.com/foolishimp/taskledger/internal/ledger"
)

var (
	listStatus string
	listShowID int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the active ledger",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Only show tasks with this status")
	listCmd.Flags().IntVar(&listShowID, "task", 0, "Show full detail of one task id")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := workspace(cmd)
	if err != nil {
		return err
	}

	store := cfg.NewStore()
	l, err := store.Load()
	if err != nil {
		return err
	}

	if listShowID != 0 {
		t := l.Find(listShowID)
		if t == nil {
			return &ledger.NotFoundError{ID: listShowID}
		}
		fmt.Println(display.RenderTask(t))
		return nil
	}

	filter := ""
	if listStatus != "" {
		status, ok := ledger.ParseStatus(listStatus)
		if !ok {
			return fmt.Errorf("invalid status %q", listStatus)
		}
		filter = status
	}
	fmt.Println(display.RenderList(l, filter))
	return nil
}

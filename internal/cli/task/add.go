package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/ledger"
)

var (
	addID        int
	addTitle     string
	addPriority  string
	addEstimate  string
	addDeps      string
	addDesc      string
	addCriteria  []string
	addBehaviors []string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a new task to the active ledger",
	Long:  `Appends a task with status Not Started. The id is assigned automatically unless --id is given; ids are never reused, even after archival.`,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().IntVar(&addID, "id", 0, "Task id (default: next unused)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Task title (required)")
	addCmd.Flags().StringVar(&addPriority, "priority", ledger.PriorityMedium, "Priority: High, Medium, or Low")
	addCmd.Flags().StringVar(&addEstimate, "estimate", "", "Estimated time, free text")
	addCmd.Flags().StringVar(&addDeps, "deps", "", "Dependency task ids, e.g. \"1, 2\"")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Task description")
	addCmd.Flags().StringArrayVar(&addCriteria, "criterion", nil, "Acceptance criterion (repeatable)")
	addCmd.Flags().StringArrayVar(&addBehaviors, "behavior", nil, "Behavior scenario (repeatable)")
	addCmd.MarkFlagRequired("title")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := workspace(cmd)
	if err != nil {
		return err
	}

	priority, ok := ledger.ParsePriority(addPriority)
	if !ok {
		return fmt.Errorf("invalid priority %q (valid: High, Medium, Low)", addPriority)
	}
	deps, err := ledger.ParseDependencies(addDeps)
	if err != nil {
		return err
	}

	return withLock(cfg, func(store *ledger.Store) error {
		id := addID
		if id == 0 {
			next, err := store.NextID()
			if err != nil {
				return err
			}
			id = next
		}

		t := ledger.Task{
			ID:            id,
			Title:         addTitle,
			Priority:      priority,
			Status:        ledger.StatusNotStarted,
			EstimatedTime: addEstimate,
			Dependencies:  deps,
			Description:   addDesc,
			Criteria:      checklist(addCriteria),
			Behaviors:     checklist(addBehaviors),
		}
		if err := store.Add(t); err != nil {
			return err
		}
		fmt.Printf("Added task %d: %s\n", id, addTitle)
		return nil
	})
}

func checklist(texts []string) []ledger.ChecklistItem {
	if len(texts) == 0 {
		return nil
	}
	items := make([]ledger.ChecklistItem, len(texts))
	for i, text := range texts {
		items[i] = ledger.ChecklistItem{Text: text}
	}
	return items
}

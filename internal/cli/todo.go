package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/ledger"
	"github.com/foolishimp/taskledger/internal/todo"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the quick-capture todo list",
	Long:  `Todos are quick, informal captures. Promote one to a formal task when it is ready for TDD work.`,
}

var todoAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a todo entry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		store := todo.NewStore(cfg.TodoPath())
		item, err := store.Add(strings.Join(args, " "))
		if err != nil {
			return err
		}
		// Journal failures do not fail the capture.
		_ = ledger.NewJournal(cfg.JournalPath()).TodoAdded(item.Text)
		fmt.Println("Added to todo list.")
		return nil
	},
}

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List todo entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		list, err := todo.NewStore(cfg.TodoPath()).Load()
		if err != nil {
			return err
		}
		if len(list.Items) == 0 {
			fmt.Println("No todos. Use 'taskledger todo add \"...\"' to capture one.")
			return nil
		}
		for i, item := range list.Items {
			fmt.Printf("%3d. %s  (%s)\n", i+1, item.Text, item.Added)
		}
		return nil
	},
}

var todoPromoteCmd = &cobra.Command{
	Use:   "promote <n>",
	Short: "Convert a todo entry into a formal task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid todo number %q", args[0])
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.Initialized() {
			return fmt.Errorf("no active ledger found. Run 'taskledger init' first")
		}

		lock := cfg.NewLock()
		if err := lock.Acquire(); err != nil {
			return err
		}
		defer lock.Release()

		todos := todo.NewStore(cfg.TodoPath())
		task, err := todos.Promote(n, cfg.NewStore())
		if err != nil {
			return err
		}
		_ = ledger.NewJournal(cfg.JournalPath()).TodoPromoted(task.Title, task.ID)
		fmt.Printf("Promoted todo %d to task %d: %s\n", n, task.ID, task.Title)
		return nil
	},
}

func init() {
	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoPromoteCmd)
}

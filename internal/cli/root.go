package cli

import (
	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/cli/task"
	"github.com/foolishimp/taskledger/internal/config"
	"github.com/foolishimp/taskledger/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "taskledger",
	Short:   "Task ledger manager for documentation-driven development",
	Long:    `Taskledger maintains the claude_tasks active-task ledger, archives completed tasks into dated documents, and formats the commit message for each archived batch.`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().String("dir", config.DefaultDir, "Task workspace directory")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(task.TaskCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(watchCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the workspace config honoring the --dir flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(dir)
}

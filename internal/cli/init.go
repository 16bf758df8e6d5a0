package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/scaffold"
)

var (
	initForce  bool
	initNoGit  bool
	initSource string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install the claude_tasks workspace in the current project",
	Long:  "Creates the claude_tasks/ directory structure with the methodology documents, an empty active ledger, a todo list, CLAUDE.md, and .gitignore entries.",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&initNoGit, "no-git", false, "Skip the git repository check and .gitignore entries")
	initCmd.Flags().StringVar(&initSource, "source", "", "Tarball URL to download methodology documents from")
}

func runInit(cmd *cobra.Command, args []string) error {
	if !initNoGit {
		if err := checkGitRepo(); err != nil {
			return err
		}
	}

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}

	res, err := scaffold.Init(scaffold.Options{
		Dir:   dir,
		Force: initForce,
		NoGit: initNoGit,
	})
	if err != nil {
		return err
	}

	if initSource != "" {
		fmt.Printf("Downloading methodology documents from %s\n", initSource)
		installer := scaffold.NewInstaller(dir)
		installer.SetDocsURL(initSource)
		if err := installer.Install(); err != nil {
			return err
		}
	}

	for _, path := range res.Created {
		fmt.Println("Created:", path)
	}
	for _, path := range res.Skipped {
		fmt.Println("Skipped existing:", path)
	}

	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Review %s/QUICK_REFERENCE.md for the workflow\n", dir)
	fmt.Println("  2. Add your first task: taskledger task add --title \"...\"")
	return nil
}

package cli

import (
	"fmt"
	"os/exec"
)

// PrerequisiteError represents a failed prerequisite check with helpful remediation info.
type PrerequisiteError struct {
	Check   string
	Message string
	Help    string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: %s\n\n%s", e.Check, e.Message, e.Help)
}

// checkGitRepo verifies we're in a git repository. The ledger documents
// are meant to be committed alongside the code they track.
func checkGitRepo() error {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	if err := cmd.Run(); err != nil {
		return &PrerequisiteError{
			Check:   "Git repository",
			Message: "Not a git repository",
			Help:    "Taskledger tracks tasks next to code. Run 'git init' first, or pass --no-git.",
		}
	}
	return nil
}

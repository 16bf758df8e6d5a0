package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/git"
	"github.com/foolishimp/taskledger/internal/ledger"
)

var (
	finishTimestamp   string
	finishUnit        int
	finishIntegration int
	finishE2E         int
	finishCoverage    float64
	finishPrintCommit bool
)

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Archive completed tasks into dated finished/ documents",
	Long: `Moves every task with status Completed out of the active ledger into one
dated archive document each. The move is all-or-nothing: on any write
failure the active ledger is left untouched.

Test counts come from your test reporter; taskledger never runs tests.`,
	RunE: runFinish,
}

func init() {
	finishCmd.Flags().StringVar(&finishTimestamp, "timestamp", "", "Completion timestamp (YYYYMMDD_HHMM, default now)")
	finishCmd.Flags().IntVar(&finishUnit, "unit", 0, "Unit test count for the commit message")
	finishCmd.Flags().IntVar(&finishIntegration, "integration", 0, "Integration test count for the commit message")
	finishCmd.Flags().IntVar(&finishE2E, "e2e", 0, "End-to-end test count for the commit message")
	finishCmd.Flags().Float64Var(&finishCoverage, "coverage", 0, "Coverage percentage for the commit message")
	finishCmd.Flags().BoolVar(&finishPrintCommit, "print-commit", false, "Print the formatted commit message for the archived batch")
}

func runFinish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.Initialized() {
		return fmt.Errorf("no active ledger found. Run 'taskledger init' first")
	}

	timestamp := finishTimestamp
	if timestamp == "" {
		timestamp = ledger.Timestamp(time.Now())
	} else if _, err := time.Parse(ledger.TimestampLayout, timestamp); err != nil {
		return fmt.Errorf("invalid timestamp %q, want YYYYMMDD_HHMM", timestamp)
	}

	// Warn before touching anything, so the ledger change can land in
	// its own commit.
	if clean, err := git.IsClean(""); err == nil && !clean {
		fmt.Println("Warning: git workspace has uncommitted changes.")
	}

	lock := cfg.NewLock()
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	store := cfg.NewStore()

	// The archived records are needed for the commit message, so
	// capture the completed set before the move.
	l, err := store.Load()
	if err != nil {
		return err
	}
	completed := l.Completed()

	metrics := git.Metrics{
		Unit:        finishUnit,
		Integration: finishIntegration,
		E2E:         finishE2E,
		Coverage:    finishCoverage,
	}
	summary := ""
	if metricsGiven(cmd) {
		summary = metrics.Summary()
	}

	ids, err := store.ArchiveCompleted(timestamp, summary)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No completed tasks to archive.")
		return nil
	}

	fmt.Printf("Archived %d task(s) to %s:\n", len(ids), cfg.FinishedPath())
	for _, t := range completed {
		fmt.Printf("  %d: %s\n", t.ID, t.Title)
	}

	if finishPrintCommit {
		fmt.Println()
		fmt.Println(git.CommitMessage(completed, metrics, cfg.Commit.TagLine))
	}
	return nil
}

func metricsGiven(cmd *cobra.Command) bool {
	for _, name := range []string{"unit", "integration", "e2e", "coverage"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

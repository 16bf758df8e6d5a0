package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/foolishimp/taskledger/internal/display"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of the active ledger",
	Long:  "Re-renders the task list whenever the active ledger document changes. Press Ctrl+C to stop.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.Initialized() {
		return fmt.Errorf("no active ledger found. Run 'taskledger init' first")
	}

	activePath, err := filepath.Abs(cfg.ActivePath())
	if err != nil {
		return err
	}

	render := func() {
		fmt.Print("\033[H\033[2J") // clear screen, cursor home
		store := cfg.NewStore()
		l, err := store.Load()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Println(display.RenderList(l, ""))
		fmt.Println("Watching", cfg.ActivePath(), "- Ctrl+C to stop")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Saves are temp-file + rename, which replaces the inode, so watch
	// the directory and filter for the ledger file.
	if err := watcher.Add(filepath.Dir(activePath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(activePath), err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	render()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != activePath {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				render()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Println("Watch error:", err)
		case <-sig:
			fmt.Println()
			return nil
		}
	}
}

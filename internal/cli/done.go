package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as done",
	Long: `Mark a task as completed, earning XP for it.

Examples:
  iplan done abc123
  iplan done abc123 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark task as not done")
}

func runDone(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	task, ok := app.Store.Task(args[0])
	if !ok {
		return fmt.Errorf("task not found: %s", args[0])
	}

	before := app.Store.State()

	if doneUndo {
		if _, err := app.Store.SetTaskStatus(task.ID, model.StatusPending); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		after := app.Store.State()
		fmt.Printf("○ Reopened: \"%s\" (%+d XP)\n", task.Title, after.XP-before.XP)
		return nil
	}

	if _, err := app.Store.SetTaskStatus(task.ID, model.StatusCompleted); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	after := app.Store.State()
	fmt.Printf("✓ Completed: \"%s\" (+%d XP)\n", task.Title, after.XP-before.XP)

	for _, b := range after.Badges {
		if !before.HasBadge(b.ID) {
			info := badgeCatalog[b.ID]
			fmt.Printf("🏆 Badge unlocked: %s %s\n", info.emoji, badgeUnlockedStyle.Render(info.name))
		}
	}

	levelBefore := gamify.GetLevel(before.XP)
	levelAfter := gamify.GetLevel(after.XP)
	if levelAfter.Level > levelBefore.Level {
		fmt.Printf("⭐ Level up! You are now level %d\n", levelAfter.Level)
	}
	return nil
}

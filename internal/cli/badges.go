package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/model"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show earned and locked achievements",
	RunE:  runBadges,
}

// badgeInfo is display metadata only; unlock rules live in the evaluator.
type badgeInfo struct {
	emoji string
	name  string
	desc  string
}

var badgeCatalog = map[model.BadgeID]badgeInfo{
	model.BadgeFirstTask:     {"🎯", "First Steps", "Complete your first task"},
	model.BadgeTenTasks:      {"💪", "Getting Things Done", "Complete 10 tasks"},
	model.BadgeFiftyTasks:    {"🚀", "Productivity Machine", "Complete 50 tasks"},
	model.BadgeHundredTasks:  {"👑", "Centurion", "Complete 100 tasks"},
	model.BadgeStreak3:       {"🔥", "On a Roll", "Keep a 3-day streak"},
	model.BadgeStreak7:       {"⚡", "Week Warrior", "Keep a 7-day streak"},
	model.BadgeStreak30:      {"🏆", "Unstoppable", "Keep a 30-day streak"},
	model.BadgeFirstPomodoro: {"🍅", "Focused", "Finish your first pomodoro"},
	model.BadgeTenPomodoros:  {"🧘", "Deep Worker", "Finish 10 pomodoros"},
	model.BadgeNoteTaker:     {"📝", "Note Taker", "Write 5 notes"},
	model.BadgeHabitStarter:  {"🌱", "Habit Starter", "Track 3 habits"},
	model.BadgeNightOwl:      {"🦉", "Night Owl", "Complete a task before 5 AM"},
	model.BadgeEarlyBird:     {"🐦", "Early Bird", "Complete a task between 5 and 7 AM"},
	model.BadgeAllToday:      {"✨", "Clean Sweep", "Finish everything due today"},
}

func runBadges(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st := app.Store.State()
	unlocked := make(map[model.BadgeID]time.Time, len(st.Badges))
	for _, b := range st.Badges {
		unlocked[b.ID] = b.UnlockedAt
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Badges %d/%d", len(unlocked), len(model.AllBadgeIDs))))
	fmt.Println()

	for _, id := range model.AllBadgeIDs {
		info := badgeCatalog[id]
		if at, ok := unlocked[id]; ok {
			fmt.Printf("  %s %s  %s\n",
				info.emoji,
				badgeUnlockedStyle.Render(info.name),
				statLabelStyle.Render("unlocked "+at.Format("Jan 2, 2006")))
		} else {
			fmt.Printf("  🔒 %s  %s\n",
				badgeLockedStyle.Render(info.name),
				statLabelStyle.Render(info.desc))
		}
	}
	return nil
}

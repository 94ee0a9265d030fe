package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
)

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage daily habits",
	Long:  `Track daily habits. Logging a habit for a day earns XP; each habit keeps its own streak.`,
}

var habitAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with today's status and streaks",
	RunE:    runHabitList,
}

var habitLogCmd = &cobra.Command{
	Use:   "log [habit]",
	Short: "Toggle a habit's log for a day (default today)",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitLog,
}

var habitDeleteCmd = &cobra.Command{
	Use:     "delete [habit]",
	Aliases: []string{"rm"},
	Short:   "Delete a habit and its logs",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitDelete,
}

var (
	habitEmoji   string
	habitColor   string
	habitLogDate string
)

func init() {
	habitAddCmd.Flags().StringVarP(&habitEmoji, "emoji", "e", "✅", "Emoji shown next to the habit")
	habitAddCmd.Flags().StringVarP(&habitColor, "color", "c", "#4ECDC4", "Habit color (hex)")
	habitLogCmd.Flags().StringVarP(&habitLogDate, "date", "d", "", "Day to toggle (YYYY-MM-DD, default today)")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitLogCmd)
	habitCmd.AddCommand(habitDeleteCmd)
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	h, err := app.Store.AddHabit(args[0], habitEmoji, habitColor)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	fmt.Printf("✓ Created habit %s %s\n", h.Emoji, h.Name)
	return nil
}

func runHabitList(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st := app.Store.State()
	if len(st.Habits) == 0 {
		fmt.Println("No habits yet. Create one with: iplan habit add \"Read 20 min\"")
		return nil
	}

	now := time.Now()
	today := now.Format(model.DateLayout)
	for _, h := range st.Habits {
		marker := "○"
		if st.HasHabitLog(h.ID, today) {
			marker = "✓"
		}
		streak := gamify.HabitStreak(st.HabitLogs, h.ID, now)
		line := fmt.Sprintf("%s %s %s %s", marker, h.Emoji, h.Name, statLabelStyle.Render(shortID(h.ID)))
		if streak > 0 {
			line += fmt.Sprintf("  🔥 %d", streak)
		}
		fmt.Println(line)
	}
	return nil
}

func runHabitLog(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	h, ok := findHabit(app.Store.State(), args[0])
	if !ok {
		return fmt.Errorf("habit not found: %s", args[0])
	}

	date := habitLogDate
	if date == "" {
		date = time.Now().Format(model.DateLayout)
	} else if _, err := time.Parse(model.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	logged, err := app.Store.ToggleHabitLog(h.ID, date)
	if err != nil {
		return fmt.Errorf("failed to log habit: %w", err)
	}

	if logged {
		fmt.Printf("✓ Logged %s %s for %s (+%d XP)\n", h.Emoji, h.Name, date, gamify.RewardHabitLog)
	} else {
		fmt.Printf("○ Unlogged %s %s for %s\n", h.Emoji, h.Name, date)
	}
	return nil
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	h, ok := findHabit(app.Store.State(), args[0])
	if !ok {
		return fmt.Errorf("habit not found: %s", args[0])
	}
	if err := app.Store.DeleteHabit(h.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	fmt.Printf("🗑  Deleted habit %s\n", h.Name)
	return nil
}

// findHabit resolves a habit by id, exact name, or unique id prefix.
func findHabit(st model.AppState, ref string) (model.Habit, bool) {
	for _, h := range st.Habits {
		if h.ID == ref || h.Name == ref {
			return h, true
		}
	}
	var match model.Habit
	found := false
	for _, h := range st.Habits {
		if len(ref) >= 4 && len(ref) < len(h.ID) && h.ID[:len(ref)] == ref {
			if found {
				return model.Habit{}, false
			}
			match, found = h, true
		}
	}
	return match, found
}

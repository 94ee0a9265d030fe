package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/config"
	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/logger"
	"github.com/existflow/iplan/internal/model"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "iplan",
	Short: "iplan - personal productivity with streaks, XP, and badges",
	Long: `iplan tracks tasks, subjects, notes, habits, and pomodoro sessions,
and turns consistent work into streaks, experience points, and badges.

Run 'iplan' without arguments to see your dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("iplan started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: runDashboard,

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("iplan exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

func runDashboard(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	st := app.Store.State()
	now := time.Now()
	level := gamify.GetLevel(st.XP)
	streak := gamify.CalculateStreak(st.Tasks, now)

	pending, doneToday := 0, 0
	today := now.Format(model.DateLayout)
	for _, t := range st.Tasks {
		switch {
		case t.Status == model.StatusCompleted && t.CompletedAt != nil &&
			t.CompletedAt.Format(model.DateLayout) == today:
			doneToday++
		case t.Status != model.StatusCompleted:
			pending++
		}
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("iplan — %s", now.Format("Mon, Jan 2"))))
	fmt.Println()
	fmt.Printf("%s %s   %s %s\n",
		statLabelStyle.Render("🔥 Streak:"),
		statValueStyle.Render(fmt.Sprintf("%d days", streak)),
		statLabelStyle.Render("⭐ Level:"),
		statValueStyle.Render(fmt.Sprintf("%d", level.Level)))
	fmt.Printf("%s %s %d/%d XP\n",
		statLabelStyle.Render("   XP:"),
		renderXPBar(level.CurrentLevelXP, level.NextLevelXP, 20),
		level.CurrentLevelXP, level.NextLevelXP)
	fmt.Println()
	fmt.Printf("%s %s open, %s done today   %s %d/%d\n",
		statLabelStyle.Render("Tasks:"),
		statValueStyle.Render(fmt.Sprintf("%d", pending)),
		statValueStyle.Render(fmt.Sprintf("%d", doneToday)),
		statLabelStyle.Render("Badges:"),
		len(st.Badges), len(model.AllBadgeIDs))

	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(subjectCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(pomodoroCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(watchCmd)
}

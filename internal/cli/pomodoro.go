package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/gamify"
	"github.com/existflow/iplan/internal/model"
	"github.com/existflow/iplan/internal/notify"
)

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo"},
	Short:   "Run focus sessions",
	Long:    `Run a pomodoro countdown in the terminal. A session only counts (and earns XP) when the timer finishes; interrupting it records nothing.`,
}

var pomodoroStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a countdown and record the session when it finishes",
	RunE:  runPomodoroStart,
}

var pomodoroLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a finished session without running the timer",
	RunE:  runPomodoroLog,
}

var (
	pomodoroMinutes int
	pomodoroSubject string
)

func init() {
	pomodoroStartCmd.Flags().IntVarP(&pomodoroMinutes, "minutes", "m", 25, "Session length in minutes")
	pomodoroStartCmd.Flags().StringVarP(&pomodoroSubject, "subject", "S", "", "Subject to attribute the session to")
	pomodoroLogCmd.Flags().IntVarP(&pomodoroMinutes, "minutes", "m", 25, "Session length in minutes")
	pomodoroLogCmd.Flags().StringVarP(&pomodoroSubject, "subject", "S", "", "Subject to attribute the session to")

	pomodoroCmd.AddCommand(pomodoroStartCmd)
	pomodoroCmd.AddCommand(pomodoroLogCmd)
}

func runPomodoroStart(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	subjectID, err := resolvePomodoroSubject(app.Store.State())
	if err != nil {
		return err
	}

	remaining := pomodoroMinutes * 60
	if remaining <= 0 {
		return fmt.Errorf("session length must be positive")
	}

	fmt.Printf("🍅 Focus for %d minutes. Ctrl+C abandons the session.\n", pomodoroMinutes)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for remaining > 0 {
		fmt.Printf("\r  %02d:%02d remaining ", remaining/60, remaining%60)
		select {
		case <-ticker.C:
			remaining--
		case <-interrupt:
			fmt.Println("\n✗ Session abandoned, nothing recorded")
			return nil
		}
	}
	fmt.Print("\r                      \r")

	if _, err := app.Store.RecordPomodoro(subjectID, pomodoroMinutes); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	notify.Send("Pomodoro finished", fmt.Sprintf("%d minutes of focus done. Take a break!", pomodoroMinutes))
	fmt.Printf("🍅 Session done: %d minutes (+%d XP)\n", pomodoroMinutes, gamify.RewardCompletePomodoro)
	return nil
}

func runPomodoroLog(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	subjectID, err := resolvePomodoroSubject(app.Store.State())
	if err != nil {
		return err
	}

	if _, err := app.Store.RecordPomodoro(subjectID, pomodoroMinutes); err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	fmt.Printf("🍅 Recorded %d-minute session (+%d XP)\n", pomodoroMinutes, gamify.RewardCompletePomodoro)
	return nil
}

func resolvePomodoroSubject(st model.AppState) (string, error) {
	if pomodoroSubject == "" {
		return "", nil
	}
	sub, ok := findSubject(st, pomodoroSubject)
	if !ok {
		return "", fmt.Errorf("subject not found: %s", pomodoroSubject)
	}
	return sub.ID, nil
}

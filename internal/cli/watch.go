package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/existflow/iplan/internal/logger"
	"github.com/existflow/iplan/internal/sweep"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run in the background, syncing and sweeping continuously",
	Long: `Keep iplan running: poll the server for remote changes, push local
changes as they happen, and reclassify overdue tasks just after midnight.
Stop with Ctrl+C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	app.rec.Start()
	defer app.rec.Stop()

	job, err := sweep.Start(app.Store)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue sweep: %w", err)
	}
	defer job.Stop()

	fmt.Println("👀 Watching. Press Ctrl+C to stop.")
	logger.Info("Watch mode started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("\nStopping.")
	return nil
}

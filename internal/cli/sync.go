package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync state with the server",
	Long: `Sync your data across devices.

Commands:
  iplan sync              # Pull then push now
  iplan sync status       # Show sync status
  iplan sync config       # Configure the server URL`,
	RunE: runSync,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE:  runSyncStatus,
}

var syncConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure sync settings",
	RunE:  runSyncConfig,
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncConfigCmd)

	syncConfigCmd.Flags().String("server", "", "Set server URL")
}

func runSync(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.Client.IsLoggedIn() {
		return fmt.Errorf("not logged in, run: iplan auth login")
	}

	fmt.Println("🔄 Synchronizing...")
	app.SyncNow()

	_, _, version := app.Client.Status()
	fmt.Printf("✓ Sync complete (server version %d)\n", version)
	return nil
}

func runSyncStatus(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	serverURL, userID, lastVersion := app.Client.Status()

	fmt.Printf("Server:       %s\n", serverURL)
	if app.Client.IsLoggedIn() {
		fmt.Printf("User ID:      %s\n", userID)
		fmt.Printf("Last Version: %d\n", lastVersion)
		fmt.Println("Status:       ✓ Logged in")
	} else {
		fmt.Println("Status:       Not logged in")
	}
	return nil
}

func runSyncConfig(cmd *cobra.Command, args []string) error {
	app, err := openApp()
	if err != nil {
		return err
	}
	defer app.Close()

	server, _ := cmd.Flags().GetString("server")
	if server != "" {
		if err := app.Client.SetServer(server); err != nil {
			return err
		}
		fmt.Printf("✓ Server set to: %s\n", server)
		return nil
	}

	url, _, _ := app.Client.Status()
	fmt.Printf("Server: %s\n", url)
	return nil
}

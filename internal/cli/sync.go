package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Trigger a manual sync on the server",
	RunE:  runSync,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server connectivity and sync state",
	RunE:  runStatus,
}

func runSync(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	result, err := engine.TriggerSync(context.Background())
	if err != nil {
		return err
	}

	if !result.Success {
		fmt.Printf("Sync failed: %s\n", result.Message)
		return nil
	}
	fmt.Printf("%s", result.Message)
	if result.SyncID != "" {
		fmt.Printf(" (sync %s)", result.SyncID)
	}
	fmt.Println()
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	health, err := engine.PingHealth(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Server: %s\n", health.Status)
	if engine.Status().Offline() {
		local := engine.Local()
		fmt.Printf("Local mirror: %d tasks, %d projects\n", len(local.Tasks()), len(local.Projects()))
		return nil
	}

	state, err := engine.SyncStatus(context.Background())
	if err != nil {
		return err
	}
	if state.LastSync != nil {
		fmt.Printf("Last sync: %s\n", state.LastSync.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Println("Last sync: never")
	}
	if state.IsSyncing {
		fmt.Println("Sync in progress")
	}
	return nil
}

// Package cli implements the mission-control command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiBase  string
	password string
	rootCmd  *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "mission-control",
		Short: "Mission Control - kanban task tracker",
		Long: `Mission Control is a kanban task tracker shared by humans and the Randy agent.

The CLI talks to the API server when it is reachable and falls back to a
local mirror when it is not, so task commands keep working offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "API password (overrides config)")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(randyCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

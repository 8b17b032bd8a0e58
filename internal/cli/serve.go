package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Macrojordan/mission-control-kanban/internal/config"
	"github.com/Macrojordan/mission-control-kanban/internal/server"
	"github.com/Macrojordan/mission-control-kanban/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Mission Control API server",
	Long: `Starts the REST API server backed by SQLite or PostgreSQL.

PostgreSQL is used when server.database_url (or MC_DATABASE_URL) is set,
otherwise the server opens the configured SQLite file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	st, err := store.Open(context.Background(), cfg.Server.DatabaseURL, cfg.Server.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	srv := server.NewServer(st, server.Options{
		Password:       cfg.Server.Password,
		GatewayCommand: cfg.Server.GatewayCommand,
	})

	backend := "sqlite " + cfg.Server.SQLitePath
	if cfg.Server.DatabaseURL != "" {
		backend = "postgres"
	}
	fmt.Printf("Mission Control listening on %s (%s)\n", addr, backend)
	return srv.Run(addr)
}

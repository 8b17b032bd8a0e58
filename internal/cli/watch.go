package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Macrojordan/mission-control-kanban/internal/client"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the local mirror fresh in the background",
	Long: `Runs the background refresher until interrupted: a full data refresh
every 15 seconds and a health heartbeat every 5 seconds. Connectivity
transitions are printed as they happen.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	wasOffline := engine.Status().Offline()
	engine.Status().SetHandler(func(offline bool) {
		if offline == wasOffline {
			return
		}
		wasOffline = offline
		if offline {
			fmt.Println("Connection lost, serving from local mirror")
		} else {
			fmt.Println("Connection restored")
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prime the mirror before settling into the refresh cadence
	if _, err := engine.PingHealth(ctx); err != nil {
		return err
	}
	fmt.Println("Watching for changes (ctrl-c to stop)")

	client.NewRefresher(engine).Run(ctx)
	return nil
}

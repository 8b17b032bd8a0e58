package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show dashboard metrics",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	d, err := engine.DashboardMetrics(context.Background())
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Println("Mission Control Dashboard")
	fmt.Printf("  Total tasks:       %d\n", d.Totals.All)
	fmt.Printf("  Completed today:   %d\n", d.Totals.CompletedToday)
	fmt.Printf("  Created this week: %d\n", d.Totals.CreatedThisWeek)
	if d.AvgCompletionHours > 0 {
		fmt.Printf("  Avg completion:    %dh\n", d.AvgCompletionHours)
	}

	if len(d.ByStatus) > 0 {
		fmt.Println("\nBy status:")
		for _, s := range d.ByStatus {
			fmt.Printf("  %-12s %d\n", s.Status, s.Count)
		}
	}
	if len(d.ByPriority) > 0 {
		fmt.Println("\nBy priority:")
		for _, p := range d.ByPriority {
			fmt.Printf("  %-12s %d\n", p.Priority, p.Count)
		}
	}
	if len(d.ByProject) > 0 {
		fmt.Println("\nBy project:")
		for _, p := range d.ByProject {
			fmt.Printf("  %-20s %d\n", p.Name, p.Count)
		}
	}
	if len(d.RecentActivity) > 0 {
		fmt.Println("\nRecent activity:")
		for _, a := range d.RecentActivity {
			fmt.Printf("  [%s] %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Description)
		}
	}
	return nil
}

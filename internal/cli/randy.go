package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var randyCmd = &cobra.Command{
	Use:   "randy",
	Short: "Inspect the Randy agent queue",
}

var randyTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks assigned to Randy",
	RunE:  runRandyTasks,
}

var randyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show Randy productivity stats",
	RunE:  runRandyStats,
}

func init() {
	randyCmd.AddCommand(randyTasksCmd)
	randyCmd.AddCommand(randyStatsCmd)

	randyTasksCmd.Flags().String("status", "", "Filter by status")
}

func runRandyTasks(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	list, err := engine.RandyTasks(context.Background(), mustString(cmd, "status"))
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	if list.Total == 0 {
		fmt.Println("Randy has no tasks.")
		return nil
	}

	fmt.Printf("Randy queue (%d):\n\n", list.Total)
	for _, t := range list.Tasks {
		fmt.Printf("  #%-4d %-12s %-8s %s\n", t.ID, t.Status, t.Priority, t.Title)
	}
	return nil
}

func runRandyStats(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	stats, err := engine.RandyStats(context.Background())
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Println("Randy stats")
	fmt.Printf("  Total:           %d\n", stats.Total)
	fmt.Printf("  Completed:       %d\n", stats.Completed)
	fmt.Printf("  In progress:     %d\n", stats.InProgress)
	fmt.Printf("  Completion rate: %d%%\n", stats.CompletionRate)
	if stats.AvgCompletionHours > 0 {
		fmt.Printf("  Avg completion:  %dh\n", stats.AvgCompletionHours)
	}
	if len(stats.ByPriority) > 0 {
		fmt.Println("\nBy priority:")
		for _, p := range stats.ByPriority {
			fmt.Printf("  %-12s %d\n", p.Priority, p.Count)
		}
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTasksList,
}

var tasksShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show task details with comments and history",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksShow,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a task",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTasksCreate,
}

var tasksMoveCmd = &cobra.Command{
	Use:   "move [id] [status]",
	Short: "Move a task to another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runTasksMove,
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Move a task to done",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDone,
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksRm,
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksShowCmd)
	tasksCmd.AddCommand(tasksCreateCmd)
	tasksCmd.AddCommand(tasksMoveCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
	tasksCmd.AddCommand(tasksRmCmd)

	tasksListCmd.Flags().String("status", "", "Filter by status")
	tasksListCmd.Flags().Int64("project", 0, "Filter by project id")
	tasksListCmd.Flags().String("priority", "", "Filter by priority")
	tasksListCmd.Flags().String("assigned", "", "Filter by assignee")
	tasksListCmd.Flags().String("search", "", "Search in title and description")
	tasksListCmd.Flags().String("tag", "", "Filter by tag")

	tasksCreateCmd.Flags().String("description", "", "Task description")
	tasksCreateCmd.Flags().String("status", "", "Initial status (default backlog)")
	tasksCreateCmd.Flags().String("priority", "", "Priority (default medium)")
	tasksCreateCmd.Flags().Int64("project", 0, "Project id (default 1)")
	tasksCreateCmd.Flags().String("assigned", "", "Assignee")
	tasksCreateCmd.Flags().StringSlice("tags", nil, "Tags")
	tasksCreateCmd.Flags().Float64("estimate", 0, "Estimated hours")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// offlineNotice prints a warning when the last call was served from the
// local mirror.
func offlineNotice(cmd *cobra.Command, offline bool) {
	if offline {
		fmt.Fprintln(cmd.ErrOrStderr(), "(offline: showing local data)")
	}
}

func runTasksList(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	projectID, _ := cmd.Flags().GetInt64("project")
	f := model.TaskFilter{
		Status:     mustString(cmd, "status"),
		ProjectID:  projectID,
		Priority:   mustString(cmd, "priority"),
		AssignedTo: mustString(cmd, "assigned"),
		Search:     mustString(cmd, "search"),
		Tag:        mustString(cmd, "tag"),
	}

	tasks, err := engine.ListTasks(context.Background(), f)
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	fmt.Printf("Tasks (%d):\n\n", len(tasks))
	for _, t := range tasks {
		assignee := t.AssignedTo
		if assignee == "" {
			assignee = "-"
		}
		fmt.Printf("  #%-4d %-12s %-8s %-10s %s\n", t.ID, t.Status, t.Priority, assignee, t.Title)
	}
	return nil
}

func runTasksShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	detail, err := engine.GetTask(context.Background(), id)
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	t := detail.Task
	fmt.Printf("#%d %s\n", t.ID, t.Title)
	fmt.Printf("  Status:   %s\n", t.Status)
	fmt.Printf("  Priority: %s\n", t.Priority)
	fmt.Printf("  Project:  %d\n", t.ProjectID)
	if t.AssignedTo != "" {
		fmt.Printf("  Assigned: %s\n", t.AssignedTo)
	}
	if len(t.Tags) > 0 {
		fmt.Printf("  Tags:     %s\n", strings.Join(t.Tags, ", "))
	}
	if t.DueDate != nil {
		fmt.Printf("  Due:      %s\n", t.DueDate.Format("2006-01-02"))
	}
	if t.CompletedAt != nil {
		fmt.Printf("  Done at:  %s\n", t.CompletedAt.Format("2006-01-02 15:04"))
	}
	if t.Description != "" {
		fmt.Printf("\n%s\n", t.Description)
	}

	if len(detail.Comments) > 0 {
		fmt.Printf("\nComments (%d):\n", len(detail.Comments))
		for _, c := range detail.Comments {
			fmt.Printf("  [%s] %s: %s\n", c.CreatedAt.Format("2006-01-02 15:04"), c.Author, c.Content)
		}
	}
	if len(detail.History) > 0 {
		fmt.Printf("\nHistory (%d):\n", len(detail.History))
		for _, a := range detail.History {
			fmt.Printf("  [%s] %s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Description)
		}
	}
	return nil
}

func runTasksCreate(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	if status := mustString(cmd, "status"); status != "" && !model.ValidStatus(status) {
		return fmt.Errorf("invalid status %q (want backlog, todo, in_progress, review or done)", status)
	}
	if priority := mustString(cmd, "priority"); priority != "" && !model.ValidPriority(priority) {
		return fmt.Errorf("invalid priority %q (want high, medium or low)", priority)
	}

	projectID, _ := cmd.Flags().GetInt64("project")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	in := model.TaskInput{
		Title:       strings.Join(args, " "),
		Description: mustString(cmd, "description"),
		Status:      mustString(cmd, "status"),
		Priority:    mustString(cmd, "priority"),
		ProjectID:   projectID,
		AssignedTo:  mustString(cmd, "assigned"),
		Tags:        tags,
	}
	if estimate, _ := cmd.Flags().GetFloat64("estimate"); estimate > 0 {
		in.EstimatedHours = &estimate
	}

	task, err := engine.CreateTask(context.Background(), in)
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Printf("Created task #%d: %s\n", task.ID, task.Title)
	return nil
}

func runTasksMove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status := args[1]
	if !model.ValidStatus(status) {
		return fmt.Errorf("invalid status %q (want backlog, todo, in_progress, review or done)", status)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	task, err := engine.MoveTask(context.Background(), id, status, "")
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Printf("Moved task #%d to %s\n", task.ID, task.Status)
	return nil
}

func runTasksDone(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	task, err := engine.MoveTask(context.Background(), id, model.StatusDone, "")
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Printf("Completed task #%d: %s\n", task.ID, task.Title)
	return nil
}

func runTasksRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	if err := engine.DeleteTask(context.Background(), id, ""); err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Printf("Deleted task #%d\n", id)
	return nil
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

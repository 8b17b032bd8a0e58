package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectsList,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectsCreate,
}

var projectsFridgeCmd = &cobra.Command{
	Use:   "fridge [id]",
	Short: "Toggle a project in or out of the fridge",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsFridge,
}

var projectsRmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsRm,
}

func init() {
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsCreateCmd)
	projectsCmd.AddCommand(projectsFridgeCmd)
	projectsCmd.AddCommand(projectsRmCmd)

	projectsCreateCmd.Flags().String("description", "", "Project description")
	projectsCreateCmd.Flags().String("color", "", "Project color (hex)")

	projectsFridgeCmd.Flags().Bool("out", false, "Take the project out of the fridge")
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	projects, err := engine.ListProjects(context.Background())
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	if len(projects) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Printf("Projects (%d):\n\n", len(projects))
	for _, p := range projects {
		marker := ""
		if p.IsFridge {
			marker = "  [fridge]"
		}
		fmt.Printf("  #%-4d %-20s %3d tasks%s\n", p.ID, p.Name, p.TaskCount, marker)
	}
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	in := model.ProjectInput{
		Name:        strings.Join(args, " "),
		Description: mustString(cmd, "description"),
		Color:       mustString(cmd, "color"),
	}

	project, err := engine.CreateProject(context.Background(), in)
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Printf("Created project #%d: %s\n", project.ID, project.Name)
	return nil
}

func runProjectsFridge(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetBool("out")

	engine, err := newEngine()
	if err != nil {
		return err
	}

	project, err := engine.SetProjectFridge(context.Background(), id, !out)
	if err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	if project.IsFridge {
		fmt.Printf("Project #%d moved to the fridge\n", project.ID)
	} else {
		fmt.Printf("Project #%d taken out of the fridge\n", project.ID)
	}
	return nil
}

func runProjectsRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if id == model.DefaultProjectID {
		return fmt.Errorf("the default project cannot be deleted")
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	if err := engine.DeleteProject(context.Background(), id); err != nil {
		return err
	}
	offlineNotice(cmd, engine.Status().Offline())

	fmt.Printf("Deleted project #%d\n", id)
	return nil
}

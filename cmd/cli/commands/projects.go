package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmflow/flow/internal/api/v1/handlers"
)

// Project flag names
const (
	flagProjectID   = "id"
	flagProjectName = "name"
	flagProjectDesc = "description"
)

func init() {
	projectsCmd.AddCommand(createProjectCmd)
	projectsCmd.AddCommand(getProjectCmd)
	projectsCmd.AddCommand(listProjectsCmd)
	projectsCmd.AddCommand(deleteProjectCmd)

	createProjectCmd.Flags().StringP(flagProjectName, "n", "", "Project name")
	createProjectCmd.Flags().StringP(flagProjectDesc, "d", "", "Project description")
	_ = createProjectCmd.MarkFlagRequired(flagProjectName)

	getProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = getProjectCmd.MarkFlagRequired(flagProjectID)

	deleteProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = deleteProjectCmd.MarkFlagRequired(flagProjectID)
}

// GetProjectsCmd returns the projects command tree
func GetProjectsCmd() *cobra.Command {
	return projectsCmd
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var createProjectCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, err := cmd.Flags().GetString(flagProjectName)
		if err != nil {
			return fmt.Errorf("error getting name flag: %w", err)
		}
		description, err := cmd.Flags().GetString(flagProjectDesc)
		if err != nil {
			return fmt.Errorf("error getting description flag: %w", err)
		}

		project, err := apiClient.CreateProject(context.Background(), handlers.ProjectCreateParams{
			Name:        name,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		return printJSON(project)
	},
}

var getProjectCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific project by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}

		project, err := apiClient.GetProject(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting project: %w", err)
		}

		return printJSON(project)
	},
}

var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE: func(_ *cobra.Command, _ []string) error {
		projects, err := apiClient.ListProjects(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("error listing projects: %w", err)
		}

		return printJSON(projects)
	},
}

var deleteProjectCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project and its sprints",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}

		if err := apiClient.DeleteProject(context.Background(), id); err != nil {
			return fmt.Errorf("error deleting project: %w", err)
		}

		fmt.Printf("Project %d deleted\n", id)
		return nil
	},
}

// printJSON prints a value as indented JSON
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

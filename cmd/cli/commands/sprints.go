package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmflow/flow/internal/api/v1/handlers"
)

// Sprint flag names
const (
	flagSprintID      = "id"
	flagSprintName    = "name"
	flagSprintProject = "project-id"
	flagSprintStart   = "start-date"
	flagSprintEnd     = "end-date"
	flagSprintTasks   = "tasks"
)

// sprintDateLayout is the date format accepted by the sprint commands
const sprintDateLayout = "2006-01-02"

func init() {
	sprintsCmd.AddCommand(createSprintCmd)
	sprintsCmd.AddCommand(getSprintCmd)
	sprintsCmd.AddCommand(listSprintsCmd)
	sprintsCmd.AddCommand(deleteSprintCmd)
	sprintsCmd.AddCommand(setSprintStateCmd)
	sprintsCmd.AddCommand(sprintTasksCmd)
	sprintsCmd.AddCommand(selectSprintTasksCmd)

	createSprintCmd.Flags().StringP(flagSprintName, "n", "", "Sprint name")
	createSprintCmd.Flags().UintP(flagSprintProject, "p", 0, "Project ID")
	createSprintCmd.Flags().String(flagSprintStart, "", "Start date (YYYY-MM-DD)")
	createSprintCmd.Flags().String(flagSprintEnd, "", "End date (YYYY-MM-DD), defaults to two weeks after start")
	_ = createSprintCmd.MarkFlagRequired(flagSprintName)
	_ = createSprintCmd.MarkFlagRequired(flagSprintProject)
	_ = createSprintCmd.MarkFlagRequired(flagSprintStart)

	getSprintCmd.Flags().UintP(flagSprintID, "i", 0, "Sprint ID")
	_ = getSprintCmd.MarkFlagRequired(flagSprintID)

	listSprintsCmd.Flags().UintP(flagSprintProject, "p", 0, "Project ID to filter by")

	deleteSprintCmd.Flags().UintP(flagSprintID, "i", 0, "Sprint ID")
	_ = deleteSprintCmd.MarkFlagRequired(flagSprintID)

	setSprintStateCmd.Flags().UintP(flagSprintID, "i", 0, "Sprint ID")
	_ = setSprintStateCmd.MarkFlagRequired(flagSprintID)

	sprintTasksCmd.Flags().UintP(flagSprintID, "i", 0, "Sprint ID")
	_ = sprintTasksCmd.MarkFlagRequired(flagSprintID)

	selectSprintTasksCmd.Flags().UintP(flagSprintID, "i", 0, "Sprint ID")
	selectSprintTasksCmd.Flags().UintSlice(flagSprintTasks, nil, "Task IDs forming the new selection")
	_ = selectSprintTasksCmd.MarkFlagRequired(flagSprintID)
}

// GetSprintsCmd returns the sprints command tree
func GetSprintsCmd() *cobra.Command {
	return sprintsCmd
}

var sprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "Manage sprints",
}

// parseSprintDate parses a YYYY-MM-DD flag value
func parseSprintDate(cmd *cobra.Command, flag string) (time.Time, error) {
	value, err := cmd.Flags().GetString(flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("error getting %s flag: %w", flag, err)
	}
	if value == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(sprintDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q, expected YYYY-MM-DD", flag, value)
	}
	return date, nil
}

var createSprintCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new sprint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, err := cmd.Flags().GetString(flagSprintName)
		if err != nil {
			return fmt.Errorf("error getting name flag: %w", err)
		}
		projectID, err := cmd.Flags().GetUint(flagSprintProject)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}
		startDate, err := parseSprintDate(cmd, flagSprintStart)
		if err != nil {
			return err
		}
		endDate, err := parseSprintDate(cmd, flagSprintEnd)
		if err != nil {
			return err
		}

		sprint, err := apiClient.CreateSprint(context.Background(), handlers.SprintCreateParams{
			Name:      name,
			ProjectID: projectID,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			return fmt.Errorf("error creating sprint: %w", err)
		}

		return printJSON(sprint)
	},
}

var getSprintCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific sprint by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagSprintID)
		if err != nil {
			return fmt.Errorf("error getting sprint ID flag: %w", err)
		}

		sprint, err := apiClient.GetSprint(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting sprint: %w", err)
		}

		return printJSON(sprint)
	},
}

var listSprintsCmd = &cobra.Command{
	Use:   "list",
	Short: "List sprints, optionally filtered by project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagSprintProject)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}

		var filter *uint
		if projectID > 0 {
			filter = &projectID
		}

		sprints, err := apiClient.ListSprints(context.Background(), filter, nil)
		if err != nil {
			return fmt.Errorf("error listing sprints: %w", err)
		}

		return printJSON(sprints)
	},
}

var deleteSprintCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a sprint, clearing its tasks' sprint reference",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagSprintID)
		if err != nil {
			return fmt.Errorf("error getting sprint ID flag: %w", err)
		}

		if err := apiClient.DeleteSprint(context.Background(), id); err != nil {
			return fmt.Errorf("error deleting sprint: %w", err)
		}

		fmt.Printf("Sprint %d deleted\n", id)
		return nil
	},
}

var setSprintStateCmd = &cobra.Command{
	Use:       "set-state [set-auto|set-planned|set-active|set-done]",
	Short:     "Apply a manual state override or return the sprint to auto mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"set-auto", "set-planned", "set-active", "set-done"},
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := cmd.Flags().GetUint(flagSprintID)
		if err != nil {
			return fmt.Errorf("error getting sprint ID flag: %w", err)
		}

		sprint, err := apiClient.SetSprintState(context.Background(), id, args[0])
		if err != nil {
			return fmt.Errorf("error setting sprint state: %w", err)
		}

		return printJSON(sprint)
	},
}

var sprintTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the tasks currently linked to a sprint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagSprintID)
		if err != nil {
			return fmt.Errorf("error getting sprint ID flag: %w", err)
		}

		tasks, err := apiClient.GetSprintTasks(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error listing sprint tasks: %w", err)
		}

		return printJSON(tasks)
	},
}

var selectSprintTasksCmd = &cobra.Command{
	Use:   "select-tasks",
	Short: "Replace the sprint's task selection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagSprintID)
		if err != nil {
			return fmt.Errorf("error getting sprint ID flag: %w", err)
		}
		taskIDs, err := cmd.Flags().GetUintSlice(flagSprintTasks)
		if err != nil {
			return fmt.Errorf("error getting tasks flag: %w", err)
		}

		tasks, err := apiClient.SelectSprintTasks(context.Background(), id, taskIDs)
		if err != nil {
			return fmt.Errorf("error selecting sprint tasks: %w", err)
		}

		return printJSON(tasks)
	},
}

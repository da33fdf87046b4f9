package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmflow/flow/internal/api/v1/handlers"
)

// Task flag names
const (
	flagTaskID       = "id"
	flagTaskName     = "name"
	flagTaskProject  = "project-id"
	flagTaskSprint   = "sprint-id"
	flagTaskDeadline = "deadline"
)

func init() {
	tasksCmd.AddCommand(createTaskCmd)
	tasksCmd.AddCommand(getTaskCmd)
	tasksCmd.AddCommand(deleteTaskCmd)
	tasksCmd.AddCommand(assignTaskCmd)
	tasksCmd.AddCommand(unassignTaskCmd)

	createTaskCmd.Flags().StringP(flagTaskName, "n", "", "Task name")
	createTaskCmd.Flags().UintP(flagTaskProject, "p", 0, "Project ID")
	createTaskCmd.Flags().Uint(flagTaskSprint, 0, "Sprint ID to create the task into")
	createTaskCmd.Flags().String(flagTaskDeadline, "", "Deadline (YYYY-MM-DD)")
	_ = createTaskCmd.MarkFlagRequired(flagTaskName)
	_ = createTaskCmd.MarkFlagRequired(flagTaskProject)

	getTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	_ = getTaskCmd.MarkFlagRequired(flagTaskID)

	deleteTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	_ = deleteTaskCmd.MarkFlagRequired(flagTaskID)

	assignTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	assignTaskCmd.Flags().Uint(flagTaskSprint, 0, "Sprint ID")
	_ = assignTaskCmd.MarkFlagRequired(flagTaskID)
	_ = assignTaskCmd.MarkFlagRequired(flagTaskSprint)

	unassignTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	_ = unassignTaskCmd.MarkFlagRequired(flagTaskID)
}

// GetTasksCmd returns the tasks command tree
func GetTasksCmd() *cobra.Command {
	return tasksCmd
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var createTaskCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, err := cmd.Flags().GetString(flagTaskName)
		if err != nil {
			return fmt.Errorf("error getting name flag: %w", err)
		}
		projectID, err := cmd.Flags().GetUint(flagTaskProject)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}
		sprintID, err := cmd.Flags().GetUint(flagTaskSprint)
		if err != nil {
			return fmt.Errorf("error getting sprint ID flag: %w", err)
		}
		deadlineStr, err := cmd.Flags().GetString(flagTaskDeadline)
		if err != nil {
			return fmt.Errorf("error getting deadline flag: %w", err)
		}

		params := handlers.TaskCreateParams{
			Name:      name,
			ProjectID: projectID,
		}
		if sprintID > 0 {
			params.SprintID = &sprintID
		}
		if deadlineStr != "" {
			deadline, err := time.Parse(sprintDateLayout, deadlineStr)
			if err != nil {
				return fmt.Errorf("invalid deadline %q, expected YYYY-MM-DD", deadlineStr)
			}
			params.Deadline = &deadline
		}

		task, err := apiClient.CreateTask(context.Background(), params)
		if err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}

		return printJSON(task)
	},
}

var getTaskCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific task by its ID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}

		task, err := apiClient.GetTask(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error getting task: %w", err)
		}

		return printJSON(task)
	},
}

var deleteTaskCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}

		if err := apiClient.DeleteTask(context.Background(), id); err != nil {
			return fmt.Errorf("error deleting task: %w", err)
		}

		fmt.Printf("Task %d deleted\n", id)
		return nil
	},
}

var assignTaskCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign a task to a sprint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}
		sprintID, err := cmd.Flags().GetUint(flagTaskSprint)
		if err != nil {
			return fmt.Errorf("error getting sprint ID flag: %w", err)
		}

		task, err := apiClient.AssignTaskSprint(context.Background(), id, sprintID)
		if err != nil {
			return fmt.Errorf("error assigning task: %w", err)
		}

		return printJSON(task)
	},
}

var unassignTaskCmd = &cobra.Command{
	Use:   "unassign",
	Short: "Remove a task from its sprint",
	RunE: func(cmd *cobra.Command, _ []string) error {
		id, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}

		task, err := apiClient.UnassignTaskSprint(context.Background(), id)
		if err != nil {
			return fmt.Errorf("error unassigning task: %w", err)
		}

		return printJSON(task)
	},
}

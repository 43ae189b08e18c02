package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasktracker/internal/app"
	"tasktracker/internal/domain"
)

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Task operations",
	}
	cmd.AddCommand(newTaskListCmd(a))
	cmd.AddCommand(newTaskShowCmd(a))
	cmd.AddCommand(newTaskAddCmd(a))
	cmd.AddCommand(newTaskUpdateCmd(a))
	cmd.AddCommand(newTaskDeleteCmd(a))
	return cmd
}

func newTaskListCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			tasks := svc.GetAllTasks(cmd.Context())
			w := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(w, "No tasks found.")
				return nil
			}
			fmt.Fprintf(w, "%-36s %-30s %-8s %-12s\n", "ID", "Title", "Priority", "Status")
			fmt.Fprintln(w, strings.Repeat("-", 90))
			for _, t := range tasks {
				fmt.Fprintf(w, "%-36s %-30s %-8d %-12s\n", t.ID, clip(t.Title, 30), t.Priority, t.Status)
			}
			return nil
		},
	}
	return cmd
}

func newTaskShowCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			task, err := svc.GetTask(cmd.Context(), args[0])
			if err != nil {
				return taskNotFound(err, args[0])
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID: %s\n", task.ID)
			fmt.Fprintf(w, "Title: %s\n", task.Title)
			if strings.TrimSpace(task.Description) == "" {
				fmt.Fprintln(w, "Description: ")
			} else {
				fmt.Fprintf(w, "Description:\n%s\n", a.md.render(task.Description, markdownWidth))
			}
			fmt.Fprintf(w, "Priority: %d\n", task.Priority)
			fmt.Fprintf(w, "Status: %s\n", task.Status)
			fmt.Fprintf(w, "Created: %s\n", task.CreatedAt)
			fmt.Fprintf(w, "Updated: %s\n", task.UpdatedAt)
			return nil
		},
	}
	return cmd
}

func newTaskAddCmd(a *App) *cobra.Command {
	var (
		description string
		priority    int
		status      string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := parsePriorityFlag(priority)
			if err != nil {
				return err
			}
			st, err := parseStatusFlag(status)
			if err != nil {
				return err
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			task, err := svc.AddTask(cmd.Context(), domain.TaskInput{
				Title:       args[0],
				Description: description,
				Priority:    pr,
				Status:      st,
			})
			if err != nil {
				return err
			}
			a.logger.Info("task added", "id", task.ID, "title", task.Title)
			fmt.Fprintf(cmd.OutOrStdout(), "Task added: %s\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().IntVarP(&priority, "priority", "p", 1, "Task priority (1=Low, 2=Medium, 3=High)")
	cmd.Flags().StringVarP(&status, "status", "s", string(domain.StatusNotStarted), "Task status (not_started, in_progress, completed)")
	return cmd
}

func newTaskUpdateCmd(a *App) *cobra.Command {
	var (
		title       string
		description string
		priority    int
		status      string
	)
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// An empty string leaves that field unchanged.
			in := app.UpdateTaskInput{}
			if title != "" {
				in.Title = &title
			}
			if description != "" {
				in.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				pr, err := parsePriorityFlag(priority)
				if err != nil {
					return err
				}
				in.Priority = &pr
			}
			if status != "" {
				st, err := parseStatusFlag(status)
				if err != nil {
					return err
				}
				in.Status = &st
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			task, err := svc.UpdateTask(cmd.Context(), args[0], in)
			if err != nil {
				return taskNotFound(err, args[0])
			}
			a.logger.Info("task updated", "id", task.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Task updated: %s\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "Task priority (1=Low, 2=Medium, 3=High)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Task status (not_started, in_progress, completed)")
	return cmd
}

func newTaskDeleteCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			if err := svc.DeleteTask(cmd.Context(), args[0]); err != nil {
				return taskNotFound(err, args[0])
			}
			a.logger.Info("task deleted", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Task deleted: %s\n", args[0])
			return nil
		},
	}
	return cmd
}

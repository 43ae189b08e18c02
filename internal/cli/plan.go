package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tasktracker/internal/app"
	"tasktracker/internal/domain"
)

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan operations",
	}
	cmd.AddCommand(newPlanListCmd(a))
	cmd.AddCommand(newPlanShowCmd(a))
	cmd.AddCommand(newPlanAddCmd(a))
	cmd.AddCommand(newPlanUpdateCmd(a))
	cmd.AddCommand(newPlanToggleCmd(a))
	cmd.AddCommand(newPlanDeleteCmd(a))
	return cmd
}

func newPlanListCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all plan steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			steps := svc.GetAllPlanSteps(cmd.Context())
			w := cmd.OutOrStdout()
			if len(steps) == 0 {
				fmt.Fprintln(w, "No plan steps found.")
				return nil
			}
			fmt.Fprintf(w, "%-6s %-10s %-36s %s\n", "Order", "Completed", "ID", "Description")
			fmt.Fprintln(w, strings.Repeat("-", 90))
			for _, s := range steps {
				box := "[ ]"
				if s.Completed {
					box = "[x]"
				}
				fmt.Fprintf(w, "%-6d %-10s %-36s %s\n", s.Order, box, s.ID, s.Description)
			}
			return nil
		},
	}
	return cmd
}

func newPlanShowCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <step-id>",
		Short: "Show plan step details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			step, err := svc.GetPlanStep(cmd.Context(), args[0])
			if err != nil {
				return stepNotFound(err, args[0])
			}
			completed := "No"
			if step.Completed {
				completed = "Yes"
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID: %s\n", step.ID)
			fmt.Fprintf(w, "Name: %s\n", step.Name)
			fmt.Fprintf(w, "Description: %s\n", step.Description)
			fmt.Fprintf(w, "Order: %d\n", step.Order)
			fmt.Fprintf(w, "Completed: %s\n", completed)
			if strings.TrimSpace(step.Details) != "" {
				fmt.Fprintln(w, "\nDetails:")
				fmt.Fprintln(w, a.md.render(step.Details, markdownWidth))
			}
			fmt.Fprintf(w, "\nCreated: %s\n", step.CreatedAt)
			fmt.Fprintf(w, "Updated: %s\n", step.UpdatedAt)
			return nil
		},
	}
	return cmd
}

func newPlanAddCmd(a *App) *cobra.Command {
	var (
		description string
		details     string
		order       int
		completed   bool
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new plan step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			in := domain.PlanStepInput{
				Name:        args[0],
				Description: description,
				Details:     details,
				Completed:   completed,
			}
			if cmd.Flags().Changed("order") {
				o := order
				in.Order = &o
			}
			step, err := svc.AddPlanStep(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.logger.Info("plan step added", "id", step.ID, "name", step.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Plan step added: %s\n", step.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Brief description")
	cmd.Flags().StringVarP(&details, "details", "D", "", "Detailed information")
	cmd.Flags().IntVarP(&order, "order", "o", 0, "Step order (position in plan)")
	cmd.Flags().BoolVarP(&completed, "completed", "c", false, "Mark the step completed")
	return cmd
}

func newPlanUpdateCmd(a *App) *cobra.Command {
	var (
		name        string
		description string
		details     string
		order       int
	)
	cmd := &cobra.Command{
		Use:   "update <step-id>",
		Short: "Update a plan step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// An empty string leaves that field unchanged; order zero is a
			// valid position, so only an explicit flag moves the step.
			in := app.UpdatePlanStepInput{}
			if name != "" {
				in.Name = &name
			}
			if description != "" {
				in.Description = &description
			}
			if details != "" {
				in.Details = &details
			}
			if cmd.Flags().Changed("order") {
				o := order
				in.Order = &o
			}
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			step, err := svc.UpdatePlanStep(cmd.Context(), args[0], in)
			if err != nil {
				return stepNotFound(err, args[0])
			}
			a.logger.Info("plan step updated", "id", step.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Plan step updated: %s\n", step.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Step name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Brief description")
	cmd.Flags().StringVarP(&details, "details", "D", "", "Detailed information")
	cmd.Flags().IntVarP(&order, "order", "o", 0, "Step order (position in plan)")
	return cmd
}

func newPlanToggleCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toggle <step-id>",
		Short: "Toggle completion status of a plan step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			step, err := svc.TogglePlanStep(cmd.Context(), args[0])
			if err != nil {
				return stepNotFound(err, args[0])
			}
			state := "not completed"
			if step.Completed {
				state = "completed"
			}
			a.logger.Info("plan step toggled", "id", step.ID, "completed", step.Completed)
			fmt.Fprintf(cmd.OutOrStdout(), "Plan step %s marked as %s\n", args[0], state)
			return nil
		},
	}
	return cmd
}

func newPlanDeleteCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <step-id>",
		Short: "Delete a plan step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			if err := svc.DeletePlanStep(cmd.Context(), args[0]); err != nil {
				return stepNotFound(err, args[0])
			}
			a.logger.Info("plan step deleted", "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Plan step deleted: %s\n", args[0])
			return nil
		},
	}
	return cmd
}

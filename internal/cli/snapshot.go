package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export all data to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			if err := svc.ExportData(cmd.Context(), args[0]); err != nil {
				a.logger.Error("export failed", "path", args[0], "err", err)
				return fmt.Errorf("export data: %w", err)
			}
			a.logger.Info("data exported", "path", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Data exported to %s\n", args[0])
			return nil
		},
	}
	return cmd
}

func newImportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import data from a JSON file",
		Long:  "Import a bundle produced by export. Present keys replace the matching store; absent keys keep current state.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			if err := svc.ImportData(cmd.Context(), args[0]); err != nil {
				a.logger.Error("import failed", "path", args[0], "err", err)
				return fmt.Errorf("import data: %w", err)
			}
			a.logger.Info("data imported", "path", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Data imported from %s\n", args[0])
			return nil
		},
	}
	return cmd
}

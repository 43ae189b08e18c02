package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tasktracker/internal/adapters/server/mcpapi"
)

func newServeCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tracker over MCP on stdio",
		Long:  "Expose tasks, plan steps, and notes as MCP tools, resources, and prompts on stdio for agent clients.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.SaveAll(context.Background()); err != nil {
					a.logger.Warn("final save failed", "err", err)
				}
			}()

			srv := mcpapi.New(svc, a.version, a.logger)
			a.logger.Info("mcp server listening", "transport", "stdio")
			err = srv.ServeStdio(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("serve mcp: %w", err)
			}
			a.logger.Info("mcp server stopped")
			return nil
		},
	}
	return cmd
}

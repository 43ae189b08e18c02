package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newNotesCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Notes operations",
	}
	cmd.AddCommand(newNotesShowCmd(a))
	cmd.AddCommand(newNotesSaveCmd(a))
	return cmd
}

func newNotesShowCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the notes text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			text := svc.GetNotes(cmd.Context())
			w := cmd.OutOrStdout()
			if text == "" {
				fmt.Fprintln(w, "No notes found.")
				return nil
			}
			fmt.Fprint(w, text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(w)
			}
			return nil
		},
	}
	return cmd
}

func newNotesSaveCmd(a *App) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Replace the notes text",
		Long:  "Replace the notes text with --text, or with everything read from stdin when the flag is omitted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd)
			if err != nil {
				return err
			}
			body := text
			if !cmd.Flags().Changed("text") {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read notes from stdin: %w", err)
				}
				body = string(data)
			}
			if err := svc.SaveNotes(cmd.Context(), body); err != nil {
				return err
			}
			a.logger.Info("notes saved", "bytes", len(body))
			fmt.Fprintln(cmd.OutOrStdout(), "Notes saved")
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Notes text (reads stdin when omitted)")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every saved invoice",
	Long: `Delete every saved invoice from the local store. The encryption key and the
config file are kept.

Examples:
  quickinvoice reset        # Asks for confirmation
  quickinvoice reset --yes  # No prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), out, "This will delete ALL invoices. Continue?") {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}

		if err := appInstance.InvoiceService.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset invoices: %w", err)
		}

		fmt.Fprintln(out, "All invoices have been deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

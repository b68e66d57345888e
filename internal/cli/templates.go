package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andy/quickinvoice/internal/domain"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the invoice templates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, t := range domain.Templates() {
			fmt.Fprintf(out, "%-14s %-14s %s\n", t, t.Label(), t.Description())
		}
	},
}

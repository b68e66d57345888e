package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/andy/quickinvoice/internal/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show revenue by client and by month",
	Long: `Show the dashboard figures, revenue per client and revenue per month of a year.

Examples:
  quickinvoice report
  quickinvoice report --year 2025`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		summary, err := appInstance.ReportService.Summary(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Invoices:  %d\n", summary.InvoiceCount)
		fmt.Fprintf(out, "Revenue:   %s\n", domain.FormatMoney(summary.TotalRevenue))
		fmt.Fprintf(out, "Clients:   %d\n", summary.ClientCount)

		if len(summary.ByClient) > 0 {
			fmt.Fprintln(out, "\nBy client")
			for _, c := range summary.ByClient {
				name := c.ClientName
				if name == "" {
					name = "(no client)"
				}
				fmt.Fprintf(out, "  %-28s %4d  %12s\n", truncate(name, 28), c.InvoiceCount, domain.FormatMoney(c.Revenue))
			}
		}

		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = time.Now().Year()
		}
		revenue, err := appInstance.ReportService.RevenueByMonth(ctx, year)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\nBy month (%d)\n", year)
		for m := time.January; m <= time.December; m++ {
			if v, ok := revenue[m]; ok {
				fmt.Fprintf(out, "  %-10s %12s\n", m.String(), domain.FormatMoney(v))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Int("year", 0, "Year to break down by month (default current year)")
}

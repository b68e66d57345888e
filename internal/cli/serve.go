package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/andy/quickinvoice/internal/preview"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve invoices for printing from a browser",
	Long: `Start a local read-only HTTP server:

  GET /invoices/:id      print view (HTML)
  GET /invoices/:id/pdf  PDF download
  GET /api/invoices      collection as JSON
  GET /api/invoices/:id  one invoice as JSON
  GET /api/summary       dashboard figures
  GET /healthz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := appInstance.Config.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		if appInstance.Config.Log.Env != "development" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		router := preview.NewRouter(appInstance.InvoiceService, appInstance.ReportService, appInstance.Log)
		fmt.Fprintf(cmd.OutOrStdout(), "Serving invoices on http://%s (Ctrl+C to stop)\n", addr)
		return preview.Serve(ctx, addr, router, appInstance.Log)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
}

package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/andy/quickinvoice/internal/controller"
	"github.com/andy/quickinvoice/internal/domain"
	"github.com/andy/quickinvoice/internal/render"
)

var invoicesCmd = &cobra.Command{
	Use:     "invoices",
	Aliases: []string{"invoice", "inv"},
	Short:   "Manage invoices",
	Long:    `Create, list, print and manage invoices.`,
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		invoices, err := appInstance.InvoiceService.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if invoices == nil {
				invoices = []*domain.Invoice{}
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(invoices)
		}

		if len(invoices) == 0 {
			fmt.Fprintln(out, "No invoices found")
			return nil
		}

		fmt.Fprintf(out, "%-14s %-18s %-20s %-11s %-11s %-13s %12s\n",
			"ID", "Number", "Client", "Date", "Due", "Template", "Total")
		fmt.Fprintln(out, "--------------------------------------------------------------------------------------------------------")

		for _, inv := range invoices {
			fmt.Fprintf(out, "%-14d %-18s %-20s %-11s %-11s %-13s %12s\n",
				inv.ID,
				truncate(inv.InvoiceNumber, 18),
				truncate(inv.ClientName, 20),
				inv.InvoiceDate,
				inv.DueDate,
				inv.EffectiveTemplate().Label(),
				domain.FormatMoney(inv.Total),
			)
		}

		fmt.Fprintf(out, "\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show invoice details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		inv, err := appInstance.InvoiceService.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Invoice %s\n\n", inv.InvoiceNumber)
		fmt.Fprintf(out, "  ID:        %d\n", inv.ID)
		fmt.Fprintf(out, "  From:      %s\n", inv.BusinessName)
		fmt.Fprintf(out, "  Client:    %s\n", inv.ClientName)
		fmt.Fprintf(out, "  Date:      %s\n", inv.InvoiceDate)
		if inv.DueDate != "" {
			fmt.Fprintf(out, "  Due:       %s\n", inv.DueDate)
		}
		fmt.Fprintf(out, "  Template:  %s\n", inv.EffectiveTemplate().Label())
		fmt.Fprintf(out, "  Created:   %s\n\n", inv.CreatedAt.Local().Format("Jan 02, 2006 15:04"))

		fmt.Fprintf(out, "  %-36s %8s %10s %12s\n", "Description", "Qty", "Rate", "Amount")
		for _, item := range inv.Items {
			fmt.Fprintf(out, "  %-36s %8s %10s %12s\n",
				truncate(item.Description, 36),
				domain.FormatNumber(item.Quantity),
				domain.FormatMoney(item.Rate),
				domain.FormatMoney(item.Amount()),
			)
		}

		fmt.Fprintf(out, "\n  Subtotal:  %12s\n", domain.FormatMoney(inv.Subtotal))
		if inv.HasTax() {
			fmt.Fprintf(out, "  Tax:       %12s  (%s%%)\n", domain.FormatMoney(inv.TaxAmount()), domain.FormatNumber(inv.TaxRate))
		}
		fmt.Fprintf(out, "  Total:     %12s\n", domain.FormatMoney(inv.Total))
		return nil
	},
}

var invoicesNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an invoice",
	Long: `Create an invoice from flags. Business details default to the profile in
the config file.

Examples:
  quickinvoice invoices new --client-name "Globex" --item "Design:2:50" --tax 10
  quickinvoice invoices new --client-name "Initech" --item "Hosting:12:9.50" --template modern`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := appInstance.NewController(cmd.Context())
		if err != nil {
			return err
		}
		ctrl.CreateNew()

		if err := applyDraftFlags(cmd, ctrl); err != nil {
			return err
		}

		inv, err := ctrl.Save(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to save invoice: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created invoice %s (ID: %d) total %s\n",
			inv.InvoiceNumber, inv.ID, domain.FormatMoney(inv.Total))
		return nil
	},
}

var invoicesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an invoice",
	Long: `Edit an invoice. Only the given flags change; --item replaces every line item.

Example:
  quickinvoice invoices edit 1718000000000 --due 2026-06-30 --tax 8.25`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		ctrl, err := appInstance.NewController(cmd.Context())
		if err != nil {
			return err
		}
		if err := ctrl.Edit(cmd.Context(), id); err != nil {
			return err
		}

		if err := applyDraftFlags(cmd, ctrl); err != nil {
			return err
		}

		inv, err := ctrl.Save(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated invoice %s total %s\n",
			inv.InvoiceNumber, domain.FormatMoney(inv.Total))
		return nil
	},
}

var invoicesDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy an invoice with a new number and today's date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		dup, err := appInstance.InvoiceService.Duplicate(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Duplicated as %s (ID: %d)\n", dup.InvoiceNumber, dup.ID)
		return nil
	},
}

var invoicesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		inv, err := appInstance.InvoiceService.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete invoice %s?", inv.InvoiceNumber)) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := appInstance.InvoiceService.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted invoice %s\n", inv.InvoiceNumber)
		return nil
	},
}

var invoicesPrintCmd = &cobra.Command{
	Use:   "print <id>",
	Short: "Render an invoice to stdout",
	Long: `Render an invoice in its template to stdout.

Examples:
  quickinvoice invoices print 1718000000000
  quickinvoice invoices print 1718000000000 --format html > invoice.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := layoutFor(cmd, args[0])
		if err != nil {
			return err
		}
		f, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(f)
		if err != nil {
			return err
		}
		data, err := render.Bytes(l, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var invoicesExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write an invoice to a PDF, HTML or text file",
	Long: `Write an invoice to a file. The format defaults to export.default_format and
the file goes to export.output_dir unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := layoutFor(cmd, args[0])
		if err != nil {
			return err
		}

		f := appInstance.Config.Export.DefaultFormat
		if cmd.Flags().Changed("format") {
			f, _ = cmd.Flags().GetString("format")
		}
		format, err := render.ParseFormat(f)
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("output")
		if path == "" {
			path = filepath.Join(appInstance.Config.Export.OutputDir, render.FileName(l.Number, format))
		}

		if err := render.Export(l, format, path); err != nil {
			return err
		}
		appInstance.Log.Info().Str("number", l.Number).Str("path", path).Msg("invoice exported")
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s -> %s\n", l.Number, path)
		return nil
	},
}

func layoutFor(cmd *cobra.Command, arg string) (render.Layout, error) {
	id, err := parseID(arg)
	if err != nil {
		return render.Layout{}, err
	}
	inv, err := appInstance.InvoiceService.Get(cmd.Context(), id)
	if err != nil {
		return render.Layout{}, err
	}
	return render.Render(inv), nil
}

// draftFlags maps flag names to the draft fields they set
var draftFlags = []struct {
	name  string
	field domain.Field
	usage string
}{
	{"business-name", domain.FieldBusinessName, "Your business name"},
	{"business-email", domain.FieldBusinessEmail, "Your business email"},
	{"business-phone", domain.FieldBusinessPhone, "Your business phone"},
	{"business-address", domain.FieldBusinessAddress, "Your business address"},
	{"client-name", domain.FieldClientName, "Client name"},
	{"client-email", domain.FieldClientEmail, "Client email"},
	{"client-address", domain.FieldClientAddress, "Client address"},
	{"number", domain.FieldInvoiceNumber, "Invoice number (default INV-<timestamp>)"},
	{"date", domain.FieldInvoiceDate, "Invoice date YYYY-MM-DD (default today)"},
	{"due", domain.FieldDueDate, "Due date YYYY-MM-DD"},
	{"tax", domain.FieldTaxRate, "Tax rate in percent"},
	{"notes", domain.FieldNotes, "Notes printed at the bottom"},
	{"template", domain.FieldTemplate, "classic, modern, minimal, professional or creative"},
}

func addDraftFlags(cmd *cobra.Command) {
	for _, f := range draftFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().StringArray("item", nil, `Line item as "description:quantity:rate" (repeatable)`)
}

// applyDraftFlags writes every flag the user set into the controller's draft
func applyDraftFlags(cmd *cobra.Command, ctrl *controller.Controller) error {
	for _, f := range draftFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v, _ := cmd.Flags().GetString(f.name)
		if err := ctrl.SetField(f.field, v); err != nil {
			return fmt.Errorf("--%s: %w", f.name, err)
		}
	}

	if !cmd.Flags().Changed("item") {
		return nil
	}
	raw, _ := cmd.Flags().GetStringArray("item")
	items := make([]domain.LineItem, 0, len(raw))
	for _, s := range raw {
		item, err := parseItem(s)
		if err != nil {
			return err
		}
		items = append(items, item)
	}
	ctrl.Draft().Items = items
	return nil
}

func init() {
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesNewCmd)
	invoicesCmd.AddCommand(invoicesEditCmd)
	invoicesCmd.AddCommand(invoicesDuplicateCmd)
	invoicesCmd.AddCommand(invoicesDeleteCmd)
	invoicesCmd.AddCommand(invoicesPrintCmd)
	invoicesCmd.AddCommand(invoicesExportCmd)

	invoicesListCmd.Flags().Bool("json", false, "Print the stored collection as JSON")

	addDraftFlags(invoicesNewCmd)
	addDraftFlags(invoicesEditCmd)

	invoicesDeleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	invoicesPrintCmd.Flags().StringP("format", "f", string(render.FormatText), "Output format: txt, html or pdf")

	invoicesExportCmd.Flags().StringP("format", "f", "", "Output format: pdf, html or txt (default from config)")
	invoicesExportCmd.Flags().StringP("output", "o", "", "Output file path")
}

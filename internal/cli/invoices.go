package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/medledger/medledger-go/billing"
)

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesGetCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesQuoteCmd)
	invoicesCmd.AddCommand(invoicesStatusCmd)
	invoicesCmd.AddCommand(invoicesStatsCmd)

	invoicesListCmd.Flags().String("status", "", "Filter by status (draft, finalized, paid, cancelled)")
	invoicesListCmd.Flags().String("patient", "", "Filter by patient id")
	invoicesListCmd.Flags().String("doctor", "", "Filter by doctor id")

	invoicesCreateCmd.Flags().StringP("file", "f", "", "Invoice draft JSON file (- for stdin)")
	_ = invoicesCreateCmd.MarkFlagRequired("file")

	invoicesQuoteCmd.Flags().StringP("file", "f", "", "Invoice draft JSON file (- for stdin)")
	_ = invoicesQuoteCmd.MarkFlagRequired("file")
}

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Compose and manage invoices",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		status, _ := cmd.Flags().GetString("status")
		patientID, _ := cmd.Flags().GetString("patient")
		doctorID, _ := cmd.Flags().GetString("doctor")
		invoices, err := a.client.Invoices.List(cmd.Context(), billing.InvoiceListOptions{
			Status:    billing.InvoiceStatus(status),
			PatientID: patientID,
			DoctorID:  doctorID,
		})
		if err != nil {
			return err
		}
		renderInvoices(invoices)
		return nil
	},
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one invoice with its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		invoice, err := a.client.Invoices.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  patient=%s\n\n", invoice.InvoiceNumber, invoice.Status, orDash(invoice.PatientName))
		rows := make([][]string, 0, len(invoice.Items))
		for _, item := range invoice.Items {
			rows = append(rows, []string{
				item.Description,
				itoa(item.Quantity),
				item.UnitPrice.String(),
				item.TaxRate.String() + "%",
				item.LineTotal.String(),
			})
		}
		table([]string{"DESCRIPTION", "QTY", "PRICE", "TAX", "LINE TOTAL"}, rows)
		fmt.Println()
		printTotals(invoice.Subtotal, invoice.TaxAmount, invoice.DiscountAmount, invoice.TotalAmount)
		if !invoice.TotalsConsistent() {
			fmt.Println("warning: stored totals do not match a recomputation over the line items")
		}
		return nil
	},
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit an invoice draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := readDraft(cmd)
		if err != nil {
			return err
		}
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		invoice, err := a.client.Invoices.Create(cmd.Context(), draft)
		if err != nil {
			return err
		}
		a.recordAudit(cmd.Context(), "invoice.create", "invoice", invoice.ID, nil, map[string]any{
			"invoice_number": invoice.InvoiceNumber,
			"total_amount":   invoice.TotalAmount.String(),
		})
		fmt.Printf("Created invoice %s (%s) total %s\n", invoice.InvoiceNumber, invoice.Status, invoice.TotalAmount)
		return nil
	},
}

var invoicesQuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Compute totals for a draft without submitting it",
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := readDraft(cmd)
		if err != nil {
			return err
		}
		totals := draft.Quote()
		printTotals(totals.Subtotal, totals.Tax, totals.Discount, totals.Total)
		return nil
	},
}

var invoicesStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Move an invoice to a new status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		current, err := a.client.Invoices.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		target := billing.InvoiceStatus(args[1])
		updated, err := a.client.Invoices.UpdateStatus(cmd.Context(), args[0], current.Status, target)
		if err != nil {
			return err
		}
		a.recordAudit(cmd.Context(), "invoice.status", "invoice", updated.ID,
			map[string]any{"status": current.Status},
			map[string]any{"status": updated.Status})
		fmt.Printf("Invoice %s is now %s\n", updated.InvoiceNumber, updated.Status)
		return nil
	},
}

var invoicesStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the billing dashboard figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		stats, err := a.client.Invoices.Stats(cmd.Context())
		if err != nil {
			return err
		}
		table([]string{"INVOICES", "PATIENTS", "PACKAGES", "REVENUE", "TODAY", "PENDING"}, [][]string{{
			itoa(stats.TotalInvoices),
			itoa(stats.TotalPatients),
			itoa(stats.TotalPackages),
			stats.TotalRevenue.String(),
			stats.TodayRevenue.String(),
			itoa(stats.PendingInvoices),
		}})
		return nil
	},
}

func readDraft(cmd *cobra.Command) (billing.CreateInvoiceRequest, error) {
	var draft billing.CreateInvoiceRequest
	path, _ := cmd.Flags().GetString("file")

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return draft, fmt.Errorf("read draft: %w", err)
	}
	if err := json.Unmarshal(data, &draft); err != nil {
		return draft, fmt.Errorf("parse draft: %w", err)
	}
	return draft, nil
}

func printTotals(subtotal, tax, discount, total fmt.Stringer) {
	table([]string{"SUBTOTAL", "TAX", "DISCOUNT", "TOTAL"}, [][]string{{
		subtotal.String(), tax.String(), discount.String(), total.String(),
	}})
}

func renderInvoices(invoices []billing.Invoice) {
	rows := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, []string{
			inv.InvoiceNumber,
			string(inv.Status),
			orDash(inv.PatientName),
			inv.TotalAmount.String(),
			formatDate(inv.CreatedAt),
			inv.ID,
		})
	}
	table([]string{"NUMBER", "STATUS", "PATIENT", "TOTAL", "DATE", "ID"}, rows)
}

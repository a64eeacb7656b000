package cli

import (
	"github.com/spf13/cobra"

	"github.com/medledger/medledger-go/billing"
)

func init() {
	rootCmd.AddCommand(doctorsCmd)
	doctorsCmd.AddCommand(doctorsListCmd)
	doctorsCmd.AddCommand(doctorsStatsCmd)
	doctorsCmd.AddCommand(doctorsInvoicesCmd)
}

var doctorsCmd = &cobra.Command{
	Use:   "doctors",
	Short: "Browse doctors and their billing activity",
}

var doctorsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List doctors",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		doctors, err := a.client.Doctors.List(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(doctors))
		for _, d := range doctors {
			rows = append(rows, []string{
				d.FullName,
				orDash(d.Specialty),
				orDash(d.Department),
				d.Email,
				d.ID,
			})
		}
		table([]string{"NAME", "SPECIALTY", "DEPARTMENT", "EMAIL", "ID"}, rows)
		return nil
	},
}

var doctorsStatsCmd = &cobra.Command{
	Use:   "stats [ID]",
	Short: "Show billing stats for one doctor, or for all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		if len(args) == 1 {
			details, err := a.client.Doctors.Details(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderDoctorStats([][]string{statsRow(details.Doctor.FullName, details.Stats)})
			return nil
		}
		doctors, err := a.client.Doctors.ListWithStats(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(doctors))
		for _, d := range doctors {
			rows = append(rows, statsRow(d.FullName, d.DoctorStats))
		}
		renderDoctorStats(rows)
		return nil
	},
}

var doctorsInvoicesCmd = &cobra.Command{
	Use:   "invoices ID",
	Short: "List invoices attributed to a doctor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		invoices, err := a.client.Doctors.Invoices(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderInvoices(invoices)
		return nil
	},
}

func statsRow(name string, s billing.DoctorStats) []string {
	return []string{
		name,
		itoa(s.TotalPatients),
		itoa(s.ActivePatients),
		itoa(s.TotalInvoices),
		s.TotalRevenue.String(),
		s.AverageInvoiceValue.String(),
	}
}

func renderDoctorStats(rows [][]string) {
	table([]string{"DOCTOR", "PATIENTS", "ACTIVE", "INVOICES", "REVENUE", "AVG INVOICE"}, rows)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medledger/medledger-go/billing"
	"github.com/medledger/medledger-go/codes"
)

func init() {
	rootCmd.AddCommand(patientsCmd)
	patientsCmd.AddCommand(patientsListCmd)
	patientsCmd.AddCommand(patientsGetCmd)
	patientsCmd.AddCommand(patientsCreateCmd)
	patientsCmd.AddCommand(patientsRecentCmd)

	patientsListCmd.Flags().StringP("search", "s", "", "Search by name or code")
	patientsListCmd.Flags().String("doctor", "", "Filter by assigned doctor id")

	patientsCreateCmd.Flags().String("name", "", "Full name (required)")
	patientsCreateCmd.Flags().String("contact", "", "Contact number")
	patientsCreateCmd.Flags().String("email", "", "Email address")
	patientsCreateCmd.Flags().String("address", "", "Postal address")
	patientsCreateCmd.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	patientsCreateCmd.Flags().String("gender", "", "male, female or other")
	patientsCreateCmd.Flags().String("doctor", "", "Assigned doctor id")
	_ = patientsCreateCmd.MarkFlagRequired("name")

	patientsRecentCmd.Flags().IntP("limit", "n", 5, "Number of patients to show")
}

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Manage patient records",
}

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		doctorID, _ := cmd.Flags().GetString("doctor")
		patients, err := a.client.Patients.List(cmd.Context(), billing.PatientListOptions{
			Search:   search,
			DoctorID: doctorID,
		})
		if err != nil {
			return err
		}
		renderPatients(patients)
		return nil
	},
}

var patientsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		patient, err := a.client.Patients.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderPatients([]billing.Patient{*patient})
		if len(patient.Invoices) > 0 {
			fmt.Println()
			renderInvoices(patient.Invoices)
		}
		return nil
	},
}

var patientsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		contact, _ := cmd.Flags().GetString("contact")
		email, _ := cmd.Flags().GetString("email")
		address, _ := cmd.Flags().GetString("address")
		dob, _ := cmd.Flags().GetString("dob")
		gender, _ := cmd.Flags().GetString("gender")
		doctorID, _ := cmd.Flags().GetString("doctor")

		patient, err := a.client.Patients.Create(cmd.Context(), billing.CreatePatientRequest{
			PatientCode:   codes.NewGenerator().PatientCode(),
			FullName:      name,
			ContactNumber: contact,
			Email:         email,
			Address:       address,
			DateOfBirth:   dob,
			Gender:        gender,
			DoctorID:      doctorID,
		})
		if err != nil {
			return err
		}
		a.recordAudit(cmd.Context(), "patient.create", "patient", patient.ID, nil, map[string]any{
			"full_name":    patient.FullName,
			"patient_code": patient.PatientCode,
		})
		fmt.Printf("Created patient %s (%s)\n", patient.PatientCode, patient.ID)
		return nil
	},
}

var patientsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recently registered patients",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		patients, err := a.client.Patients.Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		renderPatients(patients)
		return nil
	},
}

func renderPatients(patients []billing.Patient) {
	rows := make([][]string, 0, len(patients))
	for _, p := range patients {
		rows = append(rows, []string{
			p.PatientCode,
			p.FullName,
			orDash(p.ContactNumber),
			orDash(p.Gender),
			formatDate(p.CreatedAt),
			p.ID,
		})
	}
	table([]string{"CODE", "NAME", "CONTACT", "GENDER", "REGISTERED", "ID"}, rows)
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/medledger/medledger-go/billing"
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)

	auditListCmd.Flags().String("entity-type", "", "Filter by entity type")
	auditListCmd.Flags().String("entity-id", "", "Filter by entity id")
	auditListCmd.Flags().String("action", "", "Filter by action")
	auditListCmd.Flags().Int("page", 1, "Page number")
	auditListCmd.Flags().IntP("limit", "n", 20, "Entries per page")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Read the audit trail",
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		entityType, _ := cmd.Flags().GetString("entity-type")
		entityID, _ := cmd.Flags().GetString("entity-id")
		action, _ := cmd.Flags().GetString("action")
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := a.client.Audit.List(cmd.Context(), billing.AuditListOptions{
			EntityType: entityType,
			EntityID:   entityID,
			Action:     action,
			Page:       page,
			Limit:      limit,
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(entries.Data))
		for _, e := range entries.Data {
			rows = append(rows, []string{
				e.CreatedAt.Format("2006-01-02 15:04"),
				e.Action,
				e.EntityType,
				e.EntityID,
				orDash(e.UserEmail),
			})
		}
		table([]string{"WHEN", "ACTION", "ENTITY", "ENTITY ID", "ACTOR"}, rows)
		return nil
	},
}

package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(discountsCmd)
	discountsCmd.AddCommand(discountsListCmd)
}

var discountsCmd = &cobra.Command{
	Use:   "discounts",
	Short: "Browse approved discount reasons",
}

var discountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List discount reasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		reasons, err := a.client.Discounts.List(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(reasons))
		for _, r := range reasons {
			approval := "no"
			if r.RequiresApproval {
				approval = "yes"
			}
			rows = append(rows, []string{
				r.Reason,
				r.MaxPercentage.String() + "%",
				approval,
				r.ID,
			})
		}
		table([]string{"REASON", "MAX", "APPROVAL", "ID"}, rows)
		return nil
	},
}

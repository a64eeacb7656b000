package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medledger/medledger-go/billing"
)

func init() {
	rootCmd.AddCommand(billablesCmd)
	billablesCmd.AddCommand(billablesListCmd)
	billablesCmd.AddCommand(billablesCategoriesCmd)
	billablesListCmd.Flags().StringP("category", "c", "", "Filter by category")
	billablesListCmd.Flags().StringP("search", "s", "", "Search by name or code")

	rootCmd.AddCommand(packagesCmd)
	packagesCmd.AddCommand(packagesListCmd)
	packagesCmd.AddCommand(packagesGetCmd)

	rootCmd.AddCommand(treatmentsCmd)
	treatmentsCmd.AddCommand(treatmentsListCmd)
}

var billablesCmd = &cobra.Command{
	Use:   "billables",
	Short: "Browse the billable item catalog",
}

var billablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List billable items",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")
		items, err := a.client.Billables.List(cmd.Context(), billing.BillableListOptions{
			Category: category,
			Search:   search,
		})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{
				item.ItemCode,
				item.Name,
				orDash(item.Category),
				item.UnitPrice.String(),
				item.TaxRate.String() + "%",
				item.ID,
			})
		}
		table([]string{"CODE", "NAME", "CATEGORY", "PRICE", "TAX", "ID"}, rows)
		return nil
	},
}

var billablesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		categories, err := a.client.Billables.Categories(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Println(c)
		}
		return nil
	},
}

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Browse bundled packages",
}

var packagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		packages, err := a.client.Packages.List(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(packages))
		for _, pkg := range packages {
			price := pkg.FixedPrice.String()
			if pkg.PricingType == billing.PricingItemized {
				price = "itemized"
			}
			rows = append(rows, []string{pkg.PackageCode, pkg.Name, string(pkg.PricingType), price, pkg.ID})
		}
		table([]string{"CODE", "NAME", "PRICING", "PRICE", "ID"}, rows)
		return nil
	},
}

var packagesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one package with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		pkg, err := a.client.Packages.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s (%s)\n", pkg.PackageCode, pkg.Name, pkg.PricingType)
		rows := make([][]string, 0, len(pkg.Items))
		for _, item := range pkg.Items {
			rows = append(rows, []string{
				orDash(item.BillableName),
				itoa(item.Quantity),
				item.UnitPrice.String(),
				item.TaxRate.String() + "%",
			})
		}
		table([]string{"ITEM", "QTY", "PRICE", "TAX"}, rows)
		return nil
	},
}

var treatmentsCmd = &cobra.Command{
	Use:   "treatments",
	Short: "Browse treatment definitions",
}

var treatmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List treatments",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthenticatedApp(cmd.Context())
		if err != nil {
			return err
		}
		treatments, err := a.client.Treatments.List(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(treatments))
		for _, tr := range treatments {
			rows = append(rows, []string{tr.TreatmentCode, tr.Name, itoa(len(tr.Items)), tr.ID})
		}
		table([]string{"CODE", "NAME", "ITEMS", "ID"}, rows)
		return nil
	},
}

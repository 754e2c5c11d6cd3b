package cmd

import (
	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "View stock levels and monthly records",
	Long: `View inventory: current stock, monthly aggregates, and the trend series.

Requires the manage_production capability (admin and super_admin).

Examples:
  opsdesk inventory list
  opsdesk inventory monthly --month 2026-08
  opsdesk inventory trend`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock items",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		page, err := a.Client.ListInventory(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "NAME", "CATEGORY", "QTY", "UNIT", "MIN"}}
		for _, item := range page.Items {
			t.Data = append(t.Data, []string{
				item.ID, item.Name, item.Category,
				formatMoney(item.Quantity), item.Unit, formatMoney(item.MinLevel),
			})
		}
		return renderList(a, page.Items, t)
	},
}

var inventoryMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show monthly aggregated records",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		month, _ := cmd.Flags().GetString("month")
		page, err := a.Client.ListMonthlyRecords(cmd.Context(), month)
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"MONTH", "ITEM", "OPENING", "RECEIVED", "ISSUED", "CLOSING"}}
		for _, r := range page.Items {
			t.Data = append(t.Data, []string{
				r.Month, r.ItemName, formatMoney(r.Opening),
				formatMoney(r.Received), formatMoney(r.Issued), formatMoney(r.Closing),
			})
		}
		return renderList(a, page.Items, t)
	},
}

var inventoryTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the stock trend series",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		page, err := a.Client.InventoryTrend(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"MONTH", "VALUE"}}
		for _, p := range page.Items {
			t.Data = append(t.Data, []string{p.Month, formatMoney(p.Value)})
		}
		return renderList(a, page.Items, t)
	},
}

func init() {
	addListFlags(inventoryListCmd)
	addListFlags(inventoryMonthlyCmd)
	inventoryMonthlyCmd.Flags().String("month", "", "month to aggregate (YYYY-MM)")

	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventoryMonthlyCmd)
	inventoryCmd.AddCommand(inventoryTrendCmd)

	rootCmd.AddCommand(inventoryCmd)
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/tui"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Record and manage sales",
	Long: `Record and manage sales.

Requires the manage_sales capability (sales, admin, super_admin).

Examples:
  opsdesk sales list
  opsdesk sales record --date 2026-08-29 --product Bread --quantity 40 --unit-price 2.50
  opsdesk sales update <id> --quantity 45
  opsdesk sales delete <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func salesTable(items []api.Sale) ux.Table {
	t := ux.Table{Head: []string{"ID", "DATE", "PRODUCT", "QTY", "UNIT", "TOTAL"}}
	for _, s := range items {
		t.Data = append(t.Data, []string{
			s.ID, s.Date, s.Product, strconv.Itoa(s.Quantity),
			formatMoney(s.UnitPrice), formatMoney(s.Total),
		})
	}
	return t
}

var salesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sales",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageSales); err != nil {
			return err
		}

		page, err := a.Client.ListSales(cmd.Context())
		if err != nil {
			return err
		}
		return renderList(a, page.Items, salesTable(page.Items))
	},
}

func saleInputFromFlags(cmd *cobra.Command) api.SaleInput {
	var in api.SaleInput
	in.Date, _ = cmd.Flags().GetString("date")
	in.Product, _ = cmd.Flags().GetString("product")
	in.Quantity, _ = cmd.Flags().GetInt("quantity")
	in.UnitPrice, _ = cmd.Flags().GetFloat64("unit-price")
	in.CustomerID, _ = cmd.Flags().GetString("customer")
	return in
}

var salesRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageSales); err != nil {
			return err
		}

		in := saleInputFromFlags(cmd)
		if in.Date == "" || in.Product == "" || in.Quantity <= 0 {
			return fmt.Errorf("--date, --product, and a positive --quantity are required")
		}

		sale, err := a.Client.RecordSale(cmd.Context(), in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Recorded sale %s (%s x%d)", sale.ID, sale.Product, sale.Quantity)

		refetchAfterMutation("Sales", func() error {
			_, err := a.Client.ListSales(cmd.Context())
			return err
		})
		return nil
	},
}

var salesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a sale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageSales); err != nil {
			return err
		}

		sale, err := a.Client.UpdateSale(cmd.Context(), args[0], saleInputFromFlags(cmd))
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Updated sale %s", sale.ID)

		refetchAfterMutation("Sales", func() error {
			_, err := a.Client.ListSales(cmd.Context())
			return err
		})
		return nil
	},
}

var salesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a sale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageSales); err != nil {
			return err
		}

		ok, err := confirmOrAbort("sale " + args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		if err := a.Client.DeleteSale(cmd.Context(), args[0]); err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Deleted sale %s", args[0])

		refetchAfterMutation("Sales", func() error {
			_, err := a.Client.ListSales(cmd.Context())
			return err
		})
		return nil
	},
}

func init() {
	addListFlags(salesListCmd)

	for _, c := range []*cobra.Command{salesRecordCmd, salesUpdateCmd} {
		c.Flags().String("date", "", "sale date (YYYY-MM-DD)")
		c.Flags().String("product", "", "product name")
		c.Flags().Int("quantity", 0, "units sold")
		c.Flags().Float64("unit-price", 0, "price per unit")
		c.Flags().String("customer", "", "customer ID")
	}

	salesCmd.AddCommand(salesListCmd)
	salesCmd.AddCommand(salesRecordCmd)
	salesCmd.AddCommand(salesUpdateCmd)
	salesCmd.AddCommand(salesDeleteCmd)

	rootCmd.AddCommand(salesCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/tui"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var productionCmd = &cobra.Command{
	Use:   "production",
	Short: "Manage production logs and raw materials",
	Long: `Manage production: product types, production logs, and raw materials.

Requires the manage_production capability (admin and super_admin).

Examples:
  opsdesk production types
  opsdesk production logs
  opsdesk production log --type <type-id> --date 2026-08-29 --quantity 120
  opsdesk production materials
  opsdesk production material --name Flour --quantity 50 --unit kg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var productionTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List product types",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		page, err := a.Client.ListProductionTypes(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "NAME", "UNIT"}}
		for _, p := range page.Items {
			t.Data = append(t.Data, []string{p.ID, p.Name, p.Unit})
		}
		return renderList(a, page.Items, t)
	},
}

var productionLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List production log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		page, err := a.Client.ListProductionLogs(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "DATE", "TYPE", "QTY", "WASTE"}}
		for _, l := range page.Items {
			t.Data = append(t.Data, []string{
				l.ID, l.Date, l.TypeName, formatMoney(l.Quantity), formatMoney(l.Waste),
			})
		}
		return renderList(a, page.Items, t)
	},
}

var productionLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a production run",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		var in api.ProductionLogInput
		in.TypeID, _ = cmd.Flags().GetString("type")
		in.Date, _ = cmd.Flags().GetString("date")
		in.Quantity, _ = cmd.Flags().GetFloat64("quantity")
		in.Waste, _ = cmd.Flags().GetFloat64("waste")
		in.Notes, _ = cmd.Flags().GetString("notes")

		if in.TypeID == "" || in.Date == "" || in.Quantity <= 0 {
			return fmt.Errorf("--type, --date, and a positive --quantity are required")
		}

		entry, err := a.Client.CreateProductionLog(cmd.Context(), in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Logged production run %s", entry.ID)

		refetchAfterMutation("Production logs", func() error {
			_, err := a.Client.ListProductionLogs(cmd.Context())
			return err
		})
		return nil
	},
}

var productionMaterialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List raw materials",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		page, err := a.Client.ListRawMaterials(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "NAME", "QTY", "UNIT", "COST"}}
		for _, m := range page.Items {
			t.Data = append(t.Data, []string{
				m.ID, m.Name, formatMoney(m.Quantity), m.Unit, formatMoney(m.Cost),
			})
		}
		return renderList(a, page.Items, t)
	},
}

var productionMaterialCmd = &cobra.Command{
	Use:   "material",
	Short: "Create or restock a raw material",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageProduction); err != nil {
			return err
		}

		var in api.RawMaterialInput
		in.Name, _ = cmd.Flags().GetString("name")
		in.Unit, _ = cmd.Flags().GetString("unit")
		in.Quantity, _ = cmd.Flags().GetFloat64("quantity")
		in.Cost, _ = cmd.Flags().GetFloat64("cost")

		if in.Name == "" || in.Quantity <= 0 {
			return fmt.Errorf("--name and a positive --quantity are required")
		}

		mat, err := a.Client.CreateRawMaterial(cmd.Context(), in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Saved raw material %s (%s)", mat.Name, mat.ID)

		refetchAfterMutation("Raw materials", func() error {
			_, err := a.Client.ListRawMaterials(cmd.Context())
			return err
		})
		return nil
	},
}

func init() {
	addListFlags(productionTypesCmd)
	addListFlags(productionLogsCmd)
	addListFlags(productionMaterialsCmd)

	productionLogCmd.Flags().String("type", "", "product type ID")
	productionLogCmd.Flags().String("date", "", "production date (YYYY-MM-DD)")
	productionLogCmd.Flags().Float64("quantity", 0, "quantity produced")
	productionLogCmd.Flags().Float64("waste", 0, "waste quantity")
	productionLogCmd.Flags().String("notes", "", "free-form notes")

	productionMaterialCmd.Flags().String("name", "", "material name")
	productionMaterialCmd.Flags().String("unit", "", "unit of measure")
	productionMaterialCmd.Flags().Float64("quantity", 0, "quantity in stock")
	productionMaterialCmd.Flags().Float64("cost", 0, "unit cost")

	productionCmd.AddCommand(productionTypesCmd)
	productionCmd.AddCommand(productionLogsCmd)
	productionCmd.AddCommand(productionLogCmd)
	productionCmd.AddCommand(productionMaterialsCmd)
	productionCmd.AddCommand(productionMaterialCmd)

	rootCmd.AddCommand(productionCmd)
}

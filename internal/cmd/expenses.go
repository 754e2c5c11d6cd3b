package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/tui"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var expensesCmd = &cobra.Command{
	Use:   "expenses",
	Short: "Submit and review expenses",
	Long: `Submit, approve, and review expenses.

Requires the manage_expenses capability (finance_manager, admin, super_admin).

Examples:
  opsdesk expenses list
  opsdesk expenses add --date 2026-08-29 --category transport --amount 35.00
  opsdesk expenses approve <id>
  opsdesk expenses reject <id> --reason "missing receipt"
  opsdesk expenses summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var expensesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageExpenses); err != nil {
			return err
		}

		page, err := a.Client.ListExpenses(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "DATE", "CATEGORY", "AMOUNT", "STATUS", "BY"}}
		for _, e := range page.Items {
			t.Data = append(t.Data, []string{
				e.ID, e.Date, e.Category, formatMoney(e.Amount), e.Status, e.SubmittedBy,
			})
		}
		return renderList(a, page.Items, t)
	},
}

var expensesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit an expense",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageExpenses); err != nil {
			return err
		}

		var in api.ExpenseInput
		in.Date, _ = cmd.Flags().GetString("date")
		in.Category, _ = cmd.Flags().GetString("category")
		in.Description, _ = cmd.Flags().GetString("description")
		in.Amount, _ = cmd.Flags().GetFloat64("amount")

		if in.Date == "" || in.Category == "" || in.Amount <= 0 {
			return fmt.Errorf("--date, --category, and a positive --amount are required")
		}

		exp, err := a.Client.CreateExpense(cmd.Context(), in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Submitted expense %s (%s)", exp.ID, formatMoney(exp.Amount))

		refetchAfterMutation("Expenses", func() error {
			_, err := a.Client.ListExpenses(cmd.Context())
			return err
		})
		return nil
	},
}

var expensesApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageExpenses); err != nil {
			return err
		}

		exp, err := a.Client.ApproveExpense(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Approved expense %s", exp.ID)

		refetchAfterMutation("Expenses", func() error {
			_, err := a.Client.ListExpenses(cmd.Context())
			return err
		})
		return nil
	},
}

var expensesRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending expense",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageExpenses); err != nil {
			return err
		}

		reason, _ := cmd.Flags().GetString("reason")
		if reason == "" {
			return fmt.Errorf("--reason is required")
		}

		exp, err := a.Client.RejectExpense(cmd.Context(), args[0], reason)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Rejected expense %s", exp.ID)

		refetchAfterMutation("Expenses", func() error {
			_, err := a.Client.ListExpenses(cmd.Context())
			return err
		})
		return nil
	},
}

var expensesSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the expense aggregate",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageExpenses); err != nil {
			return err
		}

		summary, err := a.Client.ExpensesSummary(cmd.Context())
		if err != nil {
			return err
		}
		return renderObject(a, summary)
	},
}

func init() {
	addListFlags(expensesListCmd)

	expensesAddCmd.Flags().String("date", "", "expense date (YYYY-MM-DD)")
	expensesAddCmd.Flags().String("category", "", "expense category")
	expensesAddCmd.Flags().String("description", "", "free-form description")
	expensesAddCmd.Flags().Float64("amount", 0, "amount")
	expensesRejectCmd.Flags().String("reason", "", "rejection reason")

	expensesCmd.AddCommand(expensesListCmd)
	expensesCmd.AddCommand(expensesAddCmd)
	expensesCmd.AddCommand(expensesApproveCmd)
	expensesCmd.AddCommand(expensesRejectCmd)
	expensesCmd.AddCommand(expensesSummaryCmd)

	rootCmd.AddCommand(expensesCmd)
}

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

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Manage payroll runs and payslips",
	Long: `Manage payroll runs and payslips.

Requires the manage_payroll capability (finance_manager, admin, super_admin).

Examples:
  opsdesk payroll list
  opsdesk payroll list --period 2026-08
  opsdesk payroll run --period 2026-08
  opsdesk payroll payslips <run-id>
  opsdesk payroll payslip <payslip-id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var payrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payroll runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManagePayroll); err != nil {
			return err
		}

		period, _ := cmd.Flags().GetString("period")
		page, err := a.Client.ListPayroll(cmd.Context(), period)
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "PERIOD", "STAFF", "GROSS", "NET", "STATUS"}}
		for _, r := range page.Items {
			t.Data = append(t.Data, []string{
				r.ID, r.Period, strconv.Itoa(r.StaffCount),
				formatMoney(r.GrossTotal), formatMoney(r.NetTotal), r.Status,
			})
		}
		return renderList(a, page.Items, t)
	},
}

var payrollRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a payroll run for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManagePayroll); err != nil {
			return err
		}

		period, _ := cmd.Flags().GetString("period")
		if period == "" {
			return fmt.Errorf("--period is required (YYYY-MM)")
		}

		run, err := a.Client.CreatePayrollRun(cmd.Context(), api.PayrollRunInput{Period: period})
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Payroll run %s started for %s", run.ID, run.Period)

		refetchAfterMutation("Payroll", func() error {
			_, err := a.Client.ListPayroll(cmd.Context(), "")
			return err
		})
		return nil
	},
}

var payrollPayslipsCmd = &cobra.Command{
	Use:   "payslips <run-id>",
	Short: "List the payslips of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManagePayroll); err != nil {
			return err
		}

		page, err := a.Client.ListPayslips(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "STAFF", "GROSS", "DEDUCTIONS", "NET"}}
		for _, p := range page.Items {
			t.Data = append(t.Data, []string{
				p.ID, p.StaffName, formatMoney(p.Gross),
				formatMoney(p.Deductions), formatMoney(p.Net),
			})
		}
		return renderList(a, page.Items, t)
	},
}

var payrollPayslipCmd = &cobra.Command{
	Use:   "payslip <id>",
	Short: "Show one payslip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManagePayroll); err != nil {
			return err
		}

		slip, err := a.Client.GetPayslip(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderObject(a, slip)
	},
}

func init() {
	addListFlags(payrollListCmd)
	addListFlags(payrollPayslipsCmd)
	payrollListCmd.Flags().String("period", "", "filter to one period (YYYY-MM)")
	payrollRunCmd.Flags().String("period", "", "period to run payroll for (YYYY-MM)")

	payrollCmd.AddCommand(payrollListCmd)
	payrollCmd.AddCommand(payrollRunCmd)
	payrollCmd.AddCommand(payrollPayslipsCmd)
	payrollCmd.AddCommand(payrollPayslipCmd)

	rootCmd.AddCommand(payrollCmd)
}

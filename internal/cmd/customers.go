package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/tui"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage customers",
	Long: `Manage customers.

Requires the manage_customers capability (sales, marketer, admin, super_admin).

Examples:
  opsdesk customers list
  opsdesk customers create --name "Acme Ltd" --email orders@acme.example
  opsdesk customers update <id> --phone "+1 555 0100"
  opsdesk customers delete <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func customerInputFromFlags(cmd *cobra.Command) api.CustomerInput {
	var in api.CustomerInput
	in.Name, _ = cmd.Flags().GetString("name")
	in.Email, _ = cmd.Flags().GetString("email")
	in.Phone, _ = cmd.Flags().GetString("phone")
	in.Address, _ = cmd.Flags().GetString("address")
	return in
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageCustomers); err != nil {
			return err
		}

		page, err := a.Client.ListCustomers(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "NAME", "EMAIL", "PHONE"}}
		for _, c := range page.Items {
			t.Data = append(t.Data, []string{c.ID, c.Name, c.Email, c.Phone})
		}
		return renderList(a, page.Items, t)
	},
}

var customersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageCustomers); err != nil {
			return err
		}

		in := customerInputFromFlags(cmd)
		if in.Name == "" {
			return fmt.Errorf("--name is required")
		}

		customer, err := a.Client.CreateCustomer(cmd.Context(), in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Created customer %s (%s)", customer.Name, customer.ID)

		refetchAfterMutation("Customers", func() error {
			_, err := a.Client.ListCustomers(cmd.Context())
			return err
		})
		return nil
	},
}

var customersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageCustomers); err != nil {
			return err
		}

		customer, err := a.Client.UpdateCustomer(cmd.Context(), args[0], customerInputFromFlags(cmd))
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Updated customer %s", customer.ID)

		refetchAfterMutation("Customers", func() error {
			_, err := a.Client.ListCustomers(cmd.Context())
			return err
		})
		return nil
	},
}

var customersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageCustomers); err != nil {
			return err
		}

		ok, err := confirmOrAbort("customer " + args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		if err := a.Client.DeleteCustomer(cmd.Context(), args[0]); err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Deleted customer %s", args[0])

		refetchAfterMutation("Customers", func() error {
			_, err := a.Client.ListCustomers(cmd.Context())
			return err
		})
		return nil
	},
}

func init() {
	addListFlags(customersListCmd)

	for _, c := range []*cobra.Command{customersCreateCmd, customersUpdateCmd} {
		c.Flags().String("name", "", "customer name")
		c.Flags().String("email", "", "email address")
		c.Flags().String("phone", "", "phone number")
		c.Flags().String("address", "", "postal address")
	}

	customersCmd.AddCommand(customersListCmd)
	customersCmd.AddCommand(customersCreateCmd)
	customersCmd.AddCommand(customersUpdateCmd)
	customersCmd.AddCommand(customersDeleteCmd)

	rootCmd.AddCommand(customersCmd)
}

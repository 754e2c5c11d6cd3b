package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/domain"
	"github.com/opsdeskhq/opsdesk/internal/tui"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var staffCmd = &cobra.Command{
	Use:   "staff",
	Short: "Manage staff members",
	Long: `Manage staff members.

Requires the manage_staff capability (admin and super_admin roles).

Examples:
  opsdesk staff list
  opsdesk staff get <id>
  opsdesk staff create --name "Jane Doe" --email jane@example.com --role sales
  opsdesk staff update <id> --salary 52000
  opsdesk staff delete <id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func staffTable(items []api.StaffMember) ux.Table {
	t := ux.Table{Head: []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS", "HIRED"}}
	for _, s := range items {
		t.Data = append(t.Data, []string{s.ID, s.Name, s.Email, string(s.Role), s.Status, s.HireDate})
	}
	return t
}

var staffListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff members",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageStaff); err != nil {
			return err
		}

		page, err := a.Client.ListStaff(cmd.Context())
		if err != nil {
			return err
		}
		return renderList(a, page.Items, staffTable(page.Items))
	},
}

var staffGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one staff member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageStaff); err != nil {
			return err
		}

		member, err := a.Client.GetStaff(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return renderObject(a, member)
	},
}

func staffInputFromFlags(cmd *cobra.Command) (api.StaffInput, error) {
	var in api.StaffInput
	in.Name, _ = cmd.Flags().GetString("name")
	in.Email, _ = cmd.Flags().GetString("email")
	in.Phone, _ = cmd.Flags().GetString("phone")
	in.Status, _ = cmd.Flags().GetString("status")
	in.HireDate, _ = cmd.Flags().GetString("hire-date")
	in.Salary, _ = cmd.Flags().GetFloat64("salary")

	roleName, _ := cmd.Flags().GetString("role")
	if roleName != "" {
		role := domain.Role(roleName)
		if !role.Valid() {
			return in, fmt.Errorf("unknown role %q (valid: %v)", roleName, domain.Roles())
		}
		in.Role = role
	}
	return in, nil
}

var staffCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff member",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageStaff); err != nil {
			return err
		}

		in, err := staffInputFromFlags(cmd)
		if err != nil {
			return err
		}
		if in.Name == "" || in.Email == "" || in.Role == "" {
			return fmt.Errorf("--name, --email, and --role are required")
		}

		member, err := a.Client.CreateStaff(cmd.Context(), in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Created staff member %s (%s)", member.Name, member.ID)

		refetchAfterMutation("Staff", func() error {
			_, err := a.Client.ListStaff(cmd.Context())
			return err
		})
		return nil
	},
}

var staffUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a staff member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageStaff); err != nil {
			return err
		}

		in, err := staffInputFromFlags(cmd)
		if err != nil {
			return err
		}

		member, err := a.Client.UpdateStaff(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Updated staff member %s", member.ID)

		refetchAfterMutation("Staff", func() error {
			_, err := a.Client.ListStaff(cmd.Context())
			return err
		})
		return nil
	},
}

var staffDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a staff member",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageStaff); err != nil {
			return err
		}

		ok, err := confirmOrAbort("staff member " + args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		if err := a.Client.DeleteStaff(cmd.Context(), args[0]); err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Deleted staff member %s", args[0])

		refetchAfterMutation("Staff", func() error {
			_, err := a.Client.ListStaff(cmd.Context())
			return err
		})
		return nil
	},
}

func init() {
	addListFlags(staffListCmd)

	for _, c := range []*cobra.Command{staffCreateCmd, staffUpdateCmd} {
		c.Flags().String("name", "", "full name")
		c.Flags().String("email", "", "email address")
		c.Flags().String("phone", "", "phone number")
		c.Flags().String("role", "", "role: "+rolesHelp())
		c.Flags().String("status", "", "employment status")
		c.Flags().String("hire-date", "", "hire date (YYYY-MM-DD)")
		c.Flags().Float64("salary", 0, "monthly salary")
	}

	staffCmd.AddCommand(staffListCmd)
	staffCmd.AddCommand(staffGetCmd)
	staffCmd.AddCommand(staffCreateCmd)
	staffCmd.AddCommand(staffUpdateCmd)
	staffCmd.AddCommand(staffDeleteCmd)

	rootCmd.AddCommand(staffCmd)
}

func rolesHelp() string {
	s := ""
	for i, r := range domain.Roles() {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

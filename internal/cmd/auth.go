package cmd

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/domain"
	"github.com/opsdeskhq/opsdesk/internal/session"
	"github.com/opsdeskhq/opsdesk/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication and the current session",
	Long: `Manage authentication for the Opsdesk backend.

Credentials are stored in ~/.opsdesk/credentials.json.

Subcommands:
  login        Login with email and password
  logout       Logout and remove credentials
  status       Show current session, role, and capabilities
  switch-role  Preview another role's view (super admins only)

Examples:
  opsdesk auth login --email user@example.com
  opsdesk auth status
  opsdesk auth switch-role --role sales
  opsdesk auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to the backend",
	Long: `Login to the Opsdesk backend with your email and password.

Missing flags are collected interactively. On success the access token and
your user record are saved locally; every later command attaches them.

Examples:
  opsdesk auth login
  opsdesk auth login --email user@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" || password == "" {
			if flagNoInput {
				return fmt.Errorf("--email and --password are required with --no-input")
			}
			creds, err := tui.LoginForm()
			if err != nil {
				return err
			}
			if email == "" {
				email = creds.Email
			}
			if password == "" {
				password = creds.Password
			}
		}

		if err := a.Session.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		snap := a.Session.Current()
		if snap.User != nil {
			tui.Success(cmd.OutOrStdout(), "Logged in as %s (%s)", snap.User.Email, snap.User.Role)
		} else {
			tui.Success(cmd.OutOrStdout(), "Logged in")
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and remove credentials",
	Long: `Logout from the Opsdesk backend.

The logout request is best-effort: local credentials are removed and the
session ends even when the backend cannot be reached. Running logout twice
is safe.

Examples:
  opsdesk auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if err := a.Session.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		fmt.Fprintln(cmd.OutOrStdout(), "Use 'opsdesk auth login' to sign in again.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session status",
	Long: `Show the current session: user, role, token expiry, and the
capabilities derived from the role.

Examples:
  opsdesk auth status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		snap := a.Session.Bootstrap(cmd.Context())
		out := cmd.OutOrStdout()

		if snap.State != session.StateAuthenticated {
			fmt.Fprintln(out, "Not logged in.")
			fmt.Fprintln(out, "Use 'opsdesk auth login' to authenticate.")
			return nil
		}

		fmt.Fprintln(out, "Logged in")
		if u := snap.User; u != nil {
			fmt.Fprintf(out, "User:   %s\n", u.Name)
			fmt.Fprintf(out, "Email:  %s\n", u.Email)
			fmt.Fprintf(out, "Role:   %s\n", u.Role)
		}
		if expiry := tokenExpiry(a); expiry != "" {
			fmt.Fprintf(out, "Token:  expires %s\n", expiry)
		}

		fmt.Fprintln(out, "Capabilities:")
		for _, c := range snap.Capabilities.Granted() {
			fmt.Fprintf(out, "  - %s\n", c)
		}
		return nil
	},
}

// tokenExpiry parses the stored token locally (unverified; the backend owns
// validation) just to display the expiry claim.
func tokenExpiry(a *App) string {
	token, err := a.Creds.Token()
	if err != nil || token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	return exp.Time.Local().Format("2006-01-02 15:04:05")
}

var authSwitchRoleCmd = &cobra.Command{
	Use:   "switch-role",
	Short: "Preview another role's view (super admins only)",
	Long: `Switch the session's role to preview what another role can see.

Only the super_admin role may switch; for anyone else this command changes
nothing. The switch replaces only the role field of the stored user record.

Examples:
  opsdesk auth switch-role --role sales
  opsdesk auth switch-role`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if err := a.Guard.Ensure(cmd.Context(), ""); err != nil {
			return err
		}

		roleName, _ := cmd.Flags().GetString("role")
		if roleName == "" {
			if flagNoInput {
				return fmt.Errorf("--role is required with --no-input")
			}
			options := make([]string, 0, len(domain.Roles()))
			for _, r := range domain.Roles() {
				options = append(options, string(r))
			}
			roleName, err = tui.SelectRole(options)
			if err != nil {
				return err
			}
		}

		before := a.Session.Current()
		a.Session.SwitchRole(domain.Role(roleName))
		after := a.Session.Current()

		if after.User != nil && before.User != nil && after.User.Role != before.User.Role {
			tui.Success(cmd.OutOrStdout(), "Now previewing as %s", after.User.Role)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Role unchanged (only super_admin can switch roles).")
		}
		return nil
	},
}

func init() {
	authLoginCmd.Flags().String("email", "", "email address")
	authLoginCmd.Flags().String("password", "", "password")
	authSwitchRoleCmd.Flags().String("role", "", "role to preview")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authSwitchRoleCmd)

	rootCmd.AddCommand(authCmd)
}

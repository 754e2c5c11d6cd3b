package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	flagOutput  string
	flagAPIURL  string
	flagVerbose bool
	flagNoInput bool
)

var rootCmd = &cobra.Command{
	Use:   "opsdesk",
	Short: "Terminal client for the Opsdesk business-management backend",
	Long: `opsdesk is a terminal client for the Opsdesk business-management platform.
It covers staff, payroll, sales, production, inventory, expenses, customers,
marketing, and analytics, with role-based access derived from your login.

Credentials are stored in ~/.opsdesk/credentials.json after 'opsdesk auth login'.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "output format: text, json, yaml, csv")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend origin (overrides config and OPSDESK_API_URL)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoInput, "no-input", false, "disable interactive prompts")
}

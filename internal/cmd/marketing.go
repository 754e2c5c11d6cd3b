package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdeskhq/opsdesk/internal/api"
	"github.com/opsdeskhq/opsdesk/internal/authz"
	"github.com/opsdeskhq/opsdesk/internal/tui"
	"github.com/opsdeskhq/opsdesk/internal/ux"
)

var marketingCmd = &cobra.Command{
	Use:   "marketing",
	Short: "Manage marketing campaigns",
	Long: `Manage marketing campaigns.

Requires the manage_marketing capability (marketer, admin, super_admin).

Examples:
  opsdesk marketing campaigns
  opsdesk marketing create --name "Summer push" --channel social --budget 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var marketingCampaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageMarketing); err != nil {
			return err
		}

		page, err := a.Client.ListCampaigns(cmd.Context())
		if err != nil {
			return err
		}

		t := ux.Table{Head: []string{"ID", "NAME", "CHANNEL", "BUDGET", "START", "END", "STATUS"}}
		for _, c := range page.Items {
			t.Data = append(t.Data, []string{
				c.ID, c.Name, c.Channel, formatMoney(c.Budget), c.StartDate, c.EndDate, c.Status,
			})
		}
		return renderList(a, page.Items, t)
	},
}

var marketingCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if err := a.Guard.Ensure(cmd.Context(), authz.CapManageMarketing); err != nil {
			return err
		}

		var in api.CampaignInput
		in.Name, _ = cmd.Flags().GetString("name")
		in.Channel, _ = cmd.Flags().GetString("channel")
		in.Budget, _ = cmd.Flags().GetFloat64("budget")
		in.StartDate, _ = cmd.Flags().GetString("start")
		in.EndDate, _ = cmd.Flags().GetString("end")

		if in.Name == "" {
			return fmt.Errorf("--name is required")
		}

		campaign, err := a.Client.CreateCampaign(cmd.Context(), in)
		if err != nil {
			return err
		}
		tui.Success(cmd.OutOrStdout(), "Created campaign %s (%s)", campaign.Name, campaign.ID)

		refetchAfterMutation("Campaigns", func() error {
			_, err := a.Client.ListCampaigns(cmd.Context())
			return err
		})
		return nil
	},
}

func init() {
	addListFlags(marketingCampaignsCmd)

	marketingCreateCmd.Flags().String("name", "", "campaign name")
	marketingCreateCmd.Flags().String("channel", "", "channel (social, email, print, ...)")
	marketingCreateCmd.Flags().Float64("budget", 0, "campaign budget")
	marketingCreateCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	marketingCreateCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")

	marketingCmd.AddCommand(marketingCampaignsCmd)
	marketingCmd.AddCommand(marketingCreateCmd)

	rootCmd.AddCommand(marketingCmd)
}

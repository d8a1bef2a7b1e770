package cli

import (
	"github.com/spf13/cobra"

	adssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/ads"
)

func newAdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ad",
		Short: "Ad campaign commands",
	}

	campaign := &cobra.Command{
		Use:   "campaign",
		Short: "Manage ad campaigns",
	}
	campaign.AddCommand(newAdCampaignCreateCmd())
	campaign.AddCommand(newAdCampaignListCmd())
	campaign.AddCommand(newAdCampaignGetCmd())
	campaign.AddCommand(newAdCampaignPauseCmd())
	campaign.AddCommand(newAdCampaignResumeCmd())

	cmd.AddCommand(campaign)
	cmd.AddCommand(newAdStatsCmd())

	return cmd
}

func newAdCampaignCreateCmd() *cobra.Command {
	var gameID, name string
	var budget, cpm float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an ad campaign",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			if name, err = promptRequired(cmd, "Campaign name", "name", name); err != nil {
				return err
			}

			campaign, err := svc.Ads.CreateCampaign(cmd.Context(), adssvc.CreateParams{
				GameID: id,
				Name:   name,
				Budget: budget,
				CPM:    cpm,
			})
			if err != nil {
				return err
			}
			newOutput(cmd).Print(campaign)
			return nil
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
	cmd.Flags().StringVar(&name, "name", "", "Campaign name")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Total budget")
	cmd.Flags().Float64Var(&cpm, "cpm", 0, "Cost per thousand impressions")

	return cmd
}

func newAdCampaignListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ad campaigns",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			list, err := svc.Ads.ListCampaigns(cmd.Context())
			if err != nil {
				return err
			}
			newOutput(cmd).Print(list)
			return nil
		}),
	}
}

func newAdCampaignGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one campaign",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			campaign, err := svc.Ads.GetCampaign(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(campaign)
			return nil
		}),
	}
}

func newAdCampaignPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause <id>",
		Short: "Pause campaign delivery",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			campaign, err := svc.Ads.Pause(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(campaign)
			return nil
		}),
	}
}

func newAdCampaignResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <id>",
		Short: "Resume a paused campaign",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			campaign, err := svc.Ads.Resume(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(campaign)
			return nil
		}),
	}
}

func newAdStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <campaign-id>",
		Short: "Show campaign metrics",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			stats, err := svc.Ads.GetStats(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(stats)
			return nil
		}),
	}
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	assetssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/assets"
)

func newAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Asset and minting commands",
	}

	cmd.AddCommand(newAssetMintCmd())
	cmd.AddCommand(newAssetListCmd())
	cmd.AddCommand(newAssetGetCmd())
	cmd.AddCommand(newAssetTransferCmd())
	cmd.AddCommand(newAssetBurnCmd())

	return cmd
}

func newAssetMintCmd() *cobra.Command {
	var gameID, name, recipient, metadataJSON string
	var amount int

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a new asset",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			if name, err = promptRequired(cmd, "Asset name", "name", name); err != nil {
				return err
			}
			if recipient, err = promptRequired(cmd, "Recipient address", "recipient", recipient); err != nil {
				return err
			}

			var metadata map[string]any
			if metadataJSON != "" {
				if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
					return fmt.Errorf("invalid --metadata: %w", err)
				}
			}

			asset, err := svc.Assets.Mint(cmd.Context(), assetssvc.MintParams{
				GameID:    id,
				Name:      name,
				Recipient: recipient,
				Amount:    amount,
				Metadata:  metadata,
			})
			if err != nil {
				return err
			}

			newOutput(cmd).Print(asset)
			return nil
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
	cmd.Flags().StringVar(&name, "name", "", "Asset name")
	cmd.Flags().StringVar(&recipient, "recipient", "", "Recipient wallet address")
	cmd.Flags().IntVar(&amount, "amount", 1, "Amount for fungible assets")
	cmd.Flags().StringVar(&metadataJSON, "metadata", "", "Asset metadata as a JSON object")

	return cmd
}

func newAssetListCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a game's assets",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			list, err := svc.Assets.List(cmd.Context(), id)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(list)
			return nil
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")

	return cmd
}

func newAssetGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			asset, err := svc.Assets.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(asset)
			return nil
		}),
	}
}

func newAssetTransferCmd() *cobra.Command {
	var to string
	var amount int

	cmd := &cobra.Command{
		Use:   "transfer <id>",
		Short: "Transfer an asset to another owner",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			var err error
			if to, err = promptRequired(cmd, "Recipient address", "to", to); err != nil {
				return err
			}
			asset, err := svc.Assets.Transfer(cmd.Context(), args[0], to, amount)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(asset)
			return nil
		}),
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient wallet address")
	cmd.Flags().IntVar(&amount, "amount", 0, "Amount for fungible assets")

	return cmd
}

func newAssetBurnCmd() *cobra.Command {
	var amount int
	var yes bool

	cmd := &cobra.Command{
		Use:   "burn <id>",
		Short: "Burn an asset",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "Burn asset "+args[0]+"? This cannot be undone") {
				newOutput(cmd).PrintMessage("Aborted")
				return nil
			}
			asset, err := svc.Assets.Burn(cmd.Context(), args[0], amount)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(asset)
			return nil
		}),
	}

	cmd.Flags().IntVar(&amount, "amount", 0, "Amount for fungible assets")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation")

	return cmd
}

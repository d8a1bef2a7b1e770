package cli

import (
	"github.com/spf13/cobra"

	gamessvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/games"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game management commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameUpdateCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var name, platform, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new game",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			var err error
			if name, err = promptRequired(cmd, "Game name", "name", name); err != nil {
				return err
			}
			if platform, err = promptString(cmd, "Platform (webgl/android/ios)", platform); err != nil {
				return err
			}

			game, err := svc.Games.Create(cmd.Context(), gamessvc.CreateParams{
				Name:        name,
				Platform:    platform,
				Description: description,
			})
			if err != nil {
				return err
			}

			newOutput(cmd).Print(game)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name")
	cmd.Flags().StringVar(&platform, "platform", "", "Target platform")
	cmd.Flags().StringVar(&description, "description", "", "Short description")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your games",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			list, err := svc.Games.List(cmd.Context())
			if err != nil {
				return err
			}
			newOutput(cmd).Print(list)
			return nil
		}),
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one game",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			game, err := svc.Games.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(game)
			return nil
		}),
	}
}

func newGameUpdateCmd() *cobra.Command {
	var name, description, status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update game fields",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			game, err := svc.Games.Update(cmd.Context(), args[0], gamessvc.UpdateParams{
				Name:        name,
				Description: description,
				Status:      status,
			})
			if err != nil {
				return err
			}
			newOutput(cmd).Print(game)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&status, "status", "", "New status (active/archived)")

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "Delete game "+args[0]+"? This cannot be undone") {
				newOutput(cmd).PrintMessage("Aborted")
				return nil
			}
			if err := svc.Games.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			newOutput(cmd).PrintMessage("Game deleted")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation")

	return cmd
}

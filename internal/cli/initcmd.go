package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/project"
	gamessvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/games"
)

func newInitCmd() *cobra.Command {
	var gameID, newName, buildPath, platform string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Link this directory to a game",
		Long: `Link the working directory to a remote game by writing a ` + project.MarkerFile + `
marker file. Build and deploy commands read the linked game from it.`,
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			if project.Exists(wd) && !force {
				return fmt.Errorf("directory already linked; use --force to relink")
			}

			var game *gamessvc.Game
			if newName != "" {
				game, err = svc.Games.Create(cmd.Context(), gamessvc.CreateParams{
					Name:     newName,
					Platform: platform,
				})
				if err != nil {
					return err
				}
			} else {
				if gameID, err = promptRequired(cmd, "Game ID", "game", gameID); err != nil {
					return err
				}

				// Verify the game exists before writing the marker.
				game, err = svc.Games.Get(cmd.Context(), gameID)
				if err != nil {
					return err
				}
			}

			if buildPath, err = promptString(cmd, "Build path (default ./build)", buildPath); err != nil {
				return err
			}
			if buildPath == "" {
				buildPath = "./build"
			}
			if platform == "" {
				platform = game.Platform
			}

			marker := &project.Marker{
				GameID:    game.ID,
				BuildPath: buildPath,
				Platform:  platform,
			}
			if err := project.Save(wd, marker); err != nil {
				return err
			}

			newOutput(cmd).PrintMessage(fmt.Sprintf("Linked to game %s (%s)", game.Name, game.ID))
			return nil
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID to link")
	cmd.Flags().StringVar(&newName, "create", "", "Create a new game with this name and link it")
	cmd.Flags().StringVar(&buildPath, "build-path", "", "Directory holding build output")
	cmd.Flags().StringVar(&platform, "platform", "", "Target platform (defaults to the game's)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing link")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"
)

func newDeployCmd() *cobra.Command {
	var buildID, gameID, environment string

	runStart := func(cmd *cobra.Command, args []string) error {
		id := buildID
		if id == "" {
			gid, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			latest, err := svc.Builds.Latest(cmd.Context(), gid)
			if err != nil {
				return err
			}
			id = latest.ID
		}

		dep, err := svc.Deployments.Start(cmd.Context(), id, environment)
		if err != nil {
			return err
		}

		newOutput(cmd).Print(dep)
		return nil
	}

	// Bare `deploy` runs the start flow with the same flags.
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deployment commands",
		Long: `Roll out builds. Running deploy with no subcommand is the same as
deploy start.`,
		RunE: requireAuth(runStart),
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Deploy a build (defaults to the latest build of the linked game)",
		RunE:  requireAuth(runStart),
	}

	for _, c := range []*cobra.Command{cmd, startCmd} {
		c.Flags().StringVar(&buildID, "build", "", "Build ID to deploy")
		c.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
		c.Flags().StringVar(&environment, "env", "production", "Target environment")
	}

	cmd.AddCommand(startCmd)
	cmd.AddCommand(newDeployListCmd())
	cmd.AddCommand(newDeployStatusCmd())
	cmd.AddCommand(newDeployStopCmd())

	return cmd
}

func newDeployListCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployments",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			list, err := svc.Deployments.List(cmd.Context(), id)
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

func newDeployStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id>",
		Short: "Show one deployment",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			dep, err := svc.Deployments.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(dep)
			return nil
		}),
	}
}

func newDeployStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <id>",
		Short: "Take a deployment out of rotation",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			dep, err := svc.Deployments.Stop(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(dep)
			return nil
		}),
	}
}

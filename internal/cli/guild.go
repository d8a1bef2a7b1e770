package cli

import (
	"github.com/spf13/cobra"
)

func newGuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guild",
		Short: "Guild commands",
	}

	cmd.AddCommand(newGuildCreateCmd())
	cmd.AddCommand(newGuildListCmd())
	cmd.AddCommand(newGuildGetCmd())
	cmd.AddCommand(newGuildMembersCmd())
	cmd.AddCommand(newGuildInviteCmd())
	cmd.AddCommand(newGuildTransferCmd())

	return cmd
}

func newGuildCreateCmd() *cobra.Command {
	var name, tag string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a guild",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			var err error
			if name, err = promptRequired(cmd, "Guild name", "name", name); err != nil {
				return err
			}
			guild, err := svc.Guilds.Create(cmd.Context(), name, tag)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(guild)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "Guild name")
	cmd.Flags().StringVar(&tag, "tag", "", "Short guild tag")

	return cmd
}

func newGuildListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List guilds",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			list, err := svc.Guilds.List(cmd.Context())
			if err != nil {
				return err
			}
			newOutput(cmd).Print(list)
			return nil
		}),
	}
}

func newGuildGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one guild",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			guild, err := svc.Guilds.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(guild)
			return nil
		}),
	}
}

func newGuildMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <id>",
		Short: "List guild members",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			members, err := svc.Guilds.Members(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(members)
			return nil
		}),
	}
}

func newGuildInviteCmd() *cobra.Command {
	var identityID string

	cmd := &cobra.Command{
		Use:   "invite <id>",
		Short: "Invite an identity to the guild",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			var err error
			if identityID, err = promptRequired(cmd, "Identity ID", "identity", identityID); err != nil {
				return err
			}
			invite, err := svc.Guilds.Invite(cmd.Context(), args[0], identityID)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(invite)
			return nil
		}),
	}

	cmd.Flags().StringVar(&identityID, "identity", "", "Identity to invite")

	return cmd
}

func newGuildTransferCmd() *cobra.Command {
	var toIdentityID string
	var yes bool

	cmd := &cobra.Command{
		Use:   "transfer <id>",
		Short: "Transfer guild ownership",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			var err error
			if toIdentityID, err = promptRequired(cmd, "New owner identity ID", "to", toIdentityID); err != nil {
				return err
			}
			if !yes && !confirm(cmd, "Transfer ownership of guild "+args[0]+" to "+toIdentityID+"?") {
				newOutput(cmd).PrintMessage("Aborted")
				return nil
			}
			guild, err := svc.Guilds.Transfer(cmd.Context(), args[0], toIdentityID)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(guild)
			return nil
		}),
	}

	cmd.Flags().StringVar(&toIdentityID, "to", "", "Identity receiving ownership")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation")

	return cmd
}

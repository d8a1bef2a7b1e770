package cli

import (
	"github.com/spf13/cobra"
)

func newIdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Player identity commands",
	}

	cmd.AddCommand(newIdentityCreateCmd())
	cmd.AddCommand(newIdentityListCmd())
	cmd.AddCommand(newIdentityGetCmd())
	cmd.AddCommand(newIdentityDeleteCmd())
	cmd.AddCommand(newIdentityLinkCmd())

	return cmd
}

func newIdentityCreateCmd() *cobra.Command {
	var name, external string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player identity",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			var err error
			if name, err = promptRequired(cmd, "Display name", "name", name); err != nil {
				return err
			}
			identity, err := svc.Identities.Create(cmd.Context(), name, external)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(identity)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&external, "external", "", "External account reference")

	return cmd
}

func newIdentityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List identities",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			list, err := svc.Identities.List(cmd.Context())
			if err != nil {
				return err
			}
			newOutput(cmd).Print(list)
			return nil
		}),
	}
}

func newIdentityGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one identity",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			identity, err := svc.Identities.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(identity)
			return nil
		}),
	}
}

func newIdentityDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an identity",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd, "Delete identity "+args[0]+"?") {
				newOutput(cmd).PrintMessage("Aborted")
				return nil
			}
			if err := svc.Identities.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			newOutput(cmd).PrintMessage("Identity deleted")
			return nil
		}),
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip confirmation")

	return cmd
}

func newIdentityLinkCmd() *cobra.Command {
	var address, chain string

	cmd := &cobra.Command{
		Use:   "link <id>",
		Short: "Link a wallet to an identity",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			var err error
			if address, err = promptRequired(cmd, "Wallet address", "address", address); err != nil {
				return err
			}
			identity, err := svc.Identities.LinkWallet(cmd.Context(), args[0], address, chain)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(identity)
			return nil
		}),
	}

	cmd.Flags().StringVar(&address, "address", "", "Wallet address")
	cmd.Flags().StringVar(&chain, "chain", "polygon", "Chain the wallet lives on")

	return cmd
}

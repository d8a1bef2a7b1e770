package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/config"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

// saveToken persists a fresh token under auth.token.
func saveToken(token string) error {
	if err := store.SetValue(config.KeyToken, token); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	settings.Token = token
	client.SetToken(token)
	return nil
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = promptRequired(cmd, "Email", "email", email); err != nil {
				return err
			}
			if password, err = promptRequired(cmd, "Password", "password", password); err != nil {
				return err
			}

			session, err := svc.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := saveToken(session.Token); err != nil {
				return err
			}

			newOutput(cmd).Print(session)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password, studio string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and store its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = promptRequired(cmd, "Email", "email", email); err != nil {
				return err
			}
			if password, err = promptRequired(cmd, "Password", "password", password); err != nil {
				return err
			}
			if studio, err = promptString(cmd, "Studio (optional)", studio); err != nil {
				return err
			}

			session, err := svc.Auth.Register(cmd.Context(), email, password, studio)
			if err != nil {
				return err
			}
			if err := saveToken(session.Token); err != nil {
				return err
			}

			newOutput(cmd).Print(session)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&studio, "studio", "", "Studio name")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored token",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			// Server-side invalidation is best effort; the local token is
			// removed either way.
			_ = svc.Auth.Logout(cmd.Context())

			if err := store.Delete(config.KeyToken); err == nil {
				if err := store.Save(); err != nil {
					return err
				}
			}
			settings.Token = ""

			newOutput(cmd).PrintMessage("Logged out")
			return nil
		}),
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the account behind the stored token",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			user, err := svc.Auth.Me(cmd.Context())
			if err != nil {
				return err
			}
			newOutput(cmd).Print(user)
			return nil
		}),
	}
}

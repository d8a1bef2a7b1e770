package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage local configuration values",
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigDeleteCmd())
	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigEditCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Get a config value by dotted path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if config.IsSensitive(args[0]) && !showSecrets {
				fmt.Fprintln(cmd.OutOrStdout(), config.MaskValue(val))
				return nil
			}
			switch v := val.(type) {
			case map[string]any, []any:
				out, _ := json.MarshalIndent(v, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			default:
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print sensitive values unmasked")

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Set a config value by dotted path (JSON or plain string)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Set(args[0], args[1]); err != nil {
				return err
			}
			return store.Save()
		},
	}
}

func newConfigDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <path>",
		Aliases: []string{"unset"},
		Short:   "Delete a config value by dotted path",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Delete(args[0]); err != nil {
				if errors.Is(err, config.ErrNotFound) {
					newOutput(cmd).PrintMessage(fmt.Sprintf("No value at %s", args[0]))
					return nil
				}
				return err
			}
			return store.Save()
		},
	}
}

func newConfigListCmd() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all config values",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := store.Flatten()
			if settings.Output == "json" {
				m := make(map[string]any, len(entries))
				for _, e := range entries {
					if config.IsSensitive(e.Key) && !showSecrets {
						m[e.Key] = config.MaskValue(e.Value)
						continue
					}
					m[e.Key] = e.Value
				}
				newOutput(cmd).Print(m)
				return nil
			}
			for _, e := range entries {
				val := fmt.Sprintf("%v", e.Value)
				if config.IsSensitive(e.Key) && !showSecrets {
					val = config.MaskValue(e.Value)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", e.Key, val)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print sensitive values unmasked")

	return cmd
}

func newConfigEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the config file in $EDITOR",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Make sure the file exists before handing it to the editor.
			if _, err := os.Stat(store.Path()); os.IsNotExist(err) {
				if err := store.Save(); err != nil {
					return err
				}
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vi"
			}

			edit := exec.Command(editor, store.Path())
			edit.Stdin = os.Stdin
			edit.Stdout = os.Stdout
			edit.Stderr = os.Stderr
			if err := edit.Run(); err != nil {
				return fmt.Errorf("editor failed: %w", err)
			}

			// Reject edits that are not valid JSON.
			if _, err := config.Open(store.Path()); err != nil {
				return err
			}
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}

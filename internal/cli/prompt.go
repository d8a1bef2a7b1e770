package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// promptString fills in a missing argument interactively. An already-set
// value, or --non-interactive, short-circuits.
func promptString(cmd *cobra.Command, label, current string) (string, error) {
	if current != "" || nonInteractive {
		return current, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
	line, err := input.ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

// promptRequired is promptString but missing input is an error.
func promptRequired(cmd *cobra.Command, label, flagName, current string) (string, error) {
	val, err := promptString(cmd, label, current)
	if err != nil {
		return "", err
	}
	if val == "" {
		return "", fmt.Errorf("--%s is required", flagName)
	}
	return val, nil
}

// confirm asks a yes/no question, defaulting to no. --non-interactive
// answers no.
func confirm(cmd *cobra.Command, question string) bool {
	if nonInteractive {
		return false
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, err := input.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

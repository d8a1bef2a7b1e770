// Package cli implements the gamebuild command tree.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/config"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/project"
	adssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/ads"
	analyticssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/analytics"
	assetssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/assets"
	authsvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/auth"
	buildssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/builds"
	deploysvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/deployments"
	gamessvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/games"
	guildssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/guilds"
	identsvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/identities"
)

// Fixed notices for local precondition failures. These are printed without
// any network call and the command returns cleanly.
const (
	notAuthenticatedMsg = "Not authenticated. Run 'gamebuild auth login' first."
	notLinkedMsg        = "No linked project in this directory. Run 'gamebuild init' first."
)

var (
	settings       *config.Settings
	store          *config.Store
	client         *api.Client
	svc            *platformServices
	logger         *slog.Logger
	input          *bufio.Reader
	nonInteractive bool
)

type platformServices struct {
	Auth        *authsvc.Service
	Games       *gamessvc.Service
	Builds      *buildssvc.Service
	Deployments *deploysvc.Service
	Assets      *assetssvc.Service
	Identities  *identsvc.Service
	Guilds      *guildssvc.Service
	Ads         *adssvc.Service
	Analytics   *analyticssvc.Service
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	loaded, err := config.LoadSettings()
	if err != nil {
		loaded = &config.Settings{APIURL: "https://api.gamebuild.io", Output: "text", ConfigFile: config.DefaultPath()}
	}
	settings = loaded

	rootCmd := &cobra.Command{
		Use:   "gamebuild",
		Short: "CLI for the GameBuild platform",
		Long: `gamebuild is the command-line client for the GameBuild platform.

It covers authentication, game and build management, deployments, asset
minting, player identities, guilds, ad campaigns, and analytics.`,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&settings.APIURL, "api-url", settings.APIURL, "Platform API base URL (env: GAMEBUILD_API_URL)")
	rootCmd.PersistentFlags().StringVar(&settings.Token, "token", settings.Token, "Bearer token (env: GAMEBUILD_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&settings.ConfigFile, "config", settings.ConfigFile, "Config file path (env: GAMEBUILD_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&settings.Output, "output", "o", settings.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; fail on missing arguments instead")

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newDeployCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAssetCmd())
	rootCmd.AddCommand(newIdentityCmd())
	rootCmd.AddCommand(newGuildCmd())
	rootCmd.AddCommand(newAdCmd())
	rootCmd.AddCommand(newAnalyticsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	store, err = config.Open(settings.ConfigFile)
	if err != nil {
		return err
	}

	// One reader for the whole run: a fresh bufio.Reader per prompt would
	// buffer ahead and drop input meant for the next prompt.
	input = bufio.NewReader(cmd.InOrStdin())

	// Flag and environment beat the stored token.
	if settings.Token == "" {
		if v, err := store.Get(config.KeyToken); err == nil {
			if s, ok := v.(string); ok {
				settings.Token = s
			}
		}
	}

	// Stored base URL applies only when neither flag nor env set one.
	if !cmd.Flags().Changed("api-url") && os.Getenv("GAMEBUILD_API_URL") == "" {
		if v, err := store.Get(config.KeyBaseURL); err == nil {
			if s, ok := v.(string); ok && s != "" {
				settings.APIURL = s
			}
		}
	}

	if settings.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client = api.NewClient(settings.APIURL, settings.Token, logger)
	svc = &platformServices{
		Auth:        authsvc.New(client),
		Games:       gamessvc.New(client),
		Builds:      buildssvc.New(client),
		Deployments: deploysvc.New(client),
		Assets:      assetssvc.New(client),
		Identities:  identsvc.New(client),
		Guilds:      guildssvc.New(client),
		Ads:         adssvc.New(client),
		Analytics:   analyticssvc.New(client),
	}
	return nil
}

// requireAuth gates a RunE on a locally stored token. With no token the
// fixed notice is printed and the command returns without any API call.
func requireAuth(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if settings.Token == "" {
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString(notAuthenticatedMsg))
			return nil
		}
		return run(cmd, args)
	}
}

// currentProject loads the marker file for the working directory. A missing
// marker prints the fixed notice and reports ok=false.
func currentProject(cmd *cobra.Command) (*project.Marker, bool, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, false, err
	}
	m, err := project.Load(wd)
	if errors.Is(err, project.ErrNotLinked) {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString(notLinkedMsg))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// resolveGameID picks the game to operate on: explicit flag first, then the
// linked project.
func resolveGameID(cmd *cobra.Command, flagValue string) (string, bool, error) {
	if flagValue != "" {
		return flagValue, true, nil
	}
	m, ok, err := currentProject(cmd)
	if err != nil || !ok {
		return "", false, err
	}
	return m.GameID, true, nil
}

// Execute runs the root command.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		if settings != nil && settings.Output == "json" {
			fmt.Fprintf(os.Stderr, `{"error":{"message":%q}}`+"\n", err.Error())
		} else {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		}
		os.Exit(1)
	}
}

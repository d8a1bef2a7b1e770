package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/project"
	buildssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/builds"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/watch"
)

// logPollInterval is the fixed cadence of the log-follow loop.
const logPollInterval = 2 * time.Second

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build commands for the linked game",
	}

	cmd.AddCommand(newBuildCreateCmd())
	cmd.AddCommand(newBuildListCmd())
	cmd.AddCommand(newBuildGetCmd())
	cmd.AddCommand(newBuildLogsCmd())
	cmd.AddCommand(newBuildWatchCmd())

	return cmd
}

func newBuildCreateCmd() *cobra.Command {
	var gameID, version, notes, path string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Queue a new build",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			if path == "" {
				if wd, werr := os.Getwd(); werr == nil {
					if m, lerr := project.Load(wd); lerr == nil {
						path = m.BuildPath
					}
				}
			}

			build, err := svc.Builds.Create(cmd.Context(), id, buildssvc.CreateParams{
				Version: version,
				Notes:   notes,
				Path:    path,
			})
			if err != nil {
				return err
			}

			newOutput(cmd).Print(build)
			return nil
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
	cmd.Flags().StringVar(&version, "version", "", "Build version label")
	cmd.Flags().StringVar(&notes, "notes", "", "Release notes")
	cmd.Flags().StringVar(&path, "path", "", "Build output directory (defaults to the marker's buildPath)")

	return cmd
}

func newBuildListCmd() *cobra.Command {
	var gameID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List builds, newest first",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			list, err := svc.Builds.List(cmd.Context(), id)
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

func newBuildGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one build",
		Args:  cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			build, err := svc.Builds.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newOutput(cmd).Print(build)
			return nil
		}),
	}
}

func newBuildLogsCmd() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs <id>",
		Short: "Print build logs",
		Long: `Print the build's log output. With --follow the command polls for new
lines every two seconds until the build finishes or the process is
interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			if !follow {
				chunk, err := svc.Builds.Logs(cmd.Context(), args[0], "")
				if err != nil {
					return err
				}
				for _, line := range chunk.Lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return followLogs(ctx, cmd.OutOrStdout(), svc.Builds, args[0], logPollInterval)
		}),
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Poll for new log lines")

	return cmd
}

// followLogs polls the log endpoint at a fixed interval, printing new lines
// as they arrive. It returns once the stream reports completion, once the
// build reaches a terminal state with no pending lines, or when ctx is
// cancelled. No backoff, no retry.
func followLogs(ctx context.Context, w io.Writer, builds *buildssvc.Service, buildID string, interval time.Duration) error {
	cursor := ""
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		chunk, err := builds.Logs(ctx, buildID, cursor)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		for _, line := range chunk.Lines {
			fmt.Fprintln(w, line)
		}
		cursor = chunk.Cursor
		if chunk.Completed {
			return nil
		}
		if len(chunk.Lines) == 0 {
			build, berr := builds.Get(ctx, buildID)
			if berr == nil && build.Done() {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func newBuildWatchCmd() *cobra.Command {
	var gameID, path, version string
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild on file changes",
		Long: `Watch the project's build path and queue a new build after each settled
burst of file changes. Runs until interrupted.`,
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			if path == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				if m, lerr := project.Load(wd); lerr == nil {
					path = m.BuildPath
				}
				if path == "" {
					path = "."
				}
			}

			w, err := watch.New(path, debounce, logger)
			if err != nil {
				return fmt.Errorf("cannot watch %s: %w", path, err)
			}
			defer func() { _ = w.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", path)

			out := newOutput(cmd)
			runErr := w.Run(ctx, func() {
				build, err := svc.Builds.Create(ctx, id, buildssvc.CreateParams{Version: version})
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), color.RedString("build request failed: %v", err))
					return
				}
				out.PrintMessage(fmt.Sprintf("Queued build %s", build.ID))
			})
			if ctx.Err() != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Stopped")
				return nil
			}
			return runErr
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
	cmd.Flags().StringVar(&path, "path", "", "Directory to watch (defaults to the marker's buildPath)")
	cmd.Flags().StringVar(&version, "version", "", "Version label for queued builds")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before triggering a build")

	return cmd
}

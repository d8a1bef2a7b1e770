package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	analyticssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/analytics"
)

// realtimePollInterval is the fixed cadence of the live-dashboard loop.
const realtimePollInterval = 3 * time.Second

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Analytics commands",
	}

	cmd.AddCommand(newAnalyticsOverviewCmd())
	cmd.AddCommand(newAnalyticsEventsCmd())
	cmd.AddCommand(newAnalyticsRealtimeCmd())

	return cmd
}

func newAnalyticsOverviewCmd() *cobra.Command {
	var gameID, period string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Aggregate metrics for a game",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			overview, err := svc.Analytics.GetOverview(cmd.Context(), id, period)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(overview)
			return nil
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
	cmd.Flags().StringVar(&period, "period", "7d", "Reporting period, e.g. 24h, 7d, 30d")

	return cmd
}

func newAnalyticsEventsCmd() *cobra.Command {
	var gameID, name, period string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Per-event aggregates",
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}
			events, err := svc.Analytics.GetEvents(cmd.Context(), id, name, period)
			if err != nil {
				return err
			}
			newOutput(cmd).Print(events)
			return nil
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
	cmd.Flags().StringVar(&name, "name", "", "Filter to one event name")
	cmd.Flags().StringVar(&period, "period", "7d", "Reporting period, e.g. 24h, 7d, 30d")

	return cmd
}

func newAnalyticsRealtimeCmd() *cobra.Command {
	var gameID string
	var once bool

	cmd := &cobra.Command{
		Use:   "realtime",
		Short: "Live activity snapshot",
		Long: `Print the current live-activity snapshot. Without --once the command
refreshes every three seconds until interrupted.`,
		RunE: requireAuth(func(cmd *cobra.Command, args []string) error {
			id, ok, err := resolveGameID(cmd, gameID)
			if err != nil || !ok {
				return err
			}

			if once {
				return printRealtime(cmd.Context(), cmd.OutOrStdout(), svc.Analytics, id)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return pollRealtime(ctx, cmd.OutOrStdout(), svc.Analytics, id, realtimePollInterval)
		}),
	}

	cmd.Flags().StringVar(&gameID, "game", "", "Game ID (defaults to the linked project)")
	cmd.Flags().BoolVar(&once, "once", false, "Print a single snapshot and exit")

	return cmd
}

// pollRealtime fetches and prints a snapshot at a fixed interval until ctx
// is cancelled. No backoff, no retry.
func pollRealtime(ctx context.Context, w io.Writer, svc *analyticssvc.Service, gameID string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := printRealtime(ctx, w, svc, gameID); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func printRealtime(ctx context.Context, w io.Writer, svc *analyticssvc.Service, gameID string) error {
	rt, err := svc.GetRealtime(ctx, gameID)
	if err != nil {
		return err
	}
	stamp := rt.Timestamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	fmt.Fprintf(w, "[%s] active users: %d  sessions/min: %.1f\n",
		stamp.Format("15:04:05"), rt.ActiveUsers, rt.SessionsPerMinute)
	return nil
}

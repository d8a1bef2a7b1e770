// Package analytics wraps the platform's analytics endpoints.
package analytics

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Overview is a game's aggregate analytics for a period.
type Overview struct {
	GameID   string  `json:"gameId"`
	Period   string  `json:"period"`
	DAU      int     `json:"dau"`
	MAU      int     `json:"mau"`
	NewUsers int     `json:"newUsers"`
	Sessions int     `json:"sessions"`
	Revenue  float64 `json:"revenue"`
}

// EventSummary is the aggregate for one tracked event name.
type EventSummary struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Uniques int    `json:"uniques"`
}

// Realtime is a point-in-time snapshot of live activity.
type Realtime struct {
	GameID            string    `json:"gameId"`
	ActiveUsers       int       `json:"activeUsers"`
	SessionsPerMinute float64   `json:"sessionsPerMinute"`
	Timestamp         time.Time `json:"timestamp,omitempty"`
}

type eventsResponse struct {
	Events []EventSummary `json:"events"`
}

// Service calls the platform's analytics endpoints.
type Service struct {
	api *api.Client
}

// New creates an analytics service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// GetOverview returns aggregate metrics for a game over a period like "7d".
func (s *Service) GetOverview(ctx context.Context, gameID, period string) (*Overview, error) {
	path := fmt.Sprintf("/v1/games/%s/analytics/overview", gameID)
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}
	var result Overview
	if err := s.api.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetEvents returns per-event aggregates, optionally filtered by event name.
func (s *Service) GetEvents(ctx context.Context, gameID, name, period string) ([]EventSummary, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	if period != "" {
		q.Set("period", period)
	}
	path := fmt.Sprintf("/v1/games/%s/analytics/events", gameID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var result eventsResponse
	if err := s.api.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Events, nil
}

// GetRealtime returns the current live-activity snapshot.
func (s *Service) GetRealtime(ctx context.Context, gameID string) (*Realtime, error) {
	var result Realtime
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/games/%s/analytics/realtime", gameID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Package builds wraps the platform's build endpoints.
package builds

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Build is a platform build record.
type Build struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Version   string    `json:"version"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Terminal build states; polling stops once one is reached.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Done reports whether the build reached a terminal state.
func (b *Build) Done() bool {
	switch b.Status {
	case StatusSucceeded, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// CreateParams are the fields for a new build.
type CreateParams struct {
	Version string `json:"version,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Path    string `json:"path,omitempty"`
}

// LogChunk is one page of build log output.
type LogChunk struct {
	Lines     []string `json:"lines"`
	Cursor    string   `json:"cursor"`
	Completed bool     `json:"completed"`
}

type listResponse struct {
	Builds []Build `json:"builds"`
}

// Service calls the platform's build endpoints.
type Service struct {
	api *api.Client
}

// New creates a builds service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// Create queues a new build for a game.
func (s *Service) Create(ctx context.Context, gameID string, params CreateParams) (*Build, error) {
	var result Build
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/games/%s/builds", gameID), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns a game's builds, newest first.
func (s *Service) List(ctx context.Context, gameID string) ([]Build, error) {
	var result listResponse
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/games/%s/builds", gameID), &result); err != nil {
		return nil, err
	}
	return result.Builds, nil
}

// Latest returns a game's most recent build.
func (s *Service) Latest(ctx context.Context, gameID string) (*Build, error) {
	var result Build
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/games/%s/builds/latest", gameID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches one build.
func (s *Service) Get(ctx context.Context, id string) (*Build, error) {
	var result Build
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/builds/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logs fetches log lines after the given cursor. An empty cursor starts from
// the beginning.
func (s *Service) Logs(ctx context.Context, id, after string) (*LogChunk, error) {
	path := fmt.Sprintf("/v1/builds/%s/logs", id)
	if after != "" {
		path += "?after=" + url.QueryEscape(after)
	}
	var result LogChunk
	if err := s.api.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

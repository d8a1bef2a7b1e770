// Package games wraps the platform's game endpoints.
package games

import (
	"context"
	"fmt"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Game is a platform game record.
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Platform    string    `json:"platform"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// CreateParams are the fields for a new game.
type CreateParams struct {
	Name        string `json:"name"`
	Platform    string `json:"platform,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateParams are the mutable game fields. Empty fields are left unchanged.
type UpdateParams struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

type listResponse struct {
	Games []Game `json:"games"`
}

// Service calls the platform's game endpoints.
type Service struct {
	api *api.Client
}

// New creates a games service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// Create registers a new game.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Game, error) {
	var result Game
	if err := s.api.Post(ctx, "/v1/games", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns all games visible to the caller.
func (s *Service) List(ctx context.Context) ([]Game, error) {
	var result listResponse
	if err := s.api.Get(ctx, "/v1/games", &result); err != nil {
		return nil, err
	}
	return result.Games, nil
}

// Get fetches one game.
func (s *Service) Get(ctx context.Context, id string) (*Game, error) {
	var result Game
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/games/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Update patches mutable game fields.
func (s *Service) Update(ctx context.Context, id string, params UpdateParams) (*Game, error) {
	var result Game
	if err := s.api.Patch(ctx, fmt.Sprintf("/v1/games/%s", id), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a game.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, fmt.Sprintf("/v1/games/%s", id))
}

// Package deployments wraps the platform's deployment endpoints.
package deployments

import (
	"context"
	"fmt"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Deployment is a platform deployment record.
type Deployment struct {
	ID          string    `json:"id"`
	BuildID     string    `json:"buildId"`
	GameID      string    `json:"gameId,omitempty"`
	Environment string    `json:"environment"`
	Status      string    `json:"status"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type listResponse struct {
	Deployments []Deployment `json:"deployments"`
}

// Service calls the platform's deployment endpoints.
type Service struct {
	api *api.Client
}

// New creates a deployments service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// Start rolls out a build to an environment.
func (s *Service) Start(ctx context.Context, buildID, environment string) (*Deployment, error) {
	req := map[string]string{"environment": environment}
	var result Deployment
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/builds/%s/deployments", buildID), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns a game's deployments.
func (s *Service) List(ctx context.Context, gameID string) ([]Deployment, error) {
	var result listResponse
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/games/%s/deployments", gameID), &result); err != nil {
		return nil, err
	}
	return result.Deployments, nil
}

// Get fetches one deployment.
func (s *Service) Get(ctx context.Context, id string) (*Deployment, error) {
	var result Deployment
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/deployments/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Stop takes a deployment out of rotation.
func (s *Service) Stop(ctx context.Context, id string) (*Deployment, error) {
	var result Deployment
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/deployments/%s/stop", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Package ads wraps the platform's ad-campaign endpoints.
package ads

import (
	"context"
	"fmt"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Campaign is an ad campaign record.
type Campaign struct {
	ID        string    `json:"id"`
	GameID    string    `json:"gameId"`
	Name      string    `json:"name"`
	Budget    float64   `json:"budget,omitempty"`
	CPM       float64   `json:"cpm,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Stats are aggregate campaign metrics.
type Stats struct {
	CampaignID  string  `json:"campaignId"`
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	CTR         float64 `json:"ctr"`
	Spend       float64 `json:"spend"`
}

// CreateParams are the fields for a new campaign.
type CreateParams struct {
	GameID string  `json:"gameId"`
	Name   string  `json:"name"`
	Budget float64 `json:"budget,omitempty"`
	CPM    float64 `json:"cpm,omitempty"`
}

type listResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

// Service calls the platform's ad endpoints.
type Service struct {
	api *api.Client
}

// New creates an ads service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// CreateCampaign registers a new ad campaign.
func (s *Service) CreateCampaign(ctx context.Context, params CreateParams) (*Campaign, error) {
	var result Campaign
	if err := s.api.Post(ctx, "/v1/ads/campaigns", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListCampaigns returns all campaigns visible to the caller.
func (s *Service) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	var result listResponse
	if err := s.api.Get(ctx, "/v1/ads/campaigns", &result); err != nil {
		return nil, err
	}
	return result.Campaigns, nil
}

// GetCampaign fetches one campaign.
func (s *Service) GetCampaign(ctx context.Context, id string) (*Campaign, error) {
	var result Campaign
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/ads/campaigns/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Pause suspends delivery for a campaign.
func (s *Service) Pause(ctx context.Context, id string) (*Campaign, error) {
	var result Campaign
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/ads/campaigns/%s/pause", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Resume restarts delivery for a paused campaign.
func (s *Service) Resume(ctx context.Context, id string) (*Campaign, error) {
	var result Campaign
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/ads/campaigns/%s/resume", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStats returns aggregate metrics for a campaign.
func (s *Service) GetStats(ctx context.Context, id string) (*Stats, error) {
	var result Stats
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/ads/campaigns/%s/stats", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Package assets wraps the platform's asset and minting endpoints.
package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Asset is a minted (or minting) platform asset.
type Asset struct {
	ID        string         `json:"id"`
	GameID    string         `json:"gameId"`
	Name      string         `json:"name"`
	Owner     string         `json:"owner"`
	Amount    int            `json:"amount,omitempty"`
	TokenID   string         `json:"tokenId,omitempty"`
	TxHash    string         `json:"txHash,omitempty"`
	Status    string         `json:"status"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
}

// MintParams are the fields for a mint request.
type MintParams struct {
	GameID    string         `json:"gameId"`
	Name      string         `json:"name"`
	Recipient string         `json:"recipient"`
	Amount    int            `json:"amount,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type listResponse struct {
	Assets []Asset `json:"assets"`
}

// Service calls the platform's asset endpoints.
type Service struct {
	api *api.Client
}

// New creates an assets service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// Mint requests a new asset mint. Minting is asynchronous; the returned
// asset starts in a pending status.
func (s *Service) Mint(ctx context.Context, params MintParams) (*Asset, error) {
	var result Asset
	if err := s.api.Post(ctx, "/v1/assets/mint", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns a game's assets.
func (s *Service) List(ctx context.Context, gameID string) ([]Asset, error) {
	var result listResponse
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/games/%s/assets", gameID), &result); err != nil {
		return nil, err
	}
	return result.Assets, nil
}

// Get fetches one asset.
func (s *Service) Get(ctx context.Context, id string) (*Asset, error) {
	var result Asset
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/assets/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Transfer moves an asset to another owner.
func (s *Service) Transfer(ctx context.Context, id, to string, amount int) (*Asset, error) {
	req := map[string]any{"to": to}
	if amount > 0 {
		req["amount"] = amount
	}
	var result Asset
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/assets/%s/transfer", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Burn destroys an asset (or part of a fungible amount).
func (s *Service) Burn(ctx context.Context, id string, amount int) (*Asset, error) {
	var req map[string]any
	if amount > 0 {
		req = map[string]any{"amount": amount}
	}
	var result Asset
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/assets/%s/burn", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

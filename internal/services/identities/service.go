// Package identities wraps the platform's player-identity endpoints.
package identities

import (
	"context"
	"fmt"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Wallet is an on-chain wallet linked to an identity.
type Wallet struct {
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

// Identity is a platform player identity.
type Identity struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	External    string    `json:"external,omitempty"`
	Wallets     []Wallet  `json:"wallets,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type listResponse struct {
	Identities []Identity `json:"identities"`
}

// Service calls the platform's identity endpoints.
type Service struct {
	api *api.Client
}

// New creates an identities service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// Create registers a new identity.
func (s *Service) Create(ctx context.Context, displayName, external string) (*Identity, error) {
	req := map[string]string{"displayName": displayName}
	if external != "" {
		req["external"] = external
	}
	var result Identity
	if err := s.api.Post(ctx, "/v1/identities", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns all identities for the caller's games.
func (s *Service) List(ctx context.Context) ([]Identity, error) {
	var result listResponse
	if err := s.api.Get(ctx, "/v1/identities", &result); err != nil {
		return nil, err
	}
	return result.Identities, nil
}

// Get fetches one identity.
func (s *Service) Get(ctx context.Context, id string) (*Identity, error) {
	var result Identity
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/identities/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes an identity.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, fmt.Sprintf("/v1/identities/%s", id))
}

// LinkWallet attaches an on-chain wallet to an identity.
func (s *Service) LinkWallet(ctx context.Context, id, address, chain string) (*Identity, error) {
	req := map[string]string{"address": address, "chain": chain}
	var result Identity
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/identities/%s/wallets", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

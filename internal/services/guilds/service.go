// Package guilds wraps the platform's guild endpoints.
package guilds

import (
	"context"
	"fmt"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// Guild is a platform guild record.
type Guild struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tag         string    `json:"tag,omitempty"`
	OwnerID     string    `json:"ownerId"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// Member is one guild member.
type Member struct {
	IdentityID  string    `json:"identityId"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt,omitempty"`
}

// Invite is a pending guild invitation.
type Invite struct {
	ID         string `json:"id"`
	GuildID    string `json:"guildId"`
	IdentityID string `json:"identityId"`
	Status     string `json:"status"`
}

type listResponse struct {
	Guilds []Guild `json:"guilds"`
}

type membersResponse struct {
	Members []Member `json:"members"`
}

// Service calls the platform's guild endpoints.
type Service struct {
	api *api.Client
}

// New creates a guilds service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// Create registers a new guild owned by the caller's identity.
func (s *Service) Create(ctx context.Context, name, tag string) (*Guild, error) {
	req := map[string]string{"name": name}
	if tag != "" {
		req["tag"] = tag
	}
	var result Guild
	if err := s.api.Post(ctx, "/v1/guilds", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns all guilds visible to the caller.
func (s *Service) List(ctx context.Context) ([]Guild, error) {
	var result listResponse
	if err := s.api.Get(ctx, "/v1/guilds", &result); err != nil {
		return nil, err
	}
	return result.Guilds, nil
}

// Get fetches one guild.
func (s *Service) Get(ctx context.Context, id string) (*Guild, error) {
	var result Guild
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/guilds/%s", id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Members returns a guild's member list.
func (s *Service) Members(ctx context.Context, id string) ([]Member, error) {
	var result membersResponse
	if err := s.api.Get(ctx, fmt.Sprintf("/v1/guilds/%s/members", id), &result); err != nil {
		return nil, err
	}
	return result.Members, nil
}

// Invite asks an identity to join the guild.
func (s *Service) Invite(ctx context.Context, id, identityID string) (*Invite, error) {
	req := map[string]string{"identityId": identityID}
	var result Invite
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/guilds/%s/invites", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Transfer hands guild ownership to another member.
func (s *Service) Transfer(ctx context.Context, id, toIdentityID string) (*Guild, error) {
	req := map[string]string{"toIdentityId": toIdentityID}
	var result Guild
	if err := s.api.Post(ctx, fmt.Sprintf("/v1/guilds/%s/transfer", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

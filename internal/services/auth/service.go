// Package auth wraps the platform's authentication endpoints.
package auth

import (
	"context"
	"time"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
)

// User is a platform account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Studio    string    `json:"studio,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Service calls the platform's auth endpoints.
type Service struct {
	api *api.Client
}

// New creates an auth service.
func New(client *api.Client) *Service {
	return &Service{api: client}
}

// Login exchanges credentials for a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	req := map[string]string{"email": email, "password": password}
	var result Session
	if err := s.api.Post(ctx, "/v1/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates a new account and returns its first session.
func (s *Service) Register(ctx context.Context, email, password, studio string) (*Session, error) {
	req := map[string]string{"email": email, "password": password}
	if studio != "" {
		req["studio"] = studio
	}
	var result Session
	if err := s.api.Post(ctx, "/v1/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout invalidates the current token server-side.
func (s *Service) Logout(ctx context.Context) error {
	return s.api.Post(ctx, "/v1/auth/logout", nil, nil)
}

// Me returns the account behind the current token.
func (s *Service) Me(ctx context.Context) (*User, error) {
	var result User
	if err := s.api.Get(ctx, "/v1/auth/me", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

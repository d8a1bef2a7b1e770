package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/auth"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/testutil"
)

func TestLogin(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	svc := auth.New(api.NewClient(ps.URL, "", nil))

	session, err := svc.Login(context.Background(), "dev@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, testutil.TestToken, session.Token)
	assert.Equal(t, "dev@example.com", session.User.Email)

	last := ps.LastRequest()
	require.NotNil(t, last)
	assert.Equal(t, "/v1/auth/login", last.Path)
	assert.Equal(t, "hunter22", last.Body["password"])
}

func TestLoginBadCredentials(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	svc := auth.New(api.NewClient(ps.URL, "", nil))

	_, err := svc.Login(context.Background(), "dev@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email or password is incorrect")
}

func TestMeRequiresToken(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	_, err := auth.New(api.NewClient(ps.URL, "", nil)).Me(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or missing token")

	user, err := auth.New(api.NewClient(ps.URL, testutil.TestToken, nil)).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", user.Email)
}

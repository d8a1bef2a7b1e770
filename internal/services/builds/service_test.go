package builds_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/builds"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/testutil"
)

func newService(t *testing.T) (*builds.Service, *testutil.PlatformServer) {
	ps := testutil.NewPlatformServer(t)
	return builds.New(api.NewClient(ps.URL, testutil.TestToken, nil)), ps
}

func TestCreate(t *testing.T) {
	svc, ps := newService(t)

	build, err := svc.Create(context.Background(), "g-1", builds.CreateParams{Version: "0.3.0", Notes: "balance pass"})
	require.NoError(t, err)
	assert.Equal(t, "b-1", build.ID)
	assert.Equal(t, "g-1", build.GameID)
	assert.Equal(t, "queued", build.Status)

	last := ps.LastRequest()
	require.NotNil(t, last)
	assert.Equal(t, "/v1/games/g-1/builds", last.Path)
	assert.Equal(t, "0.3.0", last.Body["version"])
	assert.Equal(t, "balance pass", last.Body["notes"])
}

func TestListAndLatest(t *testing.T) {
	svc, _ := newService(t)

	list, err := svc.List(context.Background(), "g-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b-2", list[0].ID)

	latest, err := svc.Latest(context.Background(), "g-1")
	require.NoError(t, err)
	assert.Equal(t, "b-2", latest.ID)
}

func TestLogsCursorPaging(t *testing.T) {
	svc, ps := newService(t)

	first, err := svc.Logs(context.Background(), "b-1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"compiling...", "bundling assets"}, first.Lines)
	assert.False(t, first.Completed)

	second, err := svc.Logs(context.Background(), "b-1", first.Cursor)
	require.NoError(t, err)
	assert.Equal(t, []string{"upload complete"}, second.Lines)
	assert.True(t, second.Completed)

	reqs := ps.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/v1/builds/b-1/logs", reqs[1].Path)
}

func TestDone(t *testing.T) {
	assert.True(t, (&builds.Build{Status: builds.StatusSucceeded}).Done())
	assert.True(t, (&builds.Build{Status: builds.StatusFailed}).Done())
	assert.False(t, (&builds.Build{Status: "running"}).Done())
}

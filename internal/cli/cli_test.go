package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/api"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/config"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/project"
	analyticssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/analytics"
	buildssvc "github.com/GameBuildOffical/gamebuild-sdk-cli/internal/services/builds"
	"github.com/GameBuildOffical/gamebuild-sdk-cli/internal/testutil"
)

// runCommand executes the command tree in-process against the fake platform.
func runCommand(t *testing.T, ps *testutil.PlatformServer, cfgPath, stdin string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("GAMEBUILD_TOKEN", "")
	t.Setenv("GAMEBUILD_API_URL", "")

	cmd := NewRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}

	full := []string{"--config", cfgPath}
	if ps != nil {
		full = append(full, "--api-url", ps.URL)
	}
	full = append(full, args...)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

// authedConfig writes a config file holding the fake platform's token.
func authedConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	st, err := config.Open(path)
	require.NoError(t, err)
	require.NoError(t, st.SetValue(config.KeyToken, testutil.TestToken))
	require.NoError(t, st.Save())
	return path
}

func TestUnauthenticatedCommandPrintsNoticeWithoutAPICall(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	stdout, stderr, err := runCommand(t, ps, emptyConfig(t), "", "game", "list")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, notAuthenticatedMsg)
	assert.Zero(t, ps.RequestCount())
}

func TestLoginStoresToken(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	cfg := emptyConfig(t)

	stdout, _, err := runCommand(t, ps, cfg, "",
		"auth", "login", "--email", "dev@example.com", "--password", "hunter2")

	require.NoError(t, err)
	assert.Contains(t, stdout, "dev@example.com")

	st, err := config.Open(cfg)
	require.NoError(t, err)
	val, err := st.Get(config.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, testutil.TestToken, val)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	_, _, err := runCommand(t, ps, emptyConfig(t), "",
		"auth", "login", "--email", "dev@example.com", "--password", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "email or password is incorrect")
}

func TestLoginPromptsForMissingCredentials(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	stdout, _, err := runCommand(t, ps, emptyConfig(t), "dev@example.com\nhunter2\n",
		"auth", "login")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Email: ")
	assert.Contains(t, stdout, "dev@example.com")

	req := ps.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "dev@example.com", req.Body["email"])
	assert.Equal(t, "hunter2", req.Body["password"])
}

func TestRegisterReadsEachPromptedLine(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	// Three prompts answered from one piped stdin; no line may be lost
	// between reads.
	_, _, err := runCommand(t, ps, emptyConfig(t), "dev@example.com\nhunter2\nExample Studio\n",
		"auth", "register")

	require.NoError(t, err)
	req := ps.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/v1/auth/register", req.Path)
	assert.Equal(t, "dev@example.com", req.Body["email"])
	assert.Equal(t, "hunter2", req.Body["password"])
	assert.Equal(t, "Example Studio", req.Body["studio"])
}

func TestNonInteractiveFailsOnMissingArgument(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	_, _, err := runCommand(t, ps, emptyConfig(t), "",
		"auth", "login", "--non-interactive")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email is required")
	assert.Zero(t, ps.RequestCount())
}

func TestLogoutDropsStoredToken(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	cfg := authedConfig(t)

	stdout, _, err := runCommand(t, ps, cfg, "", "auth", "logout")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	st, err := config.Open(cfg)
	require.NoError(t, err)
	_, err = st.Get(config.KeyToken)
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestWhoamiRejectsStaleToken(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	cfg := emptyConfig(t)
	st, err := config.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, st.SetValue(config.KeyToken, "tok_stale"))
	require.NoError(t, st.Save())

	_, _, err = runCommand(t, ps, cfg, "", "auth", "whoami")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid or missing token")
}

func TestGameListJSONOutput(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	stdout, _, err := runCommand(t, ps, authedConfig(t), "", "game", "list", "-o", "json")

	require.NoError(t, err)
	var games []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &games))
	require.Len(t, games, 2)
	assert.Equal(t, "g-1", games[0]["id"])
}

func TestGameDeleteNeedsConfirmation(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	cfg := authedConfig(t)

	stdout, _, err := runCommand(t, ps, cfg, "n\n", "game", "delete", "g-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Aborted")
	assert.Zero(t, ps.RequestCount())

	_, _, err = runCommand(t, ps, cfg, "", "game", "delete", "g-1", "--yes")
	require.NoError(t, err)
	req := ps.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.Equal(t, "/v1/games/g-1", req.Path)
}

func TestInitLinksDirectoryAndBuildUsesMarker(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	cfg := authedConfig(t)
	t.Chdir(t.TempDir())

	stdout, _, err := runCommand(t, ps, cfg, "", "init", "--game", "g-1", "--build-path", "./dist")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Linked to game")

	marker, err := project.Load(".")
	require.NoError(t, err)
	assert.Equal(t, "g-1", marker.GameID)
	assert.Equal(t, "./dist", marker.BuildPath)
	assert.Equal(t, "webgl", marker.Platform)

	// Relink is refused without --force.
	_, _, err = runCommand(t, ps, cfg, "", "init", "--game", "g-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already linked")

	// Build commands pick up the linked game.
	_, _, err = runCommand(t, ps, cfg, "", "build", "create", "--version", "1.0.0")
	require.NoError(t, err)
	req := ps.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/v1/games/g-1/builds", req.Path)
	assert.Equal(t, "1.0.0", req.Body["version"])
}

func TestInitCreatesGameAndLinks(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	t.Chdir(t.TempDir())

	_, _, err := runCommand(t, ps, authedConfig(t), "\n", "init", "--create", "New Game")
	require.NoError(t, err)

	reqs := ps.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/v1/games", reqs[0].Path)
	assert.Equal(t, "New Game", reqs[0].Body["name"])

	marker, err := project.Load(".")
	require.NoError(t, err)
	assert.Equal(t, "g-1", marker.GameID)
}

func TestBuildCommandsWithoutLinkPrintNotice(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	t.Chdir(t.TempDir())

	stdout, stderr, err := runCommand(t, ps, authedConfig(t), "", "build", "list")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, notLinkedMsg)
	assert.Zero(t, ps.RequestCount())
}

func TestDeployBareRunsStart(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	cfg := authedConfig(t)

	for _, args := range [][]string{
		{"deploy", "--build", "b-2"},
		{"deploy", "start", "--build", "b-2"},
	} {
		stdout, _, err := runCommand(t, ps, cfg, "", args...)
		require.NoError(t, err)
		assert.Contains(t, stdout, "d-1")

		req := ps.LastRequest()
		require.NotNil(t, req)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/v1/builds/b-2/deployments", req.Path)
		assert.Equal(t, "production", req.Body["environment"])
	}
}

func TestDeployDefaultsToLatestBuild(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	_, _, err := runCommand(t, ps, authedConfig(t), "", "deploy", "--game", "g-1", "--env", "staging")
	require.NoError(t, err)

	reqs := ps.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "/v1/games/g-1/builds/latest", reqs[0].Path)
	assert.Equal(t, "/v1/builds/b-2/deployments", reqs[1].Path)
	assert.Equal(t, "staging", reqs[1].Body["environment"])
}

func TestConfigSetGetDelete(t *testing.T) {
	cfg := emptyConfig(t)

	_, _, err := runCommand(t, nil, cfg, "", "config", "set", "build.defaultEnv", "staging")
	require.NoError(t, err)

	stdout, _, err := runCommand(t, nil, cfg, "", "config", "get", "build.defaultEnv")
	require.NoError(t, err)
	assert.Equal(t, "staging\n", stdout)

	// JSON values keep their type.
	_, _, err = runCommand(t, nil, cfg, "", "config", "set", "build.parallel", "4")
	require.NoError(t, err)
	stdout, _, err = runCommand(t, nil, cfg, "", "config", "get", "build.parallel")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)

	_, _, err = runCommand(t, nil, cfg, "", "config", "delete", "build.defaultEnv")
	require.NoError(t, err)
	_, _, err = runCommand(t, nil, cfg, "", "config", "get", "build.defaultEnv")
	require.Error(t, err)

	stdout, _, err = runCommand(t, nil, cfg, "", "config", "delete", "build.defaultEnv")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No value at build.defaultEnv")
}

func TestConfigMasksSensitiveValues(t *testing.T) {
	cfg := authedConfig(t)

	stdout, _, err := runCommand(t, nil, cfg, "", "config", "get", "auth.token")
	require.NoError(t, err)
	assert.NotContains(t, stdout, testutil.TestToken)
	assert.Contains(t, stdout, "tok_")

	stdout, _, err = runCommand(t, nil, cfg, "", "config", "get", "auth.token", "--show-secrets")
	require.NoError(t, err)
	assert.Contains(t, stdout, testutil.TestToken)

	stdout, _, err = runCommand(t, nil, cfg, "", "config", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "auth.token = ")
	assert.NotContains(t, stdout, testutil.TestToken)
}

func TestConfigPathPrintsLocation(t *testing.T) {
	cfg := emptyConfig(t)

	stdout, _, err := runCommand(t, nil, cfg, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfg+"\n", stdout)
}

func TestGuildInviteSendsIdentity(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	stdout, _, err := runCommand(t, ps, authedConfig(t), "",
		"guild", "invite", "gd-1", "--identity", "i-2")

	require.NoError(t, err)
	assert.Contains(t, stdout, "inv-1")

	req := ps.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/v1/guilds/gd-1/invites", req.Path)
	assert.Equal(t, "i-2", req.Body["identityId"])
}

func TestAdCampaignPause(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	stdout, _, err := runCommand(t, ps, authedConfig(t), "",
		"ad", "campaign", "pause", "c-1")

	require.NoError(t, err)
	assert.Contains(t, stdout, "paused")

	req := ps.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/v1/ads/campaigns/c-1/pause", req.Path)
}

func TestAnalyticsOverviewPeriodFlag(t *testing.T) {
	ps := testutil.NewPlatformServer(t)

	stdout, _, err := runCommand(t, ps, authedConfig(t), "",
		"analytics", "overview", "--game", "g-1", "--period", "30d")

	require.NoError(t, err)
	assert.Contains(t, stdout, "30d")
	assert.Contains(t, stdout, "DAU: 120")
}

func TestFollowLogsStopsOnCompletion(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	client := api.NewClient(ps.URL, testutil.TestToken, nil)
	builds := buildssvc.New(client)

	var out bytes.Buffer
	err := followLogs(context.Background(), &out, builds, "b-1", time.Millisecond)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{"compiling...", "bundling assets", "upload complete"}, lines)
}

func TestFollowLogsStopsWhenBuildFinishes(t *testing.T) {
	// Log stream that never reports completion, for a build already in a
	// terminal state.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/logs") {
			fmt.Fprint(w, `{"lines":[],"cursor":"","completed":false}`)
			return
		}
		fmt.Fprint(w, `{"id":"b-9","gameId":"g-1","version":"0.3.0","status":"failed"}`)
	}))
	defer srv.Close()

	builds := buildssvc.New(api.NewClient(srv.URL, testutil.TestToken, nil))

	var out bytes.Buffer
	err := followLogs(context.Background(), &out, builds, "b-9", time.Millisecond)

	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestPollRealtimeStopsOnCancel(t *testing.T) {
	ps := testutil.NewPlatformServer(t)
	client := api.NewClient(ps.URL, testutil.TestToken, nil)
	analytics := analyticssvc.New(client)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	err := pollRealtime(ctx, &out, analytics, "g-1", time.Hour)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "active users: 17")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, nil, emptyConfig(t), "", "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "gamebuild dev")
}

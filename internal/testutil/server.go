// Package testutil provides an in-memory stand-in for the platform API,
// routed the same way the real backend is.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

// TestToken is the bearer token the fake platform accepts.
const TestToken = "tok_live_0123456789abcdef"

// RecordedRequest captures one call the fake platform received.
type RecordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// PlatformServer is a fake platform API for tests. Handlers return canned
// payloads shaped like the real backend's responses and every request is
// recorded for assertions.
type PlatformServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest

	// FailWith forces every subsequent request to fail with this error
	// message and status 500.
	FailWith string
}

// NewPlatformServer starts a fake platform API. The server is shut down when
// the test finishes.
func NewPlatformServer(t interface{ Cleanup(func()) }) *PlatformServer {
	ps := &PlatformServer{}
	ps.Server = httptest.NewServer(ps.router())
	t.Cleanup(ps.Close)
	return ps
}

// Requests returns a copy of all recorded requests.
func (ps *PlatformServer) Requests() []RecordedRequest {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	out := make([]RecordedRequest, len(ps.requests))
	copy(out, ps.requests)
	return out
}

// RequestCount returns how many requests reached the fake platform.
func (ps *PlatformServer) RequestCount() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.requests)
}

// LastRequest returns the most recent request, or nil.
func (ps *PlatformServer) LastRequest() *RecordedRequest {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.requests) == 0 {
		return nil
	}
	req := ps.requests[len(ps.requests)-1]
	return &req
}

func (ps *PlatformServer) router() http.Handler {
	r := mux.NewRouter()

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.Use(ps.record)

	// Auth routes (no bearer token required)
	v1.HandleFunc("/auth/login", ps.login).Methods(http.MethodPost)
	v1.HandleFunc("/auth/register", ps.register).Methods(http.MethodPost)

	protected := v1.NewRoute().Subrouter()
	protected.Use(ps.auth)

	protected.HandleFunc("/auth/logout", noContent).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", ps.me).Methods(http.MethodGet)

	// Games
	protected.HandleFunc("/games", ps.createGame).Methods(http.MethodPost)
	protected.HandleFunc("/games", ps.listGames).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}", ps.getGame).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}", ps.updateGame).Methods(http.MethodPatch)
	protected.HandleFunc("/games/{id}", noContent).Methods(http.MethodDelete)

	// Builds
	protected.HandleFunc("/games/{id}/builds", ps.createBuild).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/builds", ps.listBuilds).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}/builds/latest", ps.getBuild).Methods(http.MethodGet)
	protected.HandleFunc("/builds/{id}", ps.getBuild).Methods(http.MethodGet)
	protected.HandleFunc("/builds/{id}/logs", ps.buildLogs).Methods(http.MethodGet)

	// Deployments
	protected.HandleFunc("/builds/{id}/deployments", ps.startDeployment).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/deployments", ps.listDeployments).Methods(http.MethodGet)
	protected.HandleFunc("/deployments/{id}", ps.getDeployment).Methods(http.MethodGet)
	protected.HandleFunc("/deployments/{id}/stop", ps.stopDeployment).Methods(http.MethodPost)

	// Assets
	protected.HandleFunc("/assets/mint", ps.mintAsset).Methods(http.MethodPost)
	protected.HandleFunc("/games/{id}/assets", ps.listAssets).Methods(http.MethodGet)
	protected.HandleFunc("/assets/{id}", ps.getAsset).Methods(http.MethodGet)
	protected.HandleFunc("/assets/{id}/transfer", ps.transferAsset).Methods(http.MethodPost)
	protected.HandleFunc("/assets/{id}/burn", ps.burnAsset).Methods(http.MethodPost)

	// Identities
	protected.HandleFunc("/identities", ps.createIdentity).Methods(http.MethodPost)
	protected.HandleFunc("/identities", ps.listIdentities).Methods(http.MethodGet)
	protected.HandleFunc("/identities/{id}", ps.getIdentity).Methods(http.MethodGet)
	protected.HandleFunc("/identities/{id}", noContent).Methods(http.MethodDelete)
	protected.HandleFunc("/identities/{id}/wallets", ps.linkWallet).Methods(http.MethodPost)

	// Guilds
	protected.HandleFunc("/guilds", ps.createGuild).Methods(http.MethodPost)
	protected.HandleFunc("/guilds", ps.listGuilds).Methods(http.MethodGet)
	protected.HandleFunc("/guilds/{id}", ps.getGuild).Methods(http.MethodGet)
	protected.HandleFunc("/guilds/{id}/members", ps.guildMembers).Methods(http.MethodGet)
	protected.HandleFunc("/guilds/{id}/invites", ps.guildInvite).Methods(http.MethodPost)
	protected.HandleFunc("/guilds/{id}/transfer", ps.guildTransfer).Methods(http.MethodPost)

	// Ads
	protected.HandleFunc("/ads/campaigns", ps.createCampaign).Methods(http.MethodPost)
	protected.HandleFunc("/ads/campaigns", ps.listCampaigns).Methods(http.MethodGet)
	protected.HandleFunc("/ads/campaigns/{id}", ps.getCampaign).Methods(http.MethodGet)
	protected.HandleFunc("/ads/campaigns/{id}/pause", ps.getCampaign).Methods(http.MethodPost)
	protected.HandleFunc("/ads/campaigns/{id}/resume", ps.getCampaign).Methods(http.MethodPost)
	protected.HandleFunc("/ads/campaigns/{id}/stats", ps.campaignStats).Methods(http.MethodGet)

	// Analytics
	protected.HandleFunc("/games/{id}/analytics/overview", ps.analyticsOverview).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}/analytics/events", ps.analyticsEvents).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}/analytics/realtime", ps.analyticsRealtime).Methods(http.MethodGet)

	return r
}

func (ps *PlatformServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		ps.mu.Lock()
		ps.requests = append(ps.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Body:   body,
		})
		fail := ps.FailWith
		ps.mu.Unlock()

		if fail != "" {
			writeError(w, http.StatusInternalServerError, "internal", fail)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (ps *PlatformServer) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if got != TestToken {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid or missing token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// lastBody returns the body of the request currently being handled; the
// recording middleware has already consumed and stored it.
func (ps *PlatformServer) lastBody() map[string]any {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if len(ps.requests) == 0 {
		return nil
	}
	return ps.requests[len(ps.requests)-1].Body
}

func str(body map[string]any, key, fallback string) string {
	if body != nil {
		if v, ok := body[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

func (ps *PlatformServer) login(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	if str(body, "password", "") == "wrong" {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": TestToken,
		"user": map[string]any{
			"id":    "u-1",
			"email": str(body, "email", "dev@example.com"),
		},
	})
}

func (ps *PlatformServer) register(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"token": TestToken,
		"user": map[string]any{
			"id":     "u-2",
			"email":  str(body, "email", "dev@example.com"),
			"studio": str(body, "studio", ""),
		},
	})
}

func (ps *PlatformServer) me(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     "u-1",
		"email":  "dev@example.com",
		"studio": "Example Studio",
	})
}

func (ps *PlatformServer) createGame(w http.ResponseWriter, _ *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       "g-1",
		"name":     str(body, "name", "My Game"),
		"platform": str(body, "platform", "webgl"),
		"status":   "active",
	})
}

func (ps *PlatformServer) listGames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"games": []map[string]any{
			{"id": "g-1", "name": "My Game", "platform": "webgl", "status": "active"},
			{"id": "g-2", "name": "Other Game", "platform": "android", "status": "archived"},
		},
	})
}

func (ps *PlatformServer) getGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "missing" {
		writeError(w, http.StatusNotFound, "not_found", "game not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id": id, "name": "My Game", "platform": "webgl", "status": "active",
	})
}

func (ps *PlatformServer) updateGame(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       mux.Vars(r)["id"],
		"name":     str(body, "name", "My Game"),
		"platform": "webgl",
		"status":   "active",
	})
}

func (ps *PlatformServer) createBuild(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      "b-1",
		"gameId":  mux.Vars(r)["id"],
		"version": str(body, "version", "0.1.0"),
		"status":  "queued",
	})
}

func (ps *PlatformServer) listBuilds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"builds": []map[string]any{
			{"id": "b-2", "gameId": mux.Vars(r)["id"], "version": "0.2.0", "status": "succeeded"},
			{"id": "b-1", "gameId": mux.Vars(r)["id"], "version": "0.1.0", "status": "succeeded"},
		},
	})
}

func (ps *PlatformServer) getBuild(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" || strings.Contains(r.URL.Path, "/builds/latest") {
		id = "b-2"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id": id, "gameId": "g-1", "version": "0.2.0", "status": "succeeded",
	})
}

func (ps *PlatformServer) buildLogs(w http.ResponseWriter, r *http.Request) {
	after := r.URL.Query().Get("after")
	if after == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"lines":     []string{"compiling...", "bundling assets"},
			"cursor":    "c-1",
			"completed": false,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lines":     []string{"upload complete"},
		"cursor":    "c-2",
		"completed": true,
	})
}

func (ps *PlatformServer) startDeployment(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          "d-1",
		"buildId":     mux.Vars(r)["id"],
		"environment": str(body, "environment", "production"),
		"status":      "rolling_out",
		"url":         "https://play.gamebuild.io/g-1",
	})
}

func (ps *PlatformServer) listDeployments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"deployments": []map[string]any{
			{"id": "d-1", "buildId": "b-2", "environment": "production", "status": "live"},
		},
	})
}

func (ps *PlatformServer) getDeployment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "buildId": "b-2", "environment": "production", "status": "live",
	})
}

func (ps *PlatformServer) stopDeployment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "buildId": "b-2", "environment": "production", "status": "stopped",
	})
}

func (ps *PlatformServer) mintAsset(w http.ResponseWriter, _ *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":     "a-1",
		"gameId": str(body, "gameId", "g-1"),
		"name":   str(body, "name", "Sword of Testing"),
		"owner":  str(body, "recipient", "0xabc"),
		"status": "pending",
		"txHash": "0xdeadbeef",
	})
}

func (ps *PlatformServer) listAssets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"assets": []map[string]any{
			{"id": "a-1", "gameId": mux.Vars(r)["id"], "name": "Sword of Testing", "owner": "0xabc", "status": "minted"},
		},
	})
}

func (ps *PlatformServer) getAsset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "gameId": "g-1", "name": "Sword of Testing", "owner": "0xabc", "status": "minted",
	})
}

func (ps *PlatformServer) transferAsset(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "gameId": "g-1", "name": "Sword of Testing",
		"owner": str(body, "to", "0xdef"), "status": "minted",
	})
}

func (ps *PlatformServer) burnAsset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "gameId": "g-1", "name": "Sword of Testing", "status": "burned",
	})
}

func (ps *PlatformServer) createIdentity(w http.ResponseWriter, _ *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          "i-1",
		"displayName": str(body, "displayName", "player-one"),
		"wallets":     []any{},
	})
}

func (ps *PlatformServer) listIdentities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"identities": []map[string]any{
			{"id": "i-1", "displayName": "player-one"},
		},
	})
}

func (ps *PlatformServer) getIdentity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "displayName": "player-one",
		"wallets": []map[string]any{{"address": "0xabc", "chain": "polygon"}},
	})
}

func (ps *PlatformServer) linkWallet(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "displayName": "player-one",
		"wallets": []map[string]any{
			{"address": str(body, "address", "0xabc"), "chain": str(body, "chain", "polygon")},
		},
	})
}

func (ps *PlatformServer) createGuild(w http.ResponseWriter, _ *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id": "gd-1", "name": str(body, "name", "Testers"), "tag": str(body, "tag", "TST"),
		"ownerId": "i-1", "memberCount": 1,
	})
}

func (ps *PlatformServer) listGuilds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"guilds": []map[string]any{
			{"id": "gd-1", "name": "Testers", "tag": "TST", "ownerId": "i-1", "memberCount": 3},
		},
	})
}

func (ps *PlatformServer) getGuild(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "name": "Testers", "tag": "TST", "ownerId": "i-1", "memberCount": 3,
	})
}

func (ps *PlatformServer) guildMembers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"members": []map[string]any{
			{"identityId": "i-1", "displayName": "player-one", "role": "owner"},
			{"identityId": "i-2", "displayName": "player-two", "role": "member"},
		},
	})
}

func (ps *PlatformServer) guildInvite(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id": "inv-1", "guildId": mux.Vars(r)["id"],
		"identityId": str(body, "identityId", "i-2"), "status": "pending",
	})
}

func (ps *PlatformServer) guildTransfer(w http.ResponseWriter, r *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "name": "Testers", "tag": "TST",
		"ownerId": str(body, "toIdentityId", "i-2"), "memberCount": 3,
	})
}

func (ps *PlatformServer) createCampaign(w http.ResponseWriter, _ *http.Request) {
	body := ps.lastBody()
	writeJSON(w, http.StatusCreated, map[string]any{
		"id": "c-1", "gameId": str(body, "gameId", "g-1"),
		"name": str(body, "name", "Launch"), "status": "active",
	})
}

func (ps *PlatformServer) listCampaigns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"campaigns": []map[string]any{
			{"id": "c-1", "gameId": "g-1", "name": "Launch", "status": "active"},
		},
	})
}

func (ps *PlatformServer) getCampaign(w http.ResponseWriter, r *http.Request) {
	status := "active"
	if strings.HasSuffix(r.URL.Path, "/pause") {
		status = "paused"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id": mux.Vars(r)["id"], "gameId": "g-1", "name": "Launch", "status": status,
	})
}

func (ps *PlatformServer) campaignStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"campaignId": mux.Vars(r)["id"], "impressions": 10000, "clicks": 250, "ctr": 0.025, "spend": 12.5,
	})
}

func (ps *PlatformServer) analyticsOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"gameId": mux.Vars(r)["id"],
		"period": firstNonEmpty(r.URL.Query().Get("period"), "7d"),
		"dau":    120, "mau": 900, "newUsers": 40, "sessions": 560, "revenue": 321.5,
	})
}

func (ps *PlatformServer) analyticsEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"events": []map[string]any{
			{"name": "level_complete", "count": 4200, "uniques": 300},
			{"name": "purchase", "count": 86, "uniques": 61},
		},
	})
}

func (ps *PlatformServer) analyticsRealtime(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"gameId": mux.Vars(r)["id"], "activeUsers": 17, "sessionsPerMinute": 3.5,
	})
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rohits-web03/vybr8r/internal/api/handlers"
	"github.com/rohits-web03/vybr8r/internal/api/middleware"
	"github.com/rohits-web03/vybr8r/internal/api/services"
	"github.com/rohits-web03/vybr8r/internal/config"
	"github.com/rohits-web03/vybr8r/internal/logger"
	"github.com/rohits-web03/vybr8r/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bobWallet = "0xabc0000000000000000000000000000000000001"

type testServer struct {
	*httptest.Server
	store *repositories.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.Discard()
	store := repositories.NewMemoryStore()
	_, err := store.SeedDefaults(t.Context())
	require.NoError(t, err)

	tokens := services.NewTokenIssuer("test-secret", services.DefaultTokenTTL)
	resolver := services.NewUserResolver(store, 128, time.Minute, log)

	h := handlers.New(handlers.Deps{
		Sessions:    services.NewSessions(resolver, tokens),
		Resolver:    resolver,
		Onboarding:  services.NewOnboarding(store, log),
		Interests:   store,
		Environment: "test",
		Logger:      log,
	})

	srv := httptest.NewServer(SetupRouter(RouterDeps{
		Handler:     h,
		Tokens:      tokens,
		Users:       resolver,
		AuthLimiter: middleware.NewRateLimiter(100, 100, log),
		Cors:        config.CorsConfig([]string{"http://localhost:5173"}),
		Logger:      log,
	}))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, store: store}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(resp.Body).Decode(&out)
	}
	return resp, out
}

func (s *testServer) walletAuth(t *testing.T, wallet string) (string, map[string]any) {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/api/auth/wallet-auth", "", map[string]string{"walletAddress": wallet})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	user, _ := body["user"].(map[string]any)
	require.NotNil(t, user)
	return token, user
}

func TestWalletSignInThroughOnboarding(t *testing.T) {
	srv := newTestServer(t)

	token, user := srv.walletAuth(t, bobWallet)
	assert.Equal(t, false, user["isOnboarded"])
	assert.Equal(t, bobWallet, user["walletAddress"])
	assert.Equal(t, "/placeholder.svg", user["avatar"])

	resp, body := srv.do(t, http.MethodGet, "/api/auth/onboarding-status?walletAddress="+bobWallet, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["isOnboarded"])

	resp, body = srv.do(t, http.MethodPut, "/api/users/onboarding", token, map[string]any{
		"username":  "Bob",
		"handle":    "bob",
		"interests": []string{"Music", "Unknown"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bob", body["username"])
	assert.Equal(t, "bob", body["handle"])
	assert.Equal(t, true, body["isOnboarded"])

	resp, body = srv.do(t, http.MethodGet, "/api/auth/onboarding-status?walletAddress="+bobWallet, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isOnboarded"])

	resp, body = srv.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bob", body["username"])

	resp, body = srv.do(t, http.MethodGet, "/api/users/bob", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, user["id"], body["id"])

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/interests/user/"+user["id"].(string), nil)
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	var interests []map[string]any
	require.NoError(t, json.NewDecoder(raw.Body).Decode(&interests))
	require.Len(t, interests, 1)
	assert.Equal(t, "Music", interests[0]["name"])
}

func TestWalletAuth_SameAddressSameUser(t *testing.T) {
	srv := newTestServer(t)

	first, u1 := srv.walletAuth(t, bobWallet)
	second, u2 := srv.walletAuth(t, strings.ToUpper(bobWallet))

	assert.NotEqual(t, first, second)
	assert.Equal(t, u1["id"], u2["id"])
	assert.Equal(t, 1, srv.store.Count())
}

func TestWalletAuth_Validation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"missing address", map[string]string{}, "Wallet address is required"},
		{"blank address", map[string]string{"walletAddress": "   "}, "Wallet address is required"},
		{"malformed address", map[string]string{"walletAddress": "0x123"}, "Invalid wallet address"},
		{"bad checksum", map[string]string{"walletAddress": "0x5AAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"}, "Invalid wallet address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := srv.do(t, http.MethodPost, "/api/auth/wallet-auth", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.message, body["message"])
		})
	}
	assert.Equal(t, 0, srv.store.Count())
}

func TestOnboardingStatus_Errors(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.do(t, http.MethodGet, "/api/auth/onboarding-status", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Wallet address is required", body["message"])

	resp, body = srv.do(t, http.MethodGet, "/api/auth/onboarding-status?walletAddress="+bobWallet, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["message"])
}

func TestCompleteOnboarding_HandleConflict(t *testing.T) {
	srv := newTestServer(t)

	aliceToken, _ := srv.walletAuth(t, "0x00000000000000000000000000000000000000a1")
	bobToken, bob := srv.walletAuth(t, "0x00000000000000000000000000000000000000b2")

	resp, _ := srv.do(t, http.MethodPut, "/api/users/onboarding", aliceToken, map[string]any{"username": "Alice", "handle": "alice"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := srv.do(t, http.MethodPut, "/api/users/onboarding", bobToken, map[string]any{"username": "Bob", "handle": "alice"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Handle already taken", body["message"])

	resp, body = srv.do(t, http.MethodGet, "/api/users/me", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, bob["id"], body["id"])
	assert.Nil(t, body["handle"])
	assert.Equal(t, false, body["isOnboarded"])
}

func TestCompleteOnboarding_Validation(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.walletAuth(t, bobWallet)

	resp, body := srv.do(t, http.MethodPut, "/api/users/onboarding", token, map[string]any{"handle": "bob"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs, _ := body["errors"].(map[string]any)
	assert.Equal(t, "This field is required", errs["username"])

	resp, _ = srv.do(t, http.MethodPut, "/api/users/onboarding", token, map[string]any{"username": "   ", "handle": "bob"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodPut, "/api/users/onboarding", token, map[string]any{"username": "Bob", "handle": "b!"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutes_RequireCredential(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication required", body["message"])

	resp, _ = srv.do(t, http.MethodPut, "/api/users/onboarding", "garbage", map[string]any{"username": "Bob", "handle": "bob"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPresignMedia_NotConfigured(t *testing.T) {
	srv := newTestServer(t)
	token, _ := srv.walletAuth(t, bobWallet)

	resp, _ := srv.do(t, http.MethodPost, "/api/users/media/presign", token, map[string]string{"kind": "avatar", "contentType": "image/png"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.do(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["environment"])

	resp, _ = srv.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodGet, "/api/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = srv.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		headers string
	}{
		{"authorization", "authorization"},
		{"authorization and content type", "authorization,content-type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/users/onboarding", nil)
			require.NoError(t, err)
			req.Header.Set("Origin", "http://localhost:5173")
			req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			req.Header.Set("Access-Control-Request-Headers", tt.headers)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
		})
	}
}

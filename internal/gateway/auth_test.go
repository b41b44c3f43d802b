package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"plain", "Bearer abc123", "abc123"},
		{"lowercase scheme", "bearer abc123", "abc123"},
		{"padded", "Bearer   abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"scheme only", "Bearer", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, bearerToken(r))
		})
	}
}

func TestAuthMissingToken(t *testing.T) {
	_, ts, _ := testServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/assistant/history", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "missing bearer token", body["error"])
}

func TestAuthInvalidToken(t *testing.T) {
	_, ts, _ := testServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/assistant/history", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthBlockedUser(t *testing.T) {
	srv, ts, _ := testServer(t, nil)

	_, err := srv.db.CreateUser(context.Background(), "banned", "tok-blocked", "blocked")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/assistant/history", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer tok-blocked")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthRateLimiter(t *testing.T) {
	rl := &authRateLimiter{failures: map[string][]time.Time{}}

	addr := "192.0.2.7:51234"
	for i := 0; i < authRateMaxFails; i++ {
		assert.True(t, rl.allow(addr))
		rl.recordFailure(addr)
	}
	assert.False(t, rl.allow(addr))

	// Other hosts are unaffected
	assert.True(t, rl.allow("192.0.2.8:51234"))
}

func TestAuthRateLimiterWindowExpiry(t *testing.T) {
	rl := &authRateLimiter{failures: map[string][]time.Time{}}

	old := time.Now().Add(-authRateWindow - time.Minute)
	stale := make([]time.Time, authRateMaxFails)
	for i := range stale {
		stale[i] = old
	}
	rl.failures["192.0.2.9"] = stale

	assert.True(t, rl.allow("192.0.2.9:1"))
}

package lockvendor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/innkeep/backend/internal/infrastructure/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.LockVendorConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestClient_IssueKey(t *testing.T) {
	ctx := context.Background()

	t.Run("returns vendor key ID", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/keys", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

			var req issueKeyRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "101", req.RoomNumber)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(issueKeyResponse{KeyID: "VK-42"})
		})

		keyID, err := client.IssueKey(ctx, "101", time.Now(), time.Now().Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "VK-42", keyID)
	})

	t.Run("surfaces vendor error message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_ = json.NewEncoder(w).Encode(vendorError{Message: "room is offline"})
		})

		_, err := client.IssueKey(ctx, "101", time.Now(), time.Now().Add(24*time.Hour))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "room is offline")
	})

	t.Run("rejects empty key ID", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(issueKeyResponse{})
		})

		_, err := client.IssueKey(ctx, "101", time.Now(), time.Now().Add(24*time.Hour))
		assert.Error(t, err)
	})
}

func TestClient_RevokeKey(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes by vendor key ID", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v1/keys/VK-42", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.RevokeKey(ctx, "VK-42"))
	})

	t.Run("rejects empty vendor key ID", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		assert.Error(t, client.RevokeKey(ctx, ""))
	})

	t.Run("surfaces vendor failure status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		err := client.RevokeKey(ctx, "VK-42")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewClient(&config.LockVendorConfig{}, zap.NewNop())
	assert.Error(t, err)
}

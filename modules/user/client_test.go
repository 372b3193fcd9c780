package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	domain "github.com/example/task-api/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ExistsUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/user123":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"userId":"user123","username":"alice","active":true}`))
		case "/api/users/unknown-user":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api/users")
	ctx := context.Background()

	t.Run("200 means exists", func(t *testing.T) {
		exists, err := client.ExistsUser(ctx, "user123")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("404 means absent", func(t *testing.T) {
		exists, err := client.ExistsUser(ctx, "unknown-user")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("other status means unavailable", func(t *testing.T) {
		_, err := client.ExistsUser(ctx, "broken-user")
		require.ErrorIs(t, err, domain.ErrValidationUnavailable)
	})
}

func TestClient_ExistsUser_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close() // Shut down immediately to force a connection error

	client := NewClient(server.URL + "/api/users")

	_, err := client.ExistsUser(context.Background(), "user123")
	require.ErrorIs(t, err, domain.ErrValidationUnavailable)
}

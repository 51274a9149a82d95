package leaderboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nfrund/learnhub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leaderboard" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"username":"ada","points":20},{"username":"bob","points":10}]`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL+"/", nil).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardEntry{{Username: "ada", Points: 20}, {Username: "bob", Points: 10}}, got)
}

func TestClient_FetchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).Fetch(context.Background())
	assert.ErrorContains(t, err, "unexpected status")
}

package testutils

import (
	"context"
	"testing"

	"github.com/nfrund/learnhub/internal/database"
	"github.com/stretchr/testify/require"
)

// NewStore opens a private in-memory SQLite store closed at cleanup.
func NewStore(t *testing.T) *database.Store {
	t.Helper()
	s, err := database.Open(context.Background(), database.MemoryPath, database.DefaultTimeouts)
	require.NoError(t, err, "failed to open in-memory store")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

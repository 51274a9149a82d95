package surreal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/learnhub/internal/config"
	"github.com/surrealdb/surrealdb.go"
)

// NewDB connects to SurrealDB, signs in and selects the configured
// namespace and database.
func NewDB(ctx context.Context, cfg config.Provider) (*surrealdb.DB, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.GetDBURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to surrealdb: %w", err)
	}

	if cfg.GetDBUser() != "" {
		authData := &surrealdb.Auth{
			Username: cfg.GetDBUser(),
			Password: cfg.GetDBPass(),
		}
		if _, err = db.SignIn(ctx, authData); err != nil {
			db.Close(ctx)
			return nil, fmt.Errorf("failed to sign in: %w", err)
		}
	}

	if err = db.Use(ctx, cfg.GetDBNs(), cfg.GetDBDb()); err != nil {
		db.Close(ctx)
		return nil, fmt.Errorf("failed to use namespace/db: %w", err)
	}

	slog.Info("Connected to SurrealDB", "url", cfg.GetDBURL(), "ns", cfg.GetDBNs(), "db", cfg.GetDBDb())
	return db, nil
}

package server

import (
	"context"
	"fmt"

	"github.com/nfrund/learnhub/internal/config"
	"github.com/nfrund/learnhub/internal/database"
	"github.com/nfrund/learnhub/internal/database/surreal"
	"github.com/nfrund/learnhub/internal/domain"
)

// OpenStore opens the backend selected by STORE_DRIVER.
func OpenStore(ctx context.Context, cfg config.Provider) (domain.Store, error) {
	timeouts := database.Timeouts{Query: cfg.GetDBQueryTimeout(), Execute: cfg.GetDBExecuteTimeout()}
	if timeouts.Query <= 0 || timeouts.Execute <= 0 {
		timeouts = database.DefaultTimeouts
	}

	switch cfg.GetStoreDriver() {
	case config.DriverSQLite, "":
		return database.Open(ctx, cfg.GetSQLitePath(), timeouts)
	case config.DriverSurreal:
		db, err := surreal.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return surreal.New(ctx, surreal.NewExecutor(db), timeouts, func() error {
			return db.Close(context.Background())
		})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.GetStoreDriver())
	}
}

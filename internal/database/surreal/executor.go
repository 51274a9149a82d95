package surreal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nfrund/learnhub/internal/database"
	"github.com/surrealdb/surrealdb.go"
)

// Executor runs SurrealQL statements. The store only talks to the database
// through it so tests can substitute a fake.
type Executor interface {
	// Query executes a query and decodes the rows of its first statement into result.
	Query(ctx context.Context, query string, params map[string]any, result any) error

	// QueryOne executes a query and decodes its first row into result.
	// It reports whether a row was found.
	QueryOne(ctx context.Context, query string, params map[string]any, result any) (bool, error)

	// Execute runs a query that doesn't return rows.
	Execute(ctx context.Context, query string, params map[string]any) error
}

// NewExecutor creates an Executor backed by a live connection.
func NewExecutor(db *surrealdb.DB) Executor {
	return &executor{db: db}
}

type executor struct {
	db *surrealdb.DB
}

func (e *executor) Query(ctx context.Context, query string, params map[string]any, result any) error {
	queryResults, err := surrealdb.Query[[]any](ctx, e.db, query, params)
	if err != nil {
		return database.NewDBError(err, "query execution failed").WithQuery(query).WithParams(params)
	}
	if queryResults == nil || len(*queryResults) == 0 {
		return nil
	}
	return remarshal((*queryResults)[0].Result, result)
}

func (e *executor) QueryOne(ctx context.Context, query string, params map[string]any, result any) (bool, error) {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT") && !hasLimitClause(query) {
		query += " LIMIT 1"
	}
	var rows []any
	if err := e.Query(ctx, query, params, &rows); err != nil {
		return false, err
	}
	if len(rows) == 0 {
		return false, nil
	}
	return true, remarshal(rows[0], result)
}

func (e *executor) Execute(ctx context.Context, query string, params map[string]any) error {
	if _, err := surrealdb.Query[any](ctx, e.db, query, params); err != nil {
		return database.NewDBError(err, "query execution failed").WithQuery(query).WithParams(params)
	}
	return nil
}

// remarshal converts the driver's generic rows into the target type.
func remarshal(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal query result: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode query result: %w", err)
	}
	return nil
}

func hasLimitClause(query string) bool {
	return strings.Contains(" "+strings.ToUpper(query)+" ", " LIMIT ")
}

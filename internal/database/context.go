package database

import (
	"context"
	"time"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// ContextKeyQueryTimeout overrides the default timeout for reads.
	ContextKeyQueryTimeout ContextKey = "db_query_timeout"
	// ContextKeyExecuteTimeout overrides the default timeout for writes.
	ContextKeyExecuteTimeout ContextKey = "db_execute_timeout"
)

// Timeouts are the default deadlines applied to store calls.
type Timeouts struct {
	Query   time.Duration
	Execute time.Duration
}

// DefaultTimeouts match the configuration defaults.
var DefaultTimeouts = Timeouts{Query: 5 * time.Second, Execute: 10 * time.Second}

// WithQueryTimeout returns a context whose reads use d instead of the default.
func WithQueryTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, ContextKeyQueryTimeout, d)
}

// WithExecuteTimeout returns a context whose writes use d instead of the default.
func WithExecuteTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, ContextKeyExecuteTimeout, d)
}

// QueryContext applies the read deadline.
func (t Timeouts) QueryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return timeoutFromContext(ctx, t.Query, ContextKeyQueryTimeout)
}

// ExecuteContext applies the write deadline.
func (t Timeouts) ExecuteContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return timeoutFromContext(ctx, t.Execute, ContextKeyExecuteTimeout)
}

// timeoutFromContext returns ctx bounded by the timeout stored under key,
// or by defaultTimeout when none is stored.
func timeoutFromContext(ctx context.Context, defaultTimeout time.Duration, key ContextKey) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := defaultTimeout
	if v, ok := ctx.Value(key).(time.Duration); ok && v > 0 {
		timeout = v
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

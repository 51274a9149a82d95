package database

import (
	"errors"
	"fmt"
)

// Common storage errors that can be checked with errors.Is.
var (
	ErrInvalidInput    = errors.New("invalid input data")
	ErrQueryFailed     = errors.New("query execution failed")
	ErrMultipleResults = errors.New("multiple results found when one was expected")
)

// DBError is a storage failure with the operation and query that caused it.
type DBError struct {
	err     error
	context string
	query   string
	params  map[string]any
}

// NewDBError creates a DBError describing what was being done when err occurred.
func NewDBError(err error, context string) *DBError {
	return &DBError{err: err, context: context}
}

// WithQuery adds the statement to the error.
func (e *DBError) WithQuery(query string) *DBError {
	e.query = query
	return e
}

// WithParams adds the statement parameters to the error.
func (e *DBError) WithParams(params map[string]any) *DBError {
	e.params = params
	return e
}

func (e *DBError) Error() string {
	msg := e.context
	if e.query != "" {
		msg = fmt.Sprintf("%s\nQuery: %s", msg, e.query)
	}
	if len(e.params) > 0 {
		msg = fmt.Sprintf("%s\nParams: %+v", msg, redact(e.params))
	}
	if e.err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.err)
	}
	return msg
}

func (e *DBError) Unwrap() error {
	return e.err
}

// redact hides parameters that hold credentials.
func redact(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		if k == "password_hash" || k == "password" {
			v = "[redacted]"
		}
		out[k] = v
	}
	return out
}

// WrapError wraps err with context. An existing DBError gains the context
// as a prefix instead of being wrapped twice.
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}

	var dbErr *DBError
	if errors.As(err, &dbErr) {
		if dbErr.context != "" {
			context = fmt.Sprintf("%s: %s", context, dbErr.context)
		}
		dbErr.context = context
		return dbErr
	}

	return NewDBError(err, context)
}

// Package history keeps a record of evaluated expressions.
package history

import (
	"context"
	"time"
)

// Entry is one evaluated expression.
type Entry struct {
	// ID is the pipeline run ID.
	ID   string
	Expr string
	// Result is the value of a successful evaluation.
	Result float64
	// Stage and Error describe a failed evaluation. Both are empty on
	// success.
	Stage string
	Error string
	Time  time.Time
}

// Failed reports whether the entry records an error.
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Store persists history entries.
type Store interface {
	// Append adds an entry.
	Append(ctx context.Context, e Entry) error
	// Recent returns up to limit entries, newest first. A limit of zero or
	// less returns every entry.
	Recent(ctx context.Context, limit int) ([]Entry, error)
	// Close releases the store's resources.
	Close() error
}

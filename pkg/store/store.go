// Package store persists form configurations. A FormRecord is the stored
// row: list metadata plus the serialized schema document. Two Store
// implementations ship: SQLite for real deployments and an in-memory twin for
// demos and tests.
package store

import (
	"context"
	"errors"
	"time"
)

// StatusActive marks records visible to the browse flow.
const StatusActive = "Active"

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("store: form not found")

// FormRecord is one persisted form configuration.
type FormRecord struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Status gates visibility; only Active records appear in queries by
	// default.
	Status string `json:"status"`

	// ConfigurationJSON holds the serialized schema document. It may be
	// blank or malformed for records written by older tooling; readers must
	// tolerate both.
	ConfigurationJSON string `json:"configurationJson"`

	Created time.Time `json:"created"`
}

// Filter narrows Query results.
type Filter struct {
	// Status filters by record status; empty means StatusActive.
	Status string

	// Limit caps the result count; zero means no cap.
	Limit int
}

// Store is the interface for reading and writing form records.
type Store interface {
	// Add persists a new record and returns its assigned id.
	Add(ctx context.Context, record FormRecord) (int64, error)

	// GetByID returns a single record or ErrNotFound.
	GetByID(ctx context.Context, id int64) (FormRecord, error)

	// Query returns records matching the filter, ordered by title
	// case-insensitively.
	Query(ctx context.Context, filter Filter) ([]FormRecord, error)
}

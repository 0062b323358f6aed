// Package store persists analysis runs for the API server, so a run
// submitted once can be fetched later by ID.
//
// Backends: MongoStore for deployments and MemoryStore for tests and
// single-process usage.
package store

import (
	"context"
	"time"

	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/report"
)

// Run is one persisted analysis run.
type Run struct {
	ID        string               `json:"id" bson:"_id"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	Profile   string               `json:"profile" bson:"profile"`
	Summary   report.Summary       `json:"summary" bson:"summary"`
	Results   []*pipeline.Analysis `json:"results" bson:"results"`
}

// Store persists and retrieves runs.
type Store interface {
	// Put stores a run under its ID.
	Put(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Missing runs yield an
	// errors.ErrCodeRunNotFound error.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns the most recent runs, newest first.
	List(ctx context.Context, limit int) ([]*Run, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Package cache provides pluggable result caching for diagram analysis.
//
// Analysis is deterministic, so cached results are keyed by content: the
// hash of the diagram source plus the hash of the resolved configuration.
// Editing either invalidates the key naturally; no explicit invalidation
// protocol exists.
//
// Backends: FileCache for CLI usage, RedisCache for the API server, and
// NullCache to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLs per key type. Analysis results are content-addressed and could live
// forever; the TTL only bounds disk growth.
const (
	AnalysisTTL = 30 * 24 * time.Hour
	RunTTL      = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with TTL support.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys. Implementations must be deterministic:
// identical inputs yield identical keys across processes.
type Keyer interface {
	// AnalysisKey keys one diagram's full analysis result by source hash
	// and resolved-config hash.
	AnalysisKey(contentHash, configHash string) string

	// RunKey keys a stored analysis run by its identifier.
	RunKey(runID string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// AnalysisKey generates a key for a diagram analysis result.
func (k *DefaultKeyer) AnalysisKey(contentHash, configHash string) string {
	return hashKey("analysis", contentHash, configHash)
}

// RunKey generates a key for a stored run.
func (k *DefaultKeyer) RunKey(runID string) string {
	return hashKey("run", runID)
}

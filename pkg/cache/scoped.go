package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. The API
// server uses this to keep per-project caches separate while sharing one
// Redis instance.
//
// Example usage:
//
//	// Project-specific keys
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:docs-site:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AnalysisKey generates a prefixed key for a diagram analysis result.
func (k *ScopedKeyer) AnalysisKey(contentHash, configHash string) string {
	return k.prefix + k.inner.AnalysisKey(contentHash, configHash)
}

// RunKey generates a prefixed key for a stored run.
func (k *ScopedKeyer) RunKey(runID string) string {
	return k.prefix + k.inner.RunKey(runID)
}

// Package rules implements the readability rule engine: a closed set of
// named, stateless checks evaluated against every analyzed diagram.
//
// A rule is a pure function of the diagram, its metrics, and the resolved
// configuration. Rules never read each other's results and never mutate
// shared state; the registry is built once and is read-only afterwards, so
// concurrent evaluation needs no synchronization.
package rules

import (
	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/metrics"
)

// Rule is one named check.
//
// Check returns nil when the diagram passes. Returned issues need not set
// FilePath or Line; the registry stamps them from the diagram.
type Rule interface {
	Name() string
	DefaultSeverity() Severity
	Check(d *diagram.Diagram, m metrics.Metrics, cfg *Config) *Issue
}

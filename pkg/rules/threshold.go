package rules

import (
	"fmt"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/metrics"
)

// thresholdRule compares a single metric against a configured threshold.
// Raising the threshold can only remove findings, never add them.
type thresholdRule struct {
	name     string
	severity Severity
	def      float64
	citation string

	// value extracts the graded metric; the bool gates whether the rule
	// applies to this diagram at all.
	value   func(m metrics.Metrics) (float64, bool)
	message func(value, threshold float64) (msg, suggestion string)
}

func (r *thresholdRule) Name() string              { return r.name }
func (r *thresholdRule) DefaultSeverity() Severity { return r.severity }

func (r *thresholdRule) Check(_ *diagram.Diagram, m metrics.Metrics, cfg *Config) *Issue {
	v, ok := r.value(m)
	if !ok {
		return nil
	}
	threshold := cfg.ThresholdFor(r.name, r.def)
	if v <= threshold {
		return nil
	}
	msg, suggestion := r.message(v, threshold)
	return &Issue{
		Rule:       r.name,
		Severity:   cfg.SeverityFor(r.name, r.severity),
		Message:    msg,
		Suggestion: suggestion,
		Citation:   r.citation,
	}
}

// denseCutoff splits the two node-count regimes: above this graph density
// cognitive load degrades at a lower node count.
const denseCutoff = 0.3

// NewMaxEdges limits the total edge count.
func NewMaxEdges() Rule {
	return &thresholdRule{
		name:     "max-edges",
		severity: SeverityWarning,
		def:      30,
		value: func(m metrics.Metrics) (float64, bool) {
			return float64(m.EdgeCount), true
		},
		message: func(v, t float64) (string, string) {
			return fmt.Sprintf("diagram has %.0f edges (limit %.0f)", v, t),
				"Split the diagram or remove redundant connections."
		},
	}
}

// NewMaxNodes limits the node count of sparse diagrams.
func NewMaxNodes() Rule {
	return &thresholdRule{
		name:     "max-nodes",
		severity: SeverityWarning,
		def:      25,
		citation: "Miller, G. A. (1956). The magical number seven, plus or minus two.",
		value: func(m metrics.Metrics) (float64, bool) {
			return float64(m.NodeCount), m.Density <= denseCutoff
		},
		message: func(v, t float64) (string, string) {
			return fmt.Sprintf("diagram has %.0f nodes (limit %.0f)", v, t),
				"Split the diagram into focused sub-diagrams."
		},
	}
}

// NewMaxNodesDense limits the node count of dense diagrams, where the
// tolerable node count is lower.
func NewMaxNodesDense() Rule {
	return &thresholdRule{
		name:     "max-nodes-dense",
		severity: SeverityWarning,
		def:      15,
		citation: "Miller, G. A. (1956). The magical number seven, plus or minus two.",
		value: func(m metrics.Metrics) (float64, bool) {
			return float64(m.NodeCount), m.Density > denseCutoff
		},
		message: func(v, t float64) (string, string) {
			return fmt.Sprintf("dense diagram has %.0f nodes (limit %.0f for density above %.1f)", v, t, denseCutoff),
				"Reduce cross-connections or split the diagram."
		},
	}
}

// NewMaxComplexity limits cyclomatic complexity, counted as the number of
// decision-shaped nodes plus one.
func NewMaxComplexity() Rule {
	return &thresholdRule{
		name:     "max-cyclomatic-complexity",
		severity: SeverityWarning,
		def:      10,
		citation: "McCabe, T. J. (1976). A complexity measure.",
		value: func(m metrics.Metrics) (float64, bool) {
			return float64(m.CyclomaticComplexity), true
		},
		message: func(v, t float64) (string, string) {
			return fmt.Sprintf("cyclomatic complexity is %.0f (limit %.0f)", v, t),
				"Extract decision-heavy sections into separate diagrams."
		},
	}
}

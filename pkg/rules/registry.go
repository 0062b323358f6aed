package rules

import (
	"slices"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/metrics"
	"github.com/matzehuels/diaglens/pkg/observability"
)

// Registry is an ordered, immutable set of rules. Construct it once at
// process start; it is safe for unsynchronized concurrent reads.
type Registry struct {
	rules []Rule
}

// NewRegistry builds a registry evaluating the given rules in order.
func NewRegistry(rules ...Rule) *Registry {
	return &Registry{rules: slices.Clone(rules)}
}

// Default returns the built-in rule set in its canonical order.
func Default() *Registry {
	return NewRegistry(
		NewMaxEdges(),
		NewMaxNodes(),
		NewMaxNodesDense(),
		NewMaxComplexity(),
		NewMaxWidth(),
		NewMaxHeight(),
		NewReservedIdentifiers(),
		NewAmbiguousIdentifiers(),
	)
}

// Rules returns the rules in evaluation order.
func (r *Registry) Rules() []Rule {
	return slices.Clone(r.rules)
}

// Evaluate runs every enabled rule against one diagram and collects the
// findings in registry order. A panicking rule is isolated: its finding is
// dropped, an observability event is emitted, and the remaining rules
// still run.
func (r *Registry) Evaluate(d *diagram.Diagram, m metrics.Metrics, cfg *Config) []Issue {
	var issues []Issue
	for _, rule := range r.rules {
		if !cfg.Enabled(rule.Name()) {
			continue
		}
		issue := check(rule, d, m, cfg)
		if issue == nil {
			continue
		}
		if issue.FilePath == "" {
			issue.FilePath = d.FilePath
		}
		if issue.Line == 0 {
			issue.Line = d.StartLine
		}
		issues = append(issues, *issue)
	}
	return issues
}

func check(rule Rule, d *diagram.Diagram, m metrics.Metrics, cfg *Config) (issue *Issue) {
	defer func() {
		if rec := recover(); rec != nil {
			observability.Analysis().OnRuleFault(rule.Name(), rec)
			issue = nil
		}
	}()
	return rule.Check(d, m, cfg)
}

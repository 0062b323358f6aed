package rules

import (
	"fmt"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/metrics"
)

// The width and height rules grade an estimated pixel dimension against
// the resolved viewport's three-tier ladder. Severity comes from the tier,
// not from per-rule config. Suggestions are conditioned on layout
// direction; a width overflow on a vertical layout comes from branching,
// so suggesting a horizontal conversion would make it worse and is never
// emitted.

type widthRule struct{}

// NewMaxWidth grades estimated width against the viewport ladder.
func NewMaxWidth() Rule { return widthRule{} }

func (widthRule) Name() string              { return "max-width" }
func (widthRule) DefaultSeverity() Severity { return SeverityWarning }

func (widthRule) Check(_ *diagram.Diagram, m metrics.Metrics, cfg *Config) *Issue {
	if !m.HasEstimate {
		return nil
	}
	vp := cfg.ViewportOrDefault()
	sev, ok := vp.Width.Grade(m.EstWidth)
	if !ok {
		return nil
	}
	suggestion := "Group related nodes into subgraphs or split wide branching into separate diagrams."
	if m.Direction.Horizontal() {
		suggestion = "Convert to a top-down layout (TD) to trade width for height."
	}
	return &Issue{
		Rule:     "max-width",
		Severity: sev,
		Message: fmt.Sprintf("estimated width %.0fpx exceeds the %s viewport target of %.0fpx",
			m.EstWidth, vp.Name, vp.TargetWidth),
		Suggestion: suggestion,
	}
}

type heightRule struct{}

// NewMaxHeight grades estimated height against the viewport ladder.
func NewMaxHeight() Rule { return heightRule{} }

func (heightRule) Name() string              { return "max-height" }
func (heightRule) DefaultSeverity() Severity { return SeverityWarning }

func (heightRule) Check(_ *diagram.Diagram, m metrics.Metrics, cfg *Config) *Issue {
	if !m.HasEstimate {
		return nil
	}
	vp := cfg.ViewportOrDefault()
	sev, ok := vp.Height.Grade(m.EstHeight)
	if !ok {
		return nil
	}
	suggestion := "Split the diagram into smaller sequential sections."
	if m.Direction.Horizontal() {
		suggestion = "Flatten parallel branches or split the diagram."
	}
	return &Issue{
		Rule:     "max-height",
		Severity: sev,
		Message: fmt.Sprintf("estimated height %.0fpx exceeds the %s viewport target of %.0fpx",
			m.EstHeight, vp.Name, vp.TargetHeight),
		Suggestion: suggestion,
	}
}

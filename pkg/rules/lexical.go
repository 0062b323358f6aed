package rules

import (
	"fmt"
	"strings"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/metrics"
)

// reservedWords are identifiers that collide with structural keywords and
// break or silently corrupt rendering when used as node IDs. Directive
// lines never reach the identifier list; this set only catches keywords
// used as arrow endpoints or declarations.
var reservedWords = map[string]bool{
	"end":       true,
	"subgraph":  true,
	"graph":     true,
	"flowchart": true,
	"direction": true,
	"style":     true,
	"classdef":  true,
	"class":     true,
	"click":     true,
	"linkstyle": true,
}

type reservedRule struct{}

// NewReservedIdentifiers flags node identifiers that collide with
// structural keywords.
func NewReservedIdentifiers() Rule { return reservedRule{} }

func (reservedRule) Name() string              { return "reserved-identifiers" }
func (reservedRule) DefaultSeverity() Severity { return SeverityError }

func (r reservedRule) Check(_ *diagram.Diagram, m metrics.Metrics, cfg *Config) *Issue {
	var offenders []string
	for _, id := range m.NodeIDs {
		if reservedWords[strings.ToLower(id)] {
			offenders = append(offenders, id)
		}
	}
	if len(offenders) == 0 {
		return nil
	}
	return &Issue{
		Rule:       r.Name(),
		Severity:   cfg.SeverityFor(r.Name(), r.DefaultSeverity()),
		Message:    fmt.Sprintf("reserved word used as node identifier: %s", strings.Join(offenders, ", ")),
		Suggestion: "Rename the node; reserved words break rendering.",
	}
}

type ambiguousRule struct{}

// NewAmbiguousIdentifiers flags identifiers of the form o1 or x1: a
// leading o or x followed by digits reads as circle/cross edge decoration
// when it appears next to an arrow.
func NewAmbiguousIdentifiers() Rule { return ambiguousRule{} }

func (ambiguousRule) Name() string              { return "ambiguous-shape-identifiers" }
func (ambiguousRule) DefaultSeverity() Severity { return SeverityWarning }

func (r ambiguousRule) Check(_ *diagram.Diagram, m metrics.Metrics, cfg *Config) *Issue {
	var offenders []string
	for _, id := range m.NodeIDs {
		if ambiguousShapeID(id) {
			offenders = append(offenders, id)
		}
	}
	if len(offenders) == 0 {
		return nil
	}
	return &Issue{
		Rule:       r.Name(),
		Severity:   cfg.SeverityFor(r.Name(), r.DefaultSeverity()),
		Message:    fmt.Sprintf("identifier can be misread as edge decoration: %s", strings.Join(offenders, ", ")),
		Suggestion: "Use a prefix that is not a lone o or x, e.g. node1 instead of o1.",
	}
}

func ambiguousShapeID(id string) bool {
	if len(id) < 2 {
		return false
	}
	switch id[0] {
	case 'o', 'x', 'O', 'X':
	default:
		return false
	}
	for i := 1; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	return true
}

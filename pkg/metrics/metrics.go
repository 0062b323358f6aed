// Package metrics computes structural metrics over a canonical diagram
// graph, optionally enriched with dialect-specific parse detail.
//
// All metrics are pure functions of their inputs and are recomputed fresh
// for every diagram. The path metrics use depth-first search with per-node
// memoization and terminate on cyclic graphs by refusing to follow an edge
// back into the current path.
package metrics

import (
	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/graph"
)

// Metrics is a read-only structural snapshot of one diagram.
type Metrics struct {
	NodeCount      int     `json:"node_count" bson:"node_count"`
	EdgeCount      int     `json:"edge_count" bson:"edge_count"`
	Density        float64 `json:"density" bson:"density"`
	AverageDegree  float64 `json:"average_degree" bson:"average_degree"`
	MaxBranchWidth int     `json:"max_branch_width" bson:"max_branch_width"`

	// LongestPath is the longest simple directed path, in edges, from any
	// node. MaxDepth is the longest path from any source (indegree 0)
	// counted in nodes; it is 0 when the graph has no sources, which only
	// happens when every node sits on a cycle.
	LongestPath int `json:"longest_path" bson:"longest_path"`
	MaxDepth    int `json:"max_depth" bson:"max_depth"`

	// DecisionCount is the number of decision-shaped nodes; cyclomatic
	// complexity is that count plus one. A textual proxy, not control-flow
	// analysis.
	DecisionCount        int `json:"decision_count" bson:"decision_count"`
	CyclomaticComplexity int `json:"cyclomatic_complexity" bson:"cyclomatic_complexity"`

	NestingDepth        int     `json:"nesting_depth" bson:"nesting_depth"`
	ParticipantCount    int     `json:"participant_count,omitempty" bson:"participant_count,omitempty"`
	MessageCount        int     `json:"message_count,omitempty" bson:"message_count,omitempty"`
	EntityCount         int     `json:"entity_count,omitempty" bson:"entity_count,omitempty"`
	ClassCount          int     `json:"class_count,omitempty" bson:"class_count,omitempty"`
	RelationshipDensity float64 `json:"relationship_density,omitempty" bson:"relationship_density,omitempty"`
	AverageLabelLength  float64 `json:"average_label_length" bson:"average_label_length"`

	// NodeIDs are the extracted identifiers, in insertion order. Lexical
	// rule checks scan these.
	NodeIDs []string `json:"node_ids,omitempty" bson:"node_ids,omitempty"`

	// Filled in after dimension estimation so rule checks see one value.
	Direction   dialect.Direction `json:"direction" bson:"direction"`
	EstWidth    float64           `json:"est_width,omitempty" bson:"est_width,omitempty"`
	EstHeight   float64           `json:"est_height,omitempty" bson:"est_height,omitempty"`
	HasEstimate bool              `json:"has_estimate" bson:"has_estimate"`
}

// Compute derives all metrics from the canonical graph and, when res is
// non-nil, the dialect parse result.
func Compute(g *graph.Graph, res *dialect.Result) Metrics {
	m := Metrics{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		NodeIDs:   g.Nodes(),
		Direction: dialect.DirectionTD,
	}

	// Density is edge count over the maximum possible directed edge count,
	// defined as 0 for graphs with at most one node.
	if m.NodeCount > 1 {
		m.Density = float64(m.EdgeCount) / float64(m.NodeCount*(m.NodeCount-1))
	}
	if m.NodeCount > 0 {
		m.AverageDegree = float64(2*m.EdgeCount) / float64(m.NodeCount)
	}

	for _, id := range g.Nodes() {
		if d := g.OutDegree(id); d > m.MaxBranchWidth {
			m.MaxBranchWidth = d
		}
	}

	w := &pathWalker{g: g, memo: make(map[string]int), inPath: make(map[string]bool)}
	for _, id := range g.Nodes() {
		if d := w.longestFrom(id); d > m.LongestPath {
			m.LongestPath = d
		}
	}
	for _, id := range g.Sources() {
		if d := w.longestFrom(id) + 1; d > m.MaxDepth {
			m.MaxDepth = d
		}
	}

	if res != nil {
		m.Direction = res.Direction
		m.DecisionCount = res.DecisionCount()
		m.NestingDepth = res.Meta.NestingDepth
		m.ParticipantCount = len(res.Participants)
		m.MessageCount = len(res.Messages)
		m.EntityCount = len(res.Entities)
		m.ClassCount = len(res.Classes)
		m.AverageLabelLength = res.AverageLabelLength()
		switch {
		case len(res.Classes) > 0:
			m.RelationshipDensity = float64(len(res.Relationships)) / float64(len(res.Classes))
		case len(res.Entities) > 0:
			m.RelationshipDensity = float64(len(res.EntityRels)) / float64(len(res.Entities))
		}
	}
	m.CyclomaticComplexity = m.DecisionCount + 1

	return m
}

// pathWalker memoizes the longest simple path starting at each node. The
// inPath set marks the current DFS stack; an edge into it is a back-edge
// and is skipped, which both keeps paths simple and guarantees termination
// on cyclic graphs.
type pathWalker struct {
	g      *graph.Graph
	memo   map[string]int
	inPath map[string]bool
}

func (w *pathWalker) longestFrom(id string) int {
	if d, ok := w.memo[id]; ok {
		return d
	}
	w.inPath[id] = true
	best := 0
	for _, succ := range w.g.Successors(id) {
		if w.inPath[succ] {
			continue
		}
		if d := w.longestFrom(succ) + 1; d > best {
			best = d
		}
	}
	delete(w.inPath, id)
	w.memo[id] = best
	return best
}

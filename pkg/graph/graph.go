// Package graph provides the canonical directed-graph representation that
// all structural metrics are computed from.
//
// Unlike a dependency DAG, diagram graphs may legitimately contain cycles
// (state machines loop, flowcharts retry) and self-edges, so no acyclicity
// constraint is enforced. Construction is best-effort and order-preserving:
// node identifiers are deduplicated case-sensitively, and adjacency lists
// keep insertion order so repeated parses of the same source produce equal
// graphs.
package graph

import (
	"errors"
	"slices"
)

// ErrInvalidNodeID is returned by AddNode and AddEdge when a node
// identifier is empty. All nodes must have non-empty identifiers.
var ErrInvalidNodeID = errors.New("node ID must not be empty")

// Edge represents a directed connection between two nodes.
// Self-edges (From == To) are permitted.
type Edge struct {
	From  string `json:"from" bson:"from"`
	To    string `json:"to" bson:"to"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// Graph is a directed graph with forward and reverse adjacency.
//
// Every node referenced by any edge appears in both adjacency maps, with an
// empty (but present) list when it has no outgoing or incoming edges. The
// zero value is not usable - use New.
//
// Graph is not safe for concurrent mutation; once built it is read-only and
// safe for unsynchronized concurrent reads.
type Graph struct {
	order    []string
	nodes    map[string]struct{}
	edges    []Edge
	outgoing map[string][]string // nodeID -> successor IDs, insertion order
	incoming map[string][]string // nodeID -> predecessor IDs, insertion order
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode registers a node identifier. Adding an existing identifier is a
// no-op: declarations and arrow endpoints referring to the same node are
// deduplicated case-sensitively. Returns ErrInvalidNodeID for empty IDs.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[id]; exists {
		return nil
	}
	g.nodes[id] = struct{}{}
	g.order = append(g.order, id)
	g.outgoing[id] = []string{}
	g.incoming[id] = []string{}
	return nil
}

// AddEdge adds a directed edge, registering both endpoints if needed.
// Returns ErrInvalidNodeID if either endpoint is empty.
func (g *Graph) AddEdge(e Edge) error {
	if err := g.AddNode(e.From); err != nil {
		return err
	}
	if err := g.AddNode(e.To); err != nil {
		return err
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Nodes returns all node IDs in insertion order.
// The returned slice is a copy and safe to modify.
func (g *Graph) Nodes() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of distinct nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, self-edges included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether the identifier is registered.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Successors returns the IDs this node has edges to, in insertion order.
// The returned slice should be treated as a read-only view.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs that have edges to this node, in insertion
// order. The returned slice should be treated as a read-only view.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Sources returns node IDs with no incoming edges, in insertion order.
// For diagram graphs these are the entry points of the flow.
func (g *Graph) Sources() []string {
	var sources []string
	for _, id := range g.order {
		if len(g.incoming[id]) == 0 {
			sources = append(sources, id)
		}
	}
	return sources
}

// Sinks returns node IDs with no outgoing edges, in insertion order.
func (g *Graph) Sinks() []string {
	var sinks []string
	for _, id := range g.order {
		if len(g.outgoing[id]) == 0 {
			sinks = append(sinks, id)
		}
	}
	return sinks
}

// Equal reports whether two graphs have the same node set and the same
// edge multiset. Edge order is ignored so that Equal expresses parse
// idempotence rather than byte-level identity.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil || len(g.nodes) != len(other.nodes) || len(g.edges) != len(other.edges) {
		return false
	}
	for id := range g.nodes {
		if _, ok := other.nodes[id]; !ok {
			return false
		}
	}
	counts := make(map[Edge]int, len(g.edges))
	for _, e := range g.edges {
		counts[e]++
	}
	for _, e := range other.edges {
		counts[e]--
		if counts[e] < 0 {
			return false
		}
	}
	return true
}

// Package dialect defines the shared vocabulary between the per-dialect
// parsers and the rest of the analysis pipeline.
//
// Each supported dialect lives in its own subpackage (flowchart, class,
// sequence, state, er) and exports a Descriptor, the same way each package
// ecosystem registers a descriptor in a dependency resolver. A parser turns
// raw diagram text into a Result: normalized nodes and edges plus typed
// dialect-specific structures (classes, entities, participants).
//
// Parsing is best-effort structural extraction, not validation: a line that
// matches no known pattern is silently skipped. Diagram source is assumed
// syntactically valid at a higher level.
package dialect

import (
	"strings"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/graph"
)

// Direction is the layout direction of a diagram.
type Direction string

// Layout directions. TB is normalized to TD during parsing.
const (
	DirectionTD Direction = "TD" // top-down (default)
	DirectionLR Direction = "LR" // left-right
	DirectionRL Direction = "RL" // right-left
	DirectionBT Direction = "BT" // bottom-top
)

// Horizontal reports whether the direction lays nodes out left-to-right
// or right-to-left.
func (d Direction) Horizontal() bool {
	return d == DirectionLR || d == DirectionRL
}

// ParseDirection maps a direction token to a Direction, normalizing the
// TB alias to TD. Unrecognized tokens return the default top-down.
func ParseDirection(token string) Direction {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "LR":
		return DirectionLR
	case "RL":
		return DirectionRL
	case "BT":
		return DirectionBT
	default:
		return DirectionTD
	}
}

// RelKind classifies a relationship between two nodes.
type RelKind string

// Relationship kinds across dialects.
const (
	RelFlow        RelKind = "flow"        // generic flowchart edge
	RelTransition  RelKind = "transition"  // state transition
	RelInheritance RelKind = "inheritance" // class: child -> parent
	RelComposition RelKind = "composition"
	RelAggregation RelKind = "aggregation"
	RelAssociation RelKind = "association"
	RelDependency  RelKind = "dependency"
	RelRelation    RelKind = "relation" // entity relationship
	RelMessage     RelKind = "message"  // sequence message
)

// Node is a normalized diagram node.
type Node struct {
	ID       string
	Label    string // display label; empty means the ID is shown
	Decision bool   // diamond-delimited label (decision shape)
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a normalized directed relationship. Parsers emit edges with
// dialect-consistent direction: inheritance is already reversed relative
// to its arrow syntax, so From is always the dependent/derived side.
type Edge struct {
	From  string
	To    string
	Label string
	Kind  RelKind
}

// Cardinality is one side of an entity relationship.
type Cardinality string

// The four canonical cardinalities.
const (
	CardZeroOrOne  Cardinality = "zero-or-one"
	CardExactlyOne Cardinality = "exactly-one"
	CardZeroOrMore Cardinality = "zero-or-more"
	CardOneOrMore  Cardinality = "one-or-more"
)

// KeyKind marks an entity attribute as a key column.
type KeyKind string

// Key markers on entity attributes.
const (
	KeyNone    KeyKind = ""
	KeyPrimary KeyKind = "PK"
	KeyForeign KeyKind = "FK"
	KeyUnique  KeyKind = "UK"
)

// MessageKind classifies a sequence-diagram message.
type MessageKind string

// Message kinds.
const (
	MessageSync   MessageKind = "sync"
	MessageAsync  MessageKind = "async"
	MessageReturn MessageKind = "return"
)

// Class is a class-diagram node with its declared members.
type Class struct {
	Name       string
	Attributes []string
	Methods    []string
}

// Relationship is a typed class-diagram relationship. For inheritance,
// From is the syntactic child (the semantic subtype).
type Relationship struct {
	From     string
	To       string
	Kind     RelKind
	Label    string
	FromMult string // quoted multiplicity on the From side, if any
	ToMult   string // quoted multiplicity on the To side, if any
}

// EntityAttribute is one attribute line of an entity block.
type EntityAttribute struct {
	Type string
	Name string
	Key  KeyKind
}

// Entity is an entity-relationship node.
type Entity struct {
	Name       string
	Attributes []EntityAttribute
}

// EntityRelation is a typed entity relationship with per-side cardinality.
type EntityRelation struct {
	Left        string
	Right       string
	LeftCard    Cardinality
	RightCard   Cardinality
	Identifying bool // "--" operator; ".." records non-identifying
	Label       string
}

// Participant is a sequence-diagram lifeline. Implicit participants are
// registered on first appearance as a message endpoint.
type Participant struct {
	Name     string
	Explicit bool
}

// Message is one sequence-diagram interaction.
type Message struct {
	From string
	To   string
	Kind MessageKind
	Text string
}

// Meta carries dialect-specific scalar facts that don't fit the node/edge
// model. All fields are zero for dialects where they don't apply.
type Meta struct {
	NestingDepth    int // max depth of loop/alt/par or composite-state nesting
	CompositeStates int // state dialect: number of composite blocks
	PseudoStates    int // state dialect: [*] occurrences, excluded from nodes
}

// Result is the structured output of one dialect parser.
type Result struct {
	Direction Direction
	Nodes     []Node
	Edges     []Edge
	Meta      Meta

	// Typed per-dialect detail; nil for dialects where it doesn't apply.
	Classes       []Class
	Relationships []Relationship
	Entities      []Entity
	EntityRels    []EntityRelation
	Participants  []Participant
	Messages      []Message
}

// AverageLabelLength returns the mean character length of all display
// labels, falling back to node identifiers where no explicit label exists.
// Returns 0 for a result with no nodes.
func (r *Result) AverageLabelLength() float64 {
	if len(r.Nodes) == 0 {
		return 0
	}
	total := 0
	for _, n := range r.Nodes {
		total += len([]rune(n.DisplayLabel()))
	}
	return float64(total) / float64(len(r.Nodes))
}

// DecisionCount returns the number of decision-shaped nodes.
func (r *Result) DecisionCount() int {
	count := 0
	for _, n := range r.Nodes {
		if n.Decision {
			count++
		}
	}
	return count
}

// Parser turns raw diagram text into a structured Result.
// Implementations are stateless and safe for concurrent use.
type Parser interface {
	Parse(source string) *Result
}

// Descriptor registers one dialect with the pipeline.
type Descriptor struct {
	Name string       // human-readable dialect name
	Type diagram.Type // tag produced by diagram.Detect
	New  func() Parser
}

// BuildGraph normalizes a parse result into the canonical graph. Every
// node and every edge endpoint is registered; edges keep parser order.
// Parsing identical text twice yields graphs equal under node-set and
// edge-multiset equality.
func BuildGraph(res *Result) *graph.Graph {
	g := graph.New()
	if res == nil {
		return g
	}
	for _, n := range res.Nodes {
		_ = g.AddNode(n.ID)
	}
	for _, e := range res.Edges {
		_ = g.AddEdge(graph.Edge{From: e.From, To: e.To, Label: e.Label})
	}
	return g
}

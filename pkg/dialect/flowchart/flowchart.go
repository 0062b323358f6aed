// Package flowchart parses generic node-graph diagrams (graph / flowchart
// headers). It extracts node identifiers from delimited label declarations
// and arrow endpoints, and edges from the several visual arrow styles, with
// a hand-written line scanner instead of a regex grammar.
package flowchart

import (
	"strings"

	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/diagram"
)

// Dialect registers the flowchart parser.
var Dialect = &dialect.Descriptor{
	Name: "flowchart",
	Type: diagram.TypeFlowchart,
	New:  func() dialect.Parser { return &Parser{} },
}

// Parser is a stateless flowchart parser.
type Parser struct{}

// structural keywords that must never be mistaken for node identifiers.
var keywords = map[string]bool{
	"graph":     true,
	"flowchart": true,
	"subgraph":  true,
	"end":       true,
	"direction": true,
	"classdef":  true,
	"class":     true,
	"style":     true,
	"linkstyle": true,
	"click":     true,
}

// Parse extracts nodes and edges from flowchart source. Unrecognized lines
// are skipped.
func (p *Parser) Parse(source string) *dialect.Result {
	res := &dialect.Result{Direction: dialect.DirectionTD}

	seen := make(map[string]int) // node ID -> index in res.Nodes
	depth, maxDepth := 0, 0
	header := false

	addNode := func(n dialect.Node) {
		if i, ok := seen[n.ID]; ok {
			// A later declaration may carry the label an arrow endpoint lacked.
			if res.Nodes[i].Label == "" && n.Label != "" {
				res.Nodes[i].Label = n.Label
				res.Nodes[i].Decision = n.Decision
			}
			return
		}
		seen[n.ID] = len(res.Nodes)
		res.Nodes = append(res.Nodes, n)
	}

	for line := range strings.Lines(source) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case !header && (strings.HasPrefix(lower, "graph") || strings.HasPrefix(lower, "flowchart")):
			header = true
			fields := strings.Fields(line)
			if len(fields) > 1 {
				res.Direction = dialect.ParseDirection(strings.TrimSuffix(fields[1], ";"))
			}
			continue
		case strings.HasPrefix(lower, "subgraph"):
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
			continue
		case lower == "end":
			if depth > 0 {
				depth--
			}
			continue
		case hasKeywordPrefix(lower):
			continue
		}

		segments, labels := splitArrows(line)
		if len(segments) == 1 {
			// Standalone node declaration.
			for _, ref := range splitEndpoints(segments[0]) {
				if n, ok := parseNodeRef(ref); ok {
					addNode(n)
				}
			}
			continue
		}

		// Chained edges: A --> B --> C produces two edges.
		prev := parseEndpointGroup(segments[0], addNode)
		for i := 1; i < len(segments); i++ {
			curr := parseEndpointGroup(segments[i], addNode)
			for _, from := range prev {
				for _, to := range curr {
					res.Edges = append(res.Edges, dialect.Edge{
						From:  from,
						To:    to,
						Label: labels[i-1],
						Kind:  dialect.RelFlow,
					})
				}
			}
			prev = curr
		}
	}

	res.Meta.NestingDepth = maxDepth
	return res
}

func hasKeywordPrefix(lower string) bool {
	word, _, _ := strings.Cut(lower, " ")
	word = strings.TrimSuffix(word, ":")
	return keywords[word]
}

// parseEndpointGroup parses one arrow segment, which may name several nodes
// joined with "&", registers them, and returns their IDs.
func parseEndpointGroup(segment string, addNode func(dialect.Node)) []string {
	var ids []string
	for _, ref := range splitEndpoints(segment) {
		if n, ok := parseNodeRef(ref); ok {
			addNode(n)
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func splitEndpoints(segment string) []string {
	parts := strings.Split(segment, "&")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// splitArrows cuts a statement line at arrow tokens, returning the text
// segments between arrows and the label attached to each arrow (empty when
// unlabeled). A label is either the |text| form directly after the arrow or
// the "-- text -->" inline form, which leaves the text on the left segment.
func splitArrows(line string) (segments []string, labels []string) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	start := 0
	i := 0
	for i < len(line) {
		arrow := matchArrow(line[i:])
		if arrow == "" {
			i++
			continue
		}
		segment := line[start:i]
		i += len(arrow)

		label := ""
		// |label| directly after the arrow.
		if i < len(line) && line[i] == '|' {
			if end := strings.IndexByte(line[i+1:], '|'); end >= 0 {
				label = strings.TrimSpace(line[i+1 : i+1+end])
				i += end + 2
			}
		}
		// "A -- text -->" leaves the text on the left segment.
		if label == "" {
			if before, inline, ok := strings.Cut(segment, " -- "); ok {
				segment = before
				label = strings.TrimSpace(inline)
			}
		}

		segments = append(segments, strings.TrimSpace(segment))
		labels = append(labels, label)
		start = i
	}
	segments = append(segments, strings.TrimSpace(line[start:]))
	return segments, labels
}

// matchArrow matches one arrow token at the start of s. Shafts stretch to
// any length (-->, --->, ===>) and may carry a >, o, or x head. A headless
// shaft needs at least three characters so the "--" of an inline label
// ("A -- text --> B") is not mistaken for an arrow.
func matchArrow(s string) string {
	n := 0
	switch {
	case strings.HasPrefix(s, "-."):
		n = 2
		for n < len(s) && s[n] == '.' {
			n++
		}
		if n >= len(s) || s[n] != '-' {
			return ""
		}
		n++
	case strings.HasPrefix(s, "--"):
		n = 2
		for n < len(s) && s[n] == '-' {
			n++
		}
	case strings.HasPrefix(s, "=="):
		n = 2
		for n < len(s) && s[n] == '=' {
			n++
		}
	default:
		return ""
	}
	if n < len(s) && (s[n] == '>' || s[n] == 'o' || s[n] == 'x') {
		return s[:n+1]
	}
	if n < 3 {
		return ""
	}
	return s[:n]
}

// delimiter pairs for node label declarations, longest openers first.
var delimiters = []struct {
	open, close string
	decision    bool
}{
	{"([", "])", false}, // stadium
	{"[[", "]]", false}, // subroutine
	{"[(", ")]", false}, // cylinder
	{"((", "))", false}, // circle
	{"{{", "}}", false}, // hexagon
	{"[/", "/]", false}, // parallelogram
	{"[\\", "\\]", false},
	{"[", "]", false},
	{"(", ")", false},
	{"{", "}", true}, // diamond: decision shape
	{">", "]", false},
}

// parseNodeRef parses a node reference: a bare identifier or an identifier
// followed by a delimited label such as A[Start] or B{Done?}.
func parseNodeRef(ref string) (dialect.Node, bool) {
	ref = strings.TrimSpace(strings.TrimSuffix(ref, ";"))
	if ref == "" {
		return dialect.Node{}, false
	}

	for i := 0; i < len(ref); i++ {
		for _, d := range delimiters {
			if !strings.HasPrefix(ref[i:], d.open) {
				continue
			}
			id := strings.TrimSpace(ref[:i])
			if id == "" {
				return dialect.Node{}, false
			}
			rest := ref[i+len(d.open):]
			label := rest
			if end := strings.LastIndex(rest, d.close); end >= 0 {
				label = rest[:end]
			}
			return dialect.Node{
				ID:       id,
				Label:    strings.Trim(strings.TrimSpace(label), `"`),
				Decision: d.decision,
			}, true
		}
	}

	id := strings.Fields(ref)
	if len(id) == 0 {
		return dialect.Node{}, false
	}
	return dialect.Node{ID: id[0]}, true
}

// Package state parses state-machine diagrams, including the v2 header,
// composite-state blocks, the [*] start/end pseudo-state, and an optional
// direction directive anywhere in the body.
package state

import (
	"strings"

	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/diagram"
)

// Dialect registers the state-machine parser.
var Dialect = &dialect.Descriptor{
	Name: "state",
	Type: diagram.TypeState,
	New:  func() dialect.Parser { return &Parser{} },
}

// Parser is a stateless state-machine parser.
type Parser struct{}

// pseudoState is the start/end marker. It is excluded from the regular
// node count; transitions touching it are tallied but not materialized as
// canonical edges.
const pseudoState = "[*]"

// Parse extracts states and transitions. Composite blocks are parsed with
// the same transition grammar at every nesting level.
func (p *Parser) Parse(source string) *dialect.Result {
	res := &dialect.Result{Direction: dialect.DirectionTD}

	seen := make(map[string]int) // state ID -> index in res.Nodes
	depth, maxDepth := 0, 0

	register := func(id, label string, decision bool) {
		if id == "" || id == pseudoState {
			return
		}
		if i, ok := seen[id]; ok {
			if label != "" && res.Nodes[i].Label == "" {
				res.Nodes[i].Label = label
			}
			if decision {
				res.Nodes[i].Decision = true
			}
			return
		}
		seen[id] = len(res.Nodes)
		res.Nodes = append(res.Nodes, dialect.Node{ID: id, Label: label, Decision: decision})
	}

	for line := range strings.Lines(source) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "statediagram"):
			continue
		case strings.HasPrefix(lower, "direction"):
			if fields := strings.Fields(line); len(fields) > 1 {
				res.Direction = dialect.ParseDirection(fields[1])
			}
			continue
		case strings.HasPrefix(lower, "note"):
			continue
		case line == "}":
			if depth > 0 {
				depth--
			}
			continue
		}

		// Transitions take precedence: "state" declarations never contain -->.
		if from, rest, ok := strings.Cut(line, "-->"); ok {
			to, label, _ := strings.Cut(rest, ":")
			from = strings.TrimSpace(from)
			to = strings.TrimSpace(to)
			if from == "" || to == "" {
				continue
			}
			if from == pseudoState || to == pseudoState {
				res.Meta.PseudoStates++
				register(from, "", false)
				register(to, "", false)
				continue
			}
			register(from, "", false)
			register(to, "", false)
			res.Edges = append(res.Edges, dialect.Edge{
				From:  from,
				To:    to,
				Label: strings.TrimSpace(label),
				Kind:  dialect.RelTransition,
			})
			continue
		}

		if decl, ok := strings.CutPrefix(line, "state "); ok {
			decl = strings.TrimSpace(decl)
			switch {
			case strings.HasSuffix(decl, "{"):
				// Composite block: state Name {
				name := strings.TrimSpace(strings.TrimSuffix(decl, "{"))
				register(name, "", false)
				res.Meta.CompositeStates++
				depth++
				if depth > maxDepth {
					maxDepth = depth
				}
			case strings.HasPrefix(decl, `"`):
				// Described state: state "description" as s1
				if desc, rest, ok := strings.Cut(decl[1:], `"`); ok {
					if alias, ok := strings.CutPrefix(strings.TrimSpace(rest), "as "); ok {
						register(strings.TrimSpace(alias), desc, false)
					}
				}
			case strings.HasSuffix(decl, "<<choice>>") || strings.HasSuffix(decl, "<<fork>>") || strings.HasSuffix(decl, "<<join>>"):
				name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(decl, "<<choice>>"), "<<fork>>"), "<<join>>"))
				register(name, "", strings.HasSuffix(decl, "<<choice>>"))
			default:
				register(decl, "", false)
			}
			continue
		}

		// Bare state mention inside a block.
		if !strings.ContainsAny(line, "{}<>") && len(strings.Fields(line)) == 1 {
			register(line, "", false)
		}
	}

	res.Meta.NestingDepth = maxDepth
	return res
}

// Package er parses entity-relationship diagrams: entity blocks with typed
// attributes and key markers, and relationship lines with per-side
// cardinality tokens.
package er

import (
	"strings"

	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/diagram"
)

// Dialect registers the entity-relationship parser.
var Dialect = &dialect.Descriptor{
	Name: "er",
	Type: diagram.TypeER,
	New:  func() dialect.Parser { return &Parser{} },
}

// Parser is a stateless entity-relationship parser.
type Parser struct{}

// Cardinality tokens differ per side because the crow's foot points outward:
// on the left the brace leads, on the right it trails.
var leftCards = map[string]dialect.Cardinality{
	"||": dialect.CardExactlyOne,
	"|o": dialect.CardZeroOrOne,
	"o|": dialect.CardZeroOrOne,
	"}o": dialect.CardZeroOrMore,
	"}|": dialect.CardOneOrMore,
}

var rightCards = map[string]dialect.Cardinality{
	"||": dialect.CardExactlyOne,
	"o|": dialect.CardZeroOrOne,
	"|o": dialect.CardZeroOrOne,
	"o{": dialect.CardZeroOrMore,
	"|{": dialect.CardOneOrMore,
}

// Parse extracts entities, attributes, and relationships. Unrecognized
// lines are skipped.
func (p *Parser) Parse(source string) *dialect.Result {
	res := &dialect.Result{Direction: dialect.DirectionTD}

	entities := make(map[string]int) // name -> index in res.Entities
	current := -1                    // index of the open entity block

	ensure := func(name string) int {
		if i, ok := entities[name]; ok {
			return i
		}
		entities[name] = len(res.Entities)
		res.Entities = append(res.Entities, dialect.Entity{Name: name})
		return len(res.Entities) - 1
	}

	for line := range strings.Lines(source) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "erdiagram") {
			continue
		}

		// Inside an entity block.
		if current >= 0 {
			if line == "}" {
				current = -1
				continue
			}
			if attr, ok := parseAttribute(line); ok {
				res.Entities[current].Attributes = append(res.Entities[current].Attributes, attr)
			}
			continue
		}

		if rel, ok := parseRelation(line); ok {
			ensure(rel.Left)
			ensure(rel.Right)
			res.EntityRels = append(res.EntityRels, rel)
			continue
		}

		// Block opener: ENTITY {
		if name, ok := strings.CutSuffix(line, "{"); ok {
			name = strings.TrimSpace(name)
			if name != "" && !strings.Contains(name, " ") {
				current = ensure(name)
			}
			continue
		}

		// Bare entity declaration.
		if fields := strings.Fields(line); len(fields) == 1 {
			ensure(fields[0])
		}
	}

	for _, e := range res.Entities {
		res.Nodes = append(res.Nodes, dialect.Node{ID: e.Name})
	}
	for _, rel := range res.EntityRels {
		res.Edges = append(res.Edges, dialect.Edge{
			From:  rel.Left,
			To:    rel.Right,
			Label: rel.Label,
			Kind:  dialect.RelRelation,
		})
	}
	return res
}

// parseAttribute parses one "type name [PK|FK|UK] ["comment"]" line.
func parseAttribute(line string) (dialect.EntityAttribute, bool) {
	// Trailing quoted comments are dropped.
	if i := strings.IndexByte(line, '"'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return dialect.EntityAttribute{}, false
	}
	attr := dialect.EntityAttribute{Type: fields[0], Name: fields[1]}
	for _, f := range fields[2:] {
		switch strings.ToUpper(f) {
		case "PK":
			attr.Key = dialect.KeyPrimary
		case "FK":
			attr.Key = dialect.KeyForeign
		case "UK":
			attr.Key = dialect.KeyUnique
		}
	}
	return attr, true
}

// parseRelation parses "LEFT <card><conn><card> RIGHT : label". The
// connector is "--" for identifying relationships and ".." for
// non-identifying ones.
func parseRelation(line string) (dialect.EntityRelation, bool) {
	body, label, hasLabel := strings.Cut(line, ":")
	fields := strings.Fields(strings.TrimSpace(body))
	if len(fields) != 3 {
		return dialect.EntityRelation{}, false
	}
	left, op, right := fields[0], fields[1], fields[2]

	identifying := true
	l, r, ok := strings.Cut(op, "--")
	if !ok {
		l, r, ok = strings.Cut(op, "..")
		identifying = false
	}
	if !ok {
		return dialect.EntityRelation{}, false
	}
	leftCard, lok := leftCards[l]
	rightCard, rok := rightCards[r]
	if !lok || !rok {
		return dialect.EntityRelation{}, false
	}

	rel := dialect.EntityRelation{
		Left:        left,
		Right:       right,
		LeftCard:    leftCard,
		RightCard:   rightCard,
		Identifying: identifying,
	}
	if hasLabel {
		rel.Label = strings.Trim(strings.TrimSpace(label), `"`)
	}
	return rel, true
}

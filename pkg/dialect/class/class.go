// Package class parses class diagrams: block-style and line-style member
// declarations plus the five typed relationship operators, with optional
// quoted multiplicities on either side of an association.
package class

import (
	"strings"

	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/diagram"
)

// Dialect registers the class-diagram parser.
var Dialect = &dialect.Descriptor{
	Name: "class",
	Type: diagram.TypeClass,
	New:  func() dialect.Parser { return &Parser{} },
}

// Parser is a stateless class-diagram parser.
type Parser struct{}

// operator describes one relationship token. The arrow for inheritance is
// reversed relative to its syntax: the syntactic parent is the semantic
// supertype, so the logical From is always the syntactic child. swap marks
// operators whose arrowhead (or diamond) sits on the left/right such that
// the logical direction runs right-to-left.
type operator struct {
	token string
	kind  dialect.RelKind
	swap  bool
}

// operators in match order: longer tokens first.
var operators = []operator{
	{"<|--", dialect.RelInheritance, true}, // A <|-- B: B inherits A
	{"--|>", dialect.RelInheritance, false},
	{"<|..", dialect.RelInheritance, true}, // realization folded into inheritance
	{"..|>", dialect.RelInheritance, false},
	{"*--", dialect.RelComposition, false},
	{"--*", dialect.RelComposition, true},
	{"o--", dialect.RelAggregation, false},
	{"--o", dialect.RelAggregation, true},
	{"<--", dialect.RelAssociation, true},
	{"-->", dialect.RelAssociation, false},
	{"<..", dialect.RelDependency, true},
	{"..>", dialect.RelDependency, false},
	{"--", dialect.RelAssociation, false},
	{"..", dialect.RelDependency, false},
}

// Parse extracts classes, members, and relationships. Unrecognized lines
// are skipped.
func (p *Parser) Parse(source string) *dialect.Result {
	res := &dialect.Result{Direction: dialect.DirectionTD}

	classes := make(map[string]int) // name -> index in res.Classes
	current := -1                   // index of the open block-style class

	ensure := func(name string) int {
		if i, ok := classes[name]; ok {
			return i
		}
		classes[name] = len(res.Classes)
		res.Classes = append(res.Classes, dialect.Class{Name: name})
		return len(res.Classes) - 1
	}

	for line := range strings.Lines(source) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "classdiagram") {
			continue
		}
		if strings.HasPrefix(lower, "direction") {
			if fields := strings.Fields(line); len(fields) > 1 {
				res.Direction = dialect.ParseDirection(fields[1])
			}
			continue
		}

		// Inside a block-style class body.
		if current >= 0 {
			if line == "}" {
				current = -1
				continue
			}
			addMember(&res.Classes[current], line)
			continue
		}

		// Block opener: class Name {
		if name, ok := strings.CutPrefix(line, "class "); ok {
			name = strings.TrimSpace(name)
			if body, open := strings.CutSuffix(name, "{"); open {
				current = ensure(strings.TrimSpace(body))
				continue
			}
			if !strings.ContainsAny(name, "<>-.*o:") {
				ensure(name)
				continue
			}
			// "class A <|-- B" style falls through to relationship parsing.
			line = name
		}

		if rel, ok := parseRelationship(line); ok {
			ensure(rel.From)
			ensure(rel.To)
			res.Relationships = append(res.Relationships, rel)
			continue
		}

		// Line-style member: Name : +member
		if name, member, ok := strings.Cut(line, ":"); ok {
			name = strings.TrimSpace(name)
			member = strings.TrimSpace(member)
			if name != "" && member != "" && !strings.Contains(name, " ") {
				addMember(&res.Classes[ensure(name)], member)
			}
		}
	}

	for _, c := range res.Classes {
		res.Nodes = append(res.Nodes, dialect.Node{ID: c.Name})
	}
	for _, rel := range res.Relationships {
		res.Edges = append(res.Edges, dialect.Edge{
			From:  rel.From,
			To:    rel.To,
			Label: rel.Label,
			Kind:  rel.Kind,
		})
	}
	return res
}

// addMember classifies a member line: text containing "(" is a method,
// anything else an attribute.
func addMember(c *dialect.Class, member string) {
	member = strings.TrimSpace(member)
	if member == "" || strings.HasPrefix(member, "<<") {
		return // annotations like <<interface>> are not members
	}
	if strings.Contains(member, "(") {
		c.Methods = append(c.Methods, member)
	} else {
		c.Attributes = append(c.Attributes, member)
	}
}

// parseRelationship scans for a relationship operator and parses the
// optional quoted multiplicities and trailing ": label".
func parseRelationship(line string) (dialect.Relationship, bool) {
	label := ""
	if body, l, ok := cutLabel(line); ok {
		line = body
		label = l
	}

	for i := 0; i < len(line); i++ {
		for _, op := range operators {
			if !strings.HasPrefix(line[i:], op.token) {
				continue
			}
			left, leftMult := splitMultiplicity(line[:i], true)
			right, rightMult := splitMultiplicity(line[i+len(op.token):], false)
			if left == "" || right == "" {
				return dialect.Relationship{}, false
			}
			rel := dialect.Relationship{
				From:     left,
				To:       right,
				Kind:     op.kind,
				Label:    label,
				FromMult: leftMult,
				ToMult:   rightMult,
			}
			if op.swap {
				rel.From, rel.To = rel.To, rel.From
				rel.FromMult, rel.ToMult = rel.ToMult, rel.FromMult
			}
			return rel, true
		}
	}
	return dialect.Relationship{}, false
}

// cutLabel splits a trailing ": label" off a relationship line. The colon
// must appear after the last quote so that quoted multiplicities containing
// colons (e.g. "1:n") are left intact.
func cutLabel(line string) (string, string, bool) {
	idx := strings.LastIndexByte(line, ':')
	if idx < 0 || idx < strings.LastIndexByte(line, '"') {
		return line, "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// splitMultiplicity separates a class name from its quoted multiplicity.
// For the left side the multiplicity trails the name; for the right side
// it leads.
func splitMultiplicity(s string, left bool) (name, mult string) {
	s = strings.TrimSpace(s)
	if left {
		if strings.HasSuffix(s, `"`) {
			if j := strings.LastIndexByte(s[:len(s)-1], '"'); j >= 0 {
				return strings.TrimSpace(s[:j]), s[j+1 : len(s)-1]
			}
		}
		return s, ""
	}
	if strings.HasPrefix(s, `"`) {
		if i := strings.IndexByte(s[1:], '"'); i >= 0 {
			return strings.TrimSpace(s[i+2:]), s[1 : i+1]
		}
	}
	return s, ""
}

// Package sequence parses interaction diagrams: explicit and implicit
// participants, every message arrow style, and loop/alt/par block nesting.
package sequence

import (
	"strings"

	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/diagram"
)

// Dialect registers the sequence-diagram parser.
var Dialect = &dialect.Descriptor{
	Name: "sequence",
	Type: diagram.TypeSequence,
	New:  func() dialect.Parser { return &Parser{} },
}

// Parser is a stateless sequence-diagram parser.
type Parser struct{}

// arrows in match order: longer tokens first. Dashed arrows ("--" prefix)
// are reply/return messages; open-paren arrowheads are asynchronous.
var arrows = []string{"-->>", "--)", "--x", "-->", "->>", "-)", "-x", "->"}

// blockOpeners increment nesting depth until their matching "end".
var blockOpeners = map[string]bool{
	"loop":     true,
	"alt":      true,
	"opt":      true,
	"par":      true,
	"critical": true,
	"break":    true,
	"rect":     true,
}

// neutral keywords inside blocks that neither open nor close.
var neutral = map[string]bool{
	"else":   true,
	"and":    true,
	"option": true,
}

// skipped line prefixes: annotations, not structure.
var skipPrefixes = []string{"note", "activate", "deactivate", "autonumber", "title", "box"}

// Parse extracts participants, messages, and the maximum block nesting
// depth. Participants are registered explicitly via declarations and
// implicitly on first appearance as a message endpoint.
func (p *Parser) Parse(source string) *dialect.Result {
	res := &dialect.Result{Direction: dialect.DirectionLR}

	seen := make(map[string]bool)
	depth, maxDepth := 0, 0

	register := func(name, label string, explicit bool) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		res.Participants = append(res.Participants, dialect.Participant{Name: name, Explicit: explicit})
		res.Nodes = append(res.Nodes, dialect.Node{ID: name, Label: label})
	}

	for line := range strings.Lines(source) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "%%") {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "sequencediagram") {
			continue
		}

		word, _, _ := strings.Cut(lower, " ")
		switch {
		case word == "participant" || word == "actor":
			decl := strings.TrimSpace(line[len(word):])
			if name, alias, ok := cutCaseless(decl, " as "); ok {
				register(name, strings.TrimSpace(alias), true)
			} else {
				register(decl, "", true)
			}
			continue
		case blockOpeners[word]:
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
			continue
		case word == "end":
			if depth > 0 {
				depth--
			}
			continue
		case neutral[word]:
			continue
		case hasSkipPrefix(word):
			continue
		}

		if msg, ok := parseMessage(line); ok {
			register(msg.From, "", false)
			register(msg.To, "", false)
			res.Messages = append(res.Messages, msg)
			res.Edges = append(res.Edges, dialect.Edge{
				From:  msg.From,
				To:    msg.To,
				Label: msg.Text,
				Kind:  dialect.RelMessage,
			})
		}
	}

	res.Meta.NestingDepth = maxDepth
	return res
}

func hasSkipPrefix(word string) bool {
	for _, p := range skipPrefixes {
		if word == p {
			return true
		}
	}
	return false
}

// cutCaseless cuts s around the first case-insensitive occurrence of sep.
func cutCaseless(s, sep string) (before, after string, found bool) {
	idx := strings.Index(strings.ToLower(s), strings.ToLower(sep))
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// parseMessage scans for a message arrow and splits sender, receiver, and
// text. Every arrow style counts as a message regardless of visual form.
func parseMessage(line string) (dialect.Message, bool) {
	for i := 0; i < len(line); i++ {
		for _, a := range arrows {
			if !strings.HasPrefix(line[i:], a) {
				continue
			}
			from := strings.TrimSpace(line[:i])
			rest := line[i+len(a):]
			rest = strings.TrimPrefix(rest, "+") // activation shorthand
			rest = strings.TrimPrefix(rest, "-")
			to, text, _ := strings.Cut(rest, ":")
			if from == "" || strings.TrimSpace(to) == "" {
				return dialect.Message{}, false
			}
			return dialect.Message{
				From: from,
				To:   strings.TrimSpace(to),
				Kind: messageKind(a),
				Text: strings.TrimSpace(text),
			}, true
		}
	}
	return dialect.Message{}, false
}

func messageKind(arrow string) dialect.MessageKind {
	switch {
	case strings.HasPrefix(arrow, "--"):
		return dialect.MessageReturn
	case strings.HasSuffix(arrow, ")"):
		return dialect.MessageAsync
	default:
		return dialect.MessageSync
	}
}

// Package diagram defines the core value types shared by every analysis
// stage: the Diagram input value and its dialect Type tag.
//
// A Diagram is an immutable snapshot of one fenced diagram block found in a
// documentation file. Identity is positional (file path + start line), not
// content based: two identical diagrams in different files are distinct.
package diagram

import "strings"

// Type identifies the markup dialect of a diagram.
type Type string

// Known dialect tags. TypeUnknown is a normal, valid result: it means no
// dialect-specific parsing or size estimation applies, not that detection
// failed.
const (
	TypeFlowchart Type = "flowchart"
	TypeState     Type = "state"
	TypeClass     Type = "class"
	TypeSequence  Type = "sequence"
	TypeER        Type = "er"
	TypePie       Type = "pie"
	TypeMindmap   Type = "mindmap"
	TypeGantt     Type = "gantt"
	TypeUnknown   Type = "unknown"
)

// Diagram is one extracted diagram block.
// Values are never mutated after creation.
type Diagram struct {
	// Source is the raw diagram markup, without the surrounding code fence.
	Source string `json:"source"`

	// Type is the detected dialect tag.
	Type Type `json:"type"`

	// FilePath is the originating file, as given by the extractor.
	FilePath string `json:"file_path"`

	// StartLine is the 1-indexed line of the first diagram source line
	// within FilePath.
	StartLine int `json:"start_line"`
}

// New creates a Diagram and detects its dialect from the source text.
func New(source, filePath string, startLine int) Diagram {
	return Diagram{
		Source:    source,
		Type:      Detect(source),
		FilePath:  filePath,
		StartLine: startLine,
	}
}

// signature maps a header keyword to a dialect tag. Order matters: the
// first matching signature wins, so more specific keywords come first.
type signature struct {
	keyword string
	typ     Type
}

// signatures is the ordered detection table. Only the first non-blank line
// of a diagram is consulted, keeping detection O(1) in diagram size.
var signatures = []signature{
	{"statediagram", TypeState}, // covers stateDiagram and stateDiagram-v2
	{"classdiagram", TypeClass},
	{"sequencediagram", TypeSequence},
	{"erdiagram", TypeER},
	{"flowchart", TypeFlowchart},
	{"graph", TypeFlowchart},
	{"pie", TypePie},
	{"mindmap", TypeMindmap},
	{"gantt", TypeGantt},
}

// Detect classifies raw diagram text by matching its first non-blank line,
// case-insensitively, against the known dialect signatures. It never fails:
// unmatched text yields TypeUnknown.
func Detect(source string) Type {
	first := firstNonBlankLine(source)
	if first == "" {
		return TypeUnknown
	}
	first = strings.ToLower(first)
	for _, sig := range signatures {
		if strings.HasPrefix(first, sig.keyword) {
			return sig.typ
		}
	}
	return TypeUnknown
}

func firstNonBlankLine(source string) string {
	for line := range strings.Lines(source) {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed
		}
	}
	return ""
}

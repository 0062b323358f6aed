package diagram

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   Type
	}{
		{"flowchart keyword", "flowchart TD\n  A --> B", TypeFlowchart},
		{"graph keyword", "graph LR\n  A --> B", TypeFlowchart},
		{"state diagram", "stateDiagram\n  [*] --> Idle", TypeState},
		{"state diagram v2", "stateDiagram-v2\n  [*] --> Idle", TypeState},
		{"class diagram", "classDiagram\n  Animal <|-- Dog", TypeClass},
		{"sequence diagram", "sequenceDiagram\n  A->>B: hi", TypeSequence},
		{"er diagram", "erDiagram\n  A ||--o{ B : has", TypeER},
		{"pie", "pie title Pets\n  \"Dogs\": 40", TypePie},
		{"mindmap", "mindmap\n  root", TypeMindmap},
		{"gantt", "gantt\n  title Plan", TypeGantt},
		{"case insensitive", "FLOWCHART TD\n  A --> B", TypeFlowchart},
		{"leading blank lines", "\n\n  graph TD\n  A --> B", TypeFlowchart},
		{"unknown text", "this is not a diagram", TypeUnknown},
		{"empty source", "", TypeUnknown},
		{"whitespace only", "  \n\t\n", TypeUnknown},
		{"keyword mid-line does not match", "my graph of things", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.source); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	d := New("graph TD\n  A --> B", "docs/arch.md", 12)

	if d.Type != TypeFlowchart {
		t.Errorf("Type = %v, want %v", d.Type, TypeFlowchart)
	}
	if d.FilePath != "docs/arch.md" {
		t.Errorf("FilePath = %q", d.FilePath)
	}
	if d.StartLine != 12 {
		t.Errorf("StartLine = %d, want 12", d.StartLine)
	}
	if d.Source != "graph TD\n  A --> B" {
		t.Errorf("Source = %q", d.Source)
	}
}

func TestDetectStateBeatsClassPrefixOrder(t *testing.T) {
	// stateDiagram-v2 must not be shadowed by a shorter signature.
	if got := Detect("stateDiagram-v2"); got != TypeState {
		t.Errorf("Detect(stateDiagram-v2) = %v, want %v", got, TypeState)
	}
}

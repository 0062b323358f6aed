package dialect

import "testing"

func TestParseDirectionTokens(t *testing.T) {
	tests := []struct {
		token string
		want  Direction
	}{
		{"LR", DirectionLR},
		{"lr", DirectionLR},
		{"RL", DirectionRL},
		{"BT", DirectionBT},
		{"TD", DirectionTD},
		{"TB", DirectionTD}, // alias
		{" LR ", DirectionLR},
		{"sideways", DirectionTD}, // unrecognized defaults
		{"", DirectionTD},
	}

	for _, tt := range tests {
		if got := ParseDirection(tt.token); got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestDirectionHorizontal(t *testing.T) {
	if !DirectionLR.Horizontal() || !DirectionRL.Horizontal() {
		t.Error("LR and RL are horizontal")
	}
	if DirectionTD.Horizontal() || DirectionBT.Horizontal() {
		t.Error("TD and BT are vertical")
	}
}

func TestBuildGraph(t *testing.T) {
	res := &Result{
		Nodes: []Node{{ID: "A"}, {ID: "B"}},
		Edges: []Edge{
			{From: "A", To: "B"},
			{From: "B", To: "C"}, // C only appears as an endpoint
		},
	}

	g := BuildGraph(res)
	if g.NodeCount() != 3 {
		t.Errorf("node count = %d, want 3 (endpoints registered)", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("edge count = %d, want 2", g.EdgeCount())
	}

	// Building twice yields equal graphs.
	if !g.Equal(BuildGraph(res)) {
		t.Error("BuildGraph should be deterministic")
	}
}

func TestBuildGraphNil(t *testing.T) {
	g := BuildGraph(nil)
	if g == nil {
		t.Fatal("BuildGraph(nil) should return an empty graph, not nil")
	}
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty graph expected, got %d nodes %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func TestAverageLabelLength(t *testing.T) {
	res := &Result{
		Nodes: []Node{
			{ID: "A", Label: "Start"},  // 5
			{ID: "LongID", Label: ""},  // falls back to ID: 6
			{ID: "C", Label: "Done?!"}, // 6
		},
	}
	want := (5.0 + 6.0 + 6.0) / 3.0
	if got := res.AverageLabelLength(); got != want {
		t.Errorf("AverageLabelLength = %v, want %v", got, want)
	}

	empty := &Result{}
	if empty.AverageLabelLength() != 0 {
		t.Error("AverageLabelLength of empty result should be 0")
	}
}

func TestDecisionCount(t *testing.T) {
	res := &Result{
		Nodes: []Node{
			{ID: "A"},
			{ID: "B", Decision: true},
			{ID: "C", Decision: true},
		},
	}
	if got := res.DecisionCount(); got != 2 {
		t.Errorf("DecisionCount = %d, want 2", got)
	}
}

func TestDisplayLabel(t *testing.T) {
	if got := (Node{ID: "A", Label: "Start"}).DisplayLabel(); got != "Start" {
		t.Errorf("DisplayLabel = %q, want Start", got)
	}
	if got := (Node{ID: "A"}).DisplayLabel(); got != "A" {
		t.Errorf("DisplayLabel = %q, want A", got)
	}
}

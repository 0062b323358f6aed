package state

import (
	"testing"

	"github.com/matzehuels/diaglens/pkg/dialect"
)

func parse(t *testing.T, source string) *dialect.Result {
	t.Helper()
	return (&Parser{}).Parse(source)
}

func TestParsePseudoStateExcluded(t *testing.T) {
	source := `stateDiagram-v2
  [*] --> Idle
  Idle --> Running : start
  Running --> [*]`
	res := parse(t, source)

	// [*] is not a node; transitions touching it are tallied separately.
	if len(res.Nodes) != 2 {
		t.Fatalf("nodes = %v, want 2 (Idle, Running)", res.Nodes)
	}
	if len(res.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(res.Edges))
	}
	if res.Edges[0].From != "Idle" || res.Edges[0].To != "Running" {
		t.Errorf("edge = %+v", res.Edges[0])
	}
	if res.Edges[0].Label != "start" {
		t.Errorf("label = %q, want start", res.Edges[0].Label)
	}
	if res.Edges[0].Kind != dialect.RelTransition {
		t.Errorf("kind = %v, want transition", res.Edges[0].Kind)
	}
	if res.Meta.PseudoStates != 2 {
		t.Errorf("pseudo states = %d, want 2", res.Meta.PseudoStates)
	}
}

func TestParseCompositeStates(t *testing.T) {
	source := `stateDiagram-v2
  state Active {
    state Busy {
      Working --> Waiting
    }
  }
  Active --> Done`
	res := parse(t, source)

	if res.Meta.CompositeStates != 2 {
		t.Errorf("composite states = %d, want 2", res.Meta.CompositeStates)
	}
	if res.Meta.NestingDepth != 2 {
		t.Errorf("nesting depth = %d, want 2", res.Meta.NestingDepth)
	}
	for _, want := range []string{"Active", "Busy", "Working", "Waiting", "Done"} {
		found := false
		for _, n := range res.Nodes {
			if n.ID == want {
				found = true
			}
		}
		if !found {
			t.Errorf("node %s not registered", want)
		}
	}
}

func TestParseDescribedState(t *testing.T) {
	res := parse(t, "stateDiagram-v2\nstate \"Waiting for input\" as s1\ns1 --> s2")

	if res.Nodes[0].ID != "s1" || res.Nodes[0].Label != "Waiting for input" {
		t.Errorf("described state = %+v", res.Nodes[0])
	}
}

func TestParseChoiceState(t *testing.T) {
	source := `stateDiagram-v2
  state check <<choice>>
  state split <<fork>>
  state merge <<join>>`
	res := parse(t, source)

	if len(res.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(res.Nodes))
	}
	if !res.Nodes[0].Decision {
		t.Error("choice state should be a decision node")
	}
	if res.Nodes[1].Decision || res.Nodes[2].Decision {
		t.Error("fork/join states are not decision nodes")
	}
}

func TestParseDirectionDirective(t *testing.T) {
	res := parse(t, "stateDiagram-v2\ndirection LR\nA --> B")
	if res.Direction != dialect.DirectionLR {
		t.Errorf("direction = %v, want LR", res.Direction)
	}
}

func TestParseSelfTransition(t *testing.T) {
	res := parse(t, "stateDiagram-v2\nRunning --> Running : tick")

	if len(res.Nodes) != 1 {
		t.Errorf("nodes = %d, want 1", len(res.Nodes))
	}
	if len(res.Edges) != 1 || res.Edges[0].From != res.Edges[0].To {
		t.Errorf("self transition = %+v", res.Edges)
	}
}

func TestParseBareStateMention(t *testing.T) {
	res := parse(t, "stateDiagram-v2\nIdle")

	if len(res.Nodes) != 1 || res.Nodes[0].ID != "Idle" {
		t.Errorf("nodes = %+v, want [Idle]", res.Nodes)
	}
}

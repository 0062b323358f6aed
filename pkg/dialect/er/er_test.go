package er

import (
	"testing"

	"github.com/matzehuels/diaglens/pkg/dialect"
)

func parse(t *testing.T, source string) *dialect.Result {
	t.Helper()
	return (&Parser{}).Parse(source)
}

func TestParseRelation(t *testing.T) {
	res := parse(t, "erDiagram\nCUSTOMER ||--o{ ORDER : places")

	if len(res.Entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(res.Entities))
	}
	if len(res.EntityRels) != 1 {
		t.Fatalf("relations = %d, want 1", len(res.EntityRels))
	}
	rel := res.EntityRels[0]
	if rel.Left != "CUSTOMER" || rel.Right != "ORDER" {
		t.Errorf("rel = %+v", rel)
	}
	if rel.LeftCard != dialect.CardExactlyOne {
		t.Errorf("left card = %v, want exactly-one", rel.LeftCard)
	}
	if rel.RightCard != dialect.CardZeroOrMore {
		t.Errorf("right card = %v, want zero-or-more", rel.RightCard)
	}
	if !rel.Identifying {
		t.Error("-- connector should be identifying")
	}
	if rel.Label != "places" {
		t.Errorf("label = %q, want places", rel.Label)
	}
}

func TestParseCardinalities(t *testing.T) {
	tests := []struct {
		name  string
		op    string
		left  dialect.Cardinality
		right dialect.Cardinality
	}{
		{"one to one", "||--||", dialect.CardExactlyOne, dialect.CardExactlyOne},
		{"zero-or-one left", "|o--||", dialect.CardZeroOrOne, dialect.CardExactlyOne},
		{"zero-or-one right", "||--o|", dialect.CardExactlyOne, dialect.CardZeroOrOne},
		{"zero-or-more left", "}o--||", dialect.CardZeroOrMore, dialect.CardExactlyOne},
		{"one-or-more left", "}|--||", dialect.CardOneOrMore, dialect.CardExactlyOne},
		{"one-or-more right", "||--|{", dialect.CardExactlyOne, dialect.CardOneOrMore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, "erDiagram\nA "+tt.op+" B : r")
			if len(res.EntityRels) != 1 {
				t.Fatalf("relations = %d, want 1", len(res.EntityRels))
			}
			rel := res.EntityRels[0]
			if rel.LeftCard != tt.left || rel.RightCard != tt.right {
				t.Errorf("cards = %v/%v, want %v/%v", rel.LeftCard, rel.RightCard, tt.left, tt.right)
			}
		})
	}
}

func TestParseNonIdentifying(t *testing.T) {
	res := parse(t, "erDiagram\nPERSON ||..o{ CAR : owns")

	if len(res.EntityRels) != 1 {
		t.Fatalf("relations = %d, want 1", len(res.EntityRels))
	}
	if res.EntityRels[0].Identifying {
		t.Error(".. connector should be non-identifying")
	}
}

func TestParseEntityBlock(t *testing.T) {
	source := `erDiagram
  CUSTOMER {
    string id PK
    string email UK
    int orderCount
    string note "free text"
  }`
	res := parse(t, source)

	if len(res.Entities) != 1 {
		t.Fatalf("entities = %d, want 1", len(res.Entities))
	}
	attrs := res.Entities[0].Attributes
	if len(attrs) != 4 {
		t.Fatalf("attributes = %d, want 4", len(attrs))
	}
	if attrs[0].Key != dialect.KeyPrimary {
		t.Errorf("attrs[0].Key = %v, want PK", attrs[0].Key)
	}
	if attrs[1].Key != dialect.KeyUnique {
		t.Errorf("attrs[1].Key = %v, want UK", attrs[1].Key)
	}
	if attrs[2].Key != dialect.KeyNone {
		t.Errorf("attrs[2].Key = %v, want none", attrs[2].Key)
	}
	if attrs[3].Type != "string" || attrs[3].Name != "note" {
		t.Errorf("attrs[3] = %+v, quoted comment should be dropped", attrs[3])
	}
}

func TestParseFullyConnected(t *testing.T) {
	source := `erDiagram
  A ||--|| B : r1
  B ||--|| C : r2
  A ||--|| C : r3`
	res := parse(t, source)

	if len(res.Entities) != 3 {
		t.Errorf("entities = %d, want 3", len(res.Entities))
	}
	if len(res.EntityRels) != 3 {
		t.Errorf("relations = %d, want 3", len(res.EntityRels))
	}
	if len(res.Edges) != 3 {
		t.Errorf("edges = %d, want 3", len(res.Edges))
	}
	for _, e := range res.Edges {
		if e.Kind != dialect.RelRelation {
			t.Errorf("edge kind = %v, want relation", e.Kind)
		}
	}
}

func TestParseBareEntity(t *testing.T) {
	res := parse(t, "erDiagram\nCUSTOMER")

	if len(res.Entities) != 1 || res.Entities[0].Name != "CUSTOMER" {
		t.Errorf("entities = %+v", res.Entities)
	}
}

package pipeline

import (
	"github.com/matzehuels/diaglens/pkg/dialect"
	"github.com/matzehuels/diaglens/pkg/dialect/class"
	"github.com/matzehuels/diaglens/pkg/dialect/er"
	"github.com/matzehuels/diaglens/pkg/dialect/flowchart"
	"github.com/matzehuels/diaglens/pkg/dialect/sequence"
	"github.com/matzehuels/diaglens/pkg/dialect/state"
	"github.com/matzehuels/diaglens/pkg/diagram"
)

// dialects is the registry of supported dialect parsers.
var dialects = []*dialect.Descriptor{
	flowchart.Dialect,
	state.Dialect,
	class.Dialect,
	sequence.Dialect,
	er.Dialect,
}

// descriptorFor returns the parser descriptor for a detected dialect tag.
// The bool is false for tags with no structural parser (pie, gantt,
// mindmap, unknown).
func descriptorFor(t diagram.Type) (*dialect.Descriptor, bool) {
	for _, d := range dialects {
		if d.Type == t {
			return d, true
		}
	}
	return nil, false
}

// DialectNames returns the supported dialect names in registration order.
func DialectNames() []string {
	names := make([]string, len(dialects))
	for i, d := range dialects {
		names[i] = d.Name
	}
	return names
}

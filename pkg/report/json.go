package report

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/diaglens/pkg/pipeline"
)

// JSONReporter renders the full result set as one JSON document.
type JSONReporter struct{}

type jsonReport struct {
	Summary Summary              `json:"summary"`
	Results []*pipeline.Analysis `json:"results"`
}

// Write emits indented JSON with a summary header.
func (r *JSONReporter) Write(w io.Writer, results []*pipeline.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Summary: Summarize(results),
		Results: results,
	})
}

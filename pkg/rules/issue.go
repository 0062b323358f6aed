package rules

import "strings"

// Severity grades an issue.
type Severity string

// Severities, lowest to highest.
const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Rank orders severities for threshold comparisons: info < warning < error.
// Unknown severities rank below info.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	}
	return 0
}

// ParseSeverity maps a config token to a Severity, case-insensitively.
// The bool is false for unrecognized tokens.
func ParseSeverity(s string) (Severity, bool) {
	switch sev := Severity(strings.ToLower(s)); sev {
	case SeverityInfo, SeverityWarning, SeverityError:
		return sev, true
	}
	return "", false
}

// Issue is one finding produced by a rule check. Immutable once created.
type Issue struct {
	Rule       string   `json:"rule" bson:"rule"`
	Severity   Severity `json:"severity" bson:"severity"`
	Message    string   `json:"message" bson:"message"`
	FilePath   string   `json:"file_path" bson:"file_path"`
	Line       int      `json:"line" bson:"line"`
	Suggestion string   `json:"suggestion,omitempty" bson:"suggestion,omitempty"`
	Citation   string   `json:"citation,omitempty" bson:"citation,omitempty"`
}

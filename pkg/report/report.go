// Package report renders analysis results in the supported output formats:
// a styled console report, machine-readable JSON, JUnit XML for CI test
// ingestion, and GitHub workflow annotations.
//
// All formats emit issues in deterministic order (file path, line, rule)
// so repeated runs over the same tree produce identical output.
package report

import (
	"io"
	"sort"

	"github.com/matzehuels/diaglens/pkg/errors"
	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// Output format names.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatJUnit   = "junit"
	FormatGitHub  = "github"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatConsole: true,
	FormatJSON:    true,
	FormatJUnit:   true,
	FormatGitHub:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: console, json, junit, github)", format)
	}
	return nil
}

// Reporter renders a full result set to a writer.
type Reporter interface {
	Write(w io.Writer, results []*pipeline.Analysis) error
}

// New returns the reporter for a format name.
func New(format string) (Reporter, error) {
	switch format {
	case FormatConsole:
		return &ConsoleReporter{}, nil
	case FormatJSON:
		return &JSONReporter{}, nil
	case FormatJUnit:
		return &JUnitReporter{}, nil
	case FormatGitHub:
		return &GitHubReporter{}, nil
	}
	return nil, ValidateFormat(format)
}

// Summary aggregates a result set.
type Summary struct {
	Diagrams int `json:"diagrams"`
	Cached   int `json:"cached"`
	Issues   int `json:"issues"`
	Infos    int `json:"infos"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// Summarize computes counts over a result set.
func Summarize(results []*pipeline.Analysis) Summary {
	s := Summary{Diagrams: len(results)}
	for _, res := range results {
		if res.CacheInfo.Hit {
			s.Cached++
		}
		s.Issues += len(res.Issues)
		for _, issue := range res.Issues {
			switch issue.Severity {
			case rules.SeverityInfo:
				s.Infos++
			case rules.SeverityWarning:
				s.Warnings++
			case rules.SeverityError:
				s.Errors++
			}
		}
	}
	return s
}

// Flatten collects every issue across results, sorted by file path, line,
// then rule name.
func Flatten(results []*pipeline.Analysis) []rules.Issue {
	var issues []rules.Issue
	for _, res := range results {
		issues = append(issues, res.Issues...)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
	return issues
}

package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// JUnitReporter renders results as a JUnit XML test suite, one test case
// per diagram, so CI systems can ingest diagram findings as test failures.
// Error-severity issues map to failures; info and warning issues are
// reported but do not fail the case.
type JUnitReporter struct{}

type junitSuite struct {
	XMLName  xml.Name    `xml:"testsuite"`
	Name     string      `xml:"name,attr"`
	Tests    int         `xml:"tests,attr"`
	Failures int         `xml:"failures,attr"`
	Cases    []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failures  []junitDetail `xml:"failure,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type junitDetail struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// Write emits the XML document.
func (r *JUnitReporter) Write(w io.Writer, results []*pipeline.Analysis) error {
	suite := junitSuite{Name: "diaglens", Tests: len(results)}

	for _, res := range results {
		tc := junitCase{
			Name:      fmt.Sprintf("%s:%d", res.Diagram.FilePath, res.Diagram.StartLine),
			ClassName: string(res.Diagram.Type),
		}
		for _, issue := range res.Issues {
			if issue.Severity == rules.SeverityError {
				tc.Failures = append(tc.Failures, junitDetail{
					Message: issue.Message,
					Type:    issue.Rule,
					Body:    issue.Suggestion,
				})
				continue
			}
			tc.SystemOut += fmt.Sprintf("[%s] %s: %s\n", issue.Severity, issue.Rule, issue.Message)
		}
		if len(tc.Failures) > 0 {
			suite.Failures++
		}
		suite.Cases = append(suite.Cases, tc)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suite); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

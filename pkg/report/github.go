package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// GitHubReporter emits GitHub Actions workflow commands, one annotation
// per issue, so findings appear inline on pull request diffs.
type GitHubReporter struct{}

// Write emits ::notice/::warning/::error workflow commands.
func (r *GitHubReporter) Write(w io.Writer, results []*pipeline.Analysis) error {
	for _, issue := range Flatten(results) {
		level := "notice"
		switch issue.Severity {
		case rules.SeverityWarning:
			level = "warning"
		case rules.SeverityError:
			level = "error"
		}
		message := issue.Message
		if issue.Suggestion != "" {
			message += " " + issue.Suggestion
		}
		fmt.Fprintf(w, "::%s file=%s,line=%d,title=%s::%s\n",
			level, issue.FilePath, issue.Line, issue.Rule, escapeAnnotation(message))
	}
	return nil
}

// escapeAnnotation applies the workflow-command data escaping rules.
func escapeAnnotation(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

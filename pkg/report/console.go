package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/rules"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - headings
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleHeading  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLocation = lipgloss.NewStyle().Foreground(colorGray)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorGreen)

	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityInfo:    lipgloss.NewStyle().Foreground(colorGray),
		rules.SeverityWarning: lipgloss.NewStyle().Foreground(colorYellow),
		rules.SeverityError:   lipgloss.NewStyle().Foreground(colorRed),
	}

	severityIcons = map[rules.Severity]string{
		rules.SeverityInfo:    "›",
		rules.SeverityWarning: "!",
		rules.SeverityError:   "✗",
	}
)

// ConsoleReporter renders a styled, human-readable report.
type ConsoleReporter struct{}

// Write renders all issues grouped under their file/line location,
// followed by a one-line summary.
func (r *ConsoleReporter) Write(w io.Writer, results []*pipeline.Analysis) error {
	issues := Flatten(results)

	lastLocation := ""
	for _, issue := range issues {
		location := fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
		if location != lastLocation {
			if lastLocation != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, styleHeading.Render(location))
			lastLocation = location
		}
		style := severityStyles[issue.Severity]
		fmt.Fprintf(w, "  %s %s %s\n",
			style.Render(severityIcons[issue.Severity]),
			style.Render(string(issue.Severity)),
			issue.Message+" "+styleLocation.Render("["+issue.Rule+"]"))
		if issue.Suggestion != "" {
			fmt.Fprintf(w, "    %s\n", styleDim.Render(issue.Suggestion))
		}
	}

	if len(issues) > 0 {
		fmt.Fprintln(w)
	}
	summary := Summarize(results)
	if summary.Issues == 0 {
		fmt.Fprintf(w, "%s %d diagrams analyzed, no issues found\n",
			styleSuccess.Render("✓"), summary.Diagrams)
		return nil
	}
	fmt.Fprintf(w, "%d diagrams analyzed %s %d issues (%d errors, %d warnings, %d info)\n",
		summary.Diagrams, styleDim.Render("·"),
		summary.Issues, summary.Errors, summary.Warnings, summary.Infos)
	return nil
}

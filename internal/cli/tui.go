package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/diaglens/pkg/pipeline"
	"github.com/matzehuels/diaglens/pkg/report"
	"github.com/matzehuels/diaglens/pkg/rules"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// IssueListModel - Interactive issue browsing
// =============================================================================

// IssueListModel is the bubbletea model for browsing analysis issues.
type IssueListModel struct {
	Issues   []rules.Issue
	Cursor   int
	Height   int
	Offset   int
	Detail   bool
	Diagrams int
}

// NewIssueListModel creates a new issue list model from analysis results.
func NewIssueListModel(results []*pipeline.Analysis) IssueListModel {
	return IssueListModel{
		Issues:   report.Flatten(results),
		Height:   15,
		Diagrams: len(results),
	}
}

func (m IssueListModel) Init() tea.Cmd {
	return nil
}

func (m IssueListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Issues)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Issues) > 0 {
				m.Detail = !m.Detail
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m IssueListModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m IssueListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Diagram Issues"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.Issues) == 0 {
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("  No issues in %d diagrams", m.Diagrams)))
		b.WriteString("\n")
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Issues) {
		end = len(m.Issues)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		issue := m.Issues[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		location := issue.FilePath
		if issue.Line > 0 {
			location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
		}

		rows = append(rows, []string{cursor, string(issue.Severity), issue.Rule, location})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Severity", "Rule", "Location").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Issues) {
				return lipgloss.NewStyle()
			}
			issue := m.Issues[actualIdx]

			base := lipgloss.NewStyle()
			if col == 1 {
				base = base.Foreground(severityColor(issue.Severity))
			}
			if actualIdx == m.Cursor {
				return base.Bold(true)
			}
			if col == 3 {
				return base.Foreground(colorGray)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Issues))))

	return b.String()
}

func (m IssueListModel) detailView() string {
	issue := m.Issues[m.Cursor]

	var b strings.Builder

	b.WriteString(StyleTitle.Render(issue.Rule))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	severity := lipgloss.NewStyle().Foreground(severityColor(issue.Severity)).Bold(true)
	b.WriteString(fmt.Sprintf("  %s %s\n", severity.Render(string(issue.Severity)), issue.Message))

	if issue.FilePath != "" {
		location := issue.FilePath
		if issue.Line > 0 {
			location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
		}
		b.WriteString(fmt.Sprintf("\n  %s %s\n", listDimStyle.Render("location:"), location))
	}
	if issue.Suggestion != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("suggestion:"), issue.Suggestion))
	}
	if issue.Citation != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", listDimStyle.Render("citation:"), listDimStyle.Render(issue.Citation)))
	}

	return b.String()
}

func severityColor(s rules.Severity) lipgloss.Color {
	switch s {
	case rules.SeverityError:
		return colorRed
	case rules.SeverityWarning:
		return colorYellow
	default:
		return colorCyan
	}
}

// browseIssues runs the interactive issue browser over the analysis results.
func browseIssues(results []*pipeline.Analysis) error {
	model := NewIssueListModel(results)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("run issue browser: %w", err)
	}
	return nil
}

package taskflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Reporter renders an Outcome into human-readable text. Styled output
// uses terminal colors; plain output is suitable for logs and tests.
type Reporter struct {
	Styled bool
}

var (
	reportTitleStyle   = lipgloss.NewStyle().Bold(true)
	reportSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	reportFailureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	reportStepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var titleCaser = cases.Title(language.English)

// timeRounding keeps reported durations readable.
const timeRounding = time.Millisecond

// Render produces the textual report for an outcome: a headline, one
// line per ledger entry, and a failure block when the run aborted.
func (r Reporter) Render(outcome Outcome) string {
	var b strings.Builder

	title := titleCaser.String(strings.ReplaceAll(string(outcome.Kind), "-", " "))
	headline := fmt.Sprintf("%s [%s]", title, outcome.RunID)
	b.WriteString(r.style(reportTitleStyle, headline))
	b.WriteString("\n")

	if outcome.Success {
		b.WriteString(r.style(reportSuccessStyle, "Status: completed"))
	} else {
		b.WriteString(r.style(reportFailureStyle, "Status: "+string(outcome.State)))
	}
	b.WriteString("\n")

	if len(outcome.Steps) > 0 {
		b.WriteString("Steps:\n")
		for i, s := range outcome.Steps {
			line := fmt.Sprintf("  %d. %s (%s)", i+1, s.Name, s.Service)
			b.WriteString(r.style(reportStepStyle, line))
			b.WriteString("\n")
		}
	} else {
		b.WriteString("Steps: none\n")
	}

	if !outcome.Success {
		b.WriteString(r.style(reportFailureStyle, "Failure: "+outcome.Message))
		b.WriteString("\n")
	} else if outcome.Message != "" {
		b.WriteString(outcome.Message)
		b.WriteString("\n")
	}

	if !outcome.Finished.IsZero() && !outcome.Started.IsZero() {
		b.WriteString(fmt.Sprintf("Duration: %s\n", outcome.Finished.Sub(outcome.Started).Round(timeRounding)))
	}

	return b.String()
}

func (r Reporter) style(s lipgloss.Style, text string) string {
	if !r.Styled {
		return text
	}
	return s.Render(text)
}

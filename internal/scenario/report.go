package scenario

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Summary counts results by outcome.
type Summary struct {
	Passed int
	Failed int
}

// Report writes one line per result followed by a summary line.
func Report(w io.Writer, results []Result) (Summary, error) {
	var s Summary
	for _, r := range results {
		var err error
		if r.Passed() {
			s.Passed++
			_, err = fmt.Fprintf(w, "%s %s %s\n",
				passStyle.Render("PASS"), r.Scenario.Name, detailStyle.Render(r.Duration.Round(time.Millisecond).String()))
		} else {
			s.Failed++
			_, err = fmt.Fprintf(w, "%s %s %s\n    %s\n",
				failStyle.Render("FAIL"), r.Scenario.Name, detailStyle.Render(fmt.Sprintf("step %d", r.Step)),
				errorStyle.Render(r.Err.Error()))
		}
		if err != nil {
			return s, err
		}
	}

	style := passStyle
	if s.Failed > 0 {
		style = failStyle
	}
	_, err := fmt.Fprintln(w, style.Render(fmt.Sprintf("%d passed, %d failed", s.Passed, s.Failed)))
	return s, err
}

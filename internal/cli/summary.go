package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/forPelevin/chapsplit/internal/types"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderSummary formats the run result: counts first, then every produced,
// skipped and failed output.
func renderSummary(sum types.Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"%d produced, %d skipped, %d failed",
		len(sum.Succeeded), len(sum.Skipped), len(sum.Failed),
	)))
	b.WriteString("\n")

	for _, p := range sum.Succeeded {
		b.WriteString(okStyle.Render("  ✓ " + p))
		b.WriteString("\n")
	}
	for _, p := range sum.Skipped {
		b.WriteString(skipStyle.Render("  • " + p + " (already exists)"))
		b.WriteString("\n")
	}
	for _, f := range sum.Failed {
		b.WriteString(failStyle.Render(fmt.Sprintf("  ✗ %s: %s", f.Name, firstLine(f.Reason))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

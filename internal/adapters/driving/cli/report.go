package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/antipat/internal/core/domain"
)

// Report styles. Colour only applies on interactive terminals.
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
)

// styled reports whether stdout is an interactive terminal.
func styled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// severityLabel renders a severity tag, coloured when interactive.
func severityLabel(sev domain.Severity) string {
	label := sev.String()
	if !styled() {
		return label
	}
	switch sev {
	case domain.SeverityError:
		return errorStyle.Render(label)
	case domain.SeverityWarning:
		return warningStyle.Render(label)
	default:
		return infoStyle.Render(label)
	}
}

// printReport writes a human-readable validation report.
func printReport(w io.Writer, report *domain.ValidationReport) {
	if report == nil {
		return
	}

	// Failed documents are mirrored into the findings stream as
	// parse-failure findings, so printing findings covers them.
	for _, f := range report.Findings {
		where := f.EntityID
		if where == "" {
			where = string(f.PatternID)
		}
		if where == "" {
			where = f.SourcePath
		}
		fmt.Fprintf(w, "  %s  [%s] %s: %s\n", severityLabel(f.Severity), f.Code, where, f.Message)
	}

	errs := report.Count(domain.SeverityError)
	warns := report.Count(domain.SeverityWarning)

	switch {
	case errs > 0:
		fmt.Fprintf(w, "\n%s %d error(s), %d warning(s)\n", renderIf(errorStyle, "FAIL"), errs, warns)
	case warns > 0:
		fmt.Fprintf(w, "\n%s %d warning(s)\n", renderIf(warningStyle, "PASS"), warns)
	default:
		fmt.Fprintf(w, "\n%s no findings\n", renderIf(okStyle, "PASS"))
	}
}

// renderIf applies a style only on interactive terminals.
func renderIf(style lipgloss.Style, s string) string {
	if !styled() {
		return s
	}
	return style.Render(s)
}

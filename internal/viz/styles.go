package viz

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))

	Converged = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	NotConverged = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	TopMatch = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("213"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255"))
)

// StatusLabel renders the convergence flag of a run.
func StatusLabel(converged bool) string {
	if converged {
		return Converged.Render("converged")
	}
	return NotConverged.Render("step cap reached")
}

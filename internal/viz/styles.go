package viz

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	LabelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	RabbitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	FoxStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	HelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	WarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// Legend renders the shared two-species legend line.
func Legend() string {
	return RabbitStyle.Render("── rabbits") + "   " + FoxStyle.Render("── foxes")
}

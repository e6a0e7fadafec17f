package console

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370"))
	helpStyle  = dimStyle.MarginTop(1)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Border(lipgloss.RoundedBorder())
	primaryStyle = buttonStyle.
			BorderForeground(lipgloss.Color("#61AFEF")).
			Foreground(lipgloss.Color("#61AFEF"))
	disabledStyle = buttonStyle.
			BorderForeground(lipgloss.Color("#3E4451")).
			Foreground(lipgloss.Color("#5C6370"))

	toastErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1E1E1E")).
			Background(lipgloss.Color("#E06C75")).
			Padding(0, 1)
	toastInfoStyle = toastErrorStyle.
			Background(lipgloss.Color("#98C379"))
)

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JaimeStill/agent-meet/internal/agentform"
	"github.com/JaimeStill/agent-meet/pkg/avatar"
)

// SubmitLabel is the submit button text for mode.
func SubmitLabel(mode agentform.Mode) string {
	if mode == agentform.ModeUpdate {
		return "Update"
	}
	return "Create"
}

func (m Model) View() string {
	var b strings.Builder

	title := "New agent"
	if m.form.Mode() == agentform.ModeUpdate {
		title = "Edit agent"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	draft := m.form.Draft()
	errs := m.form.Errors()

	b.WriteString(avatar.New(draft.Name).View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Name"))
	b.WriteString("\n")
	b.WriteString(m.name.View())
	b.WriteString("\n")
	if msg, ok := errs["name"]; ok {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Instructions"))
	b.WriteString("\n")
	b.WriteString(m.instructions.View())
	b.WriteString("\n")
	if msg, ok := errs["instructions"]; ok {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString(m.buttons())
	b.WriteString("\n")

	if m.toast != nil {
		style := toastInfoStyle
		if m.toast.Severity == agentform.SeverityError {
			style = toastErrorStyle
		}
		b.WriteString(style.Render(m.toast.Message))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) buttons() string {
	pending := m.form.IsPending()

	var buttons []string
	if m.form.HasCancel() {
		style := primaryStyle
		if pending {
			style = disabledStyle
		}
		buttons = append(buttons, style.Render("Cancel"))
	}

	submit := primaryStyle
	if pending {
		submit = disabledStyle
	}
	buttons = append(buttons, submit.Render(SubmitLabel(m.form.Mode())))

	row := lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
	if pending {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, " ", m.spinner.View(), dimStyle.Render(" saving..."))
	}
	return row
}

func (m Model) help() string {
	parts := []string{"tab switch field", "ctrl+s " + strings.ToLower(SubmitLabel(m.form.Mode()))}
	if m.form.HasCancel() {
		parts = append(parts, "esc cancel")
	}
	parts = append(parts, "ctrl+c quit")
	return strings.Join(parts, " • ")
}

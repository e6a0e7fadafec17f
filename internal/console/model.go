// Package console renders the agent form in the terminal with bubbletea.
// All form state lives in an agentform.Controller; the model only mirrors
// the text widgets into it and reflects its pending and error state.
package console

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaimeStill/agent-meet/internal/agentform"
	"github.com/JaimeStill/agent-meet/internal/agents"
)

const toastDuration = 4 * time.Second

// Result is how the form session ended.
type Result int

const (
	ResultNone Result = iota
	ResultSaved
	ResultCancelled
)

type field int

const (
	fieldName field = iota
	fieldInstructions
)

type submittedMsg struct {
	outcome agentform.Outcome
}

type toastMsg struct {
	n agentform.Notification
}

type clearToastMsg struct {
	seq int
}

// Model is the bubbletea model of the agent form.
type Model struct {
	ctx    context.Context
	form   *agentform.Controller
	toasts *Toaster

	name         textinput.Model
	instructions textarea.Model
	spinner      spinner.Model
	focus        field

	toast    *agentform.Notification
	toastSeq int

	result Result
	agent  *agents.Agent
}

// NewModel creates the form view over form. toasts may be nil when the
// controller was built without a Toaster.
func NewModel(ctx context.Context, form *agentform.Controller, toasts *Toaster) Model {
	draft := form.Draft()

	name := textinput.New()
	name.Placeholder = "e.g. Math tutor"
	name.CharLimit = 120
	name.Width = 48
	name.SetValue(draft.Name)
	name.Focus()

	instructions := textarea.New()
	instructions.Placeholder = "You are a helpful math assistant that can answer questions and help with assignments."
	instructions.SetWidth(60)
	instructions.SetHeight(6)
	instructions.ShowLineNumbers = false
	instructions.SetValue(draft.Instructions)
	instructions.Blur()

	return Model{
		ctx:          ctx,
		form:         form,
		toasts:       toasts,
		name:         name,
		instructions: instructions,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// Result reports how the session ended and, when saved, the stored agent.
func (m Model) Result() (Result, *agents.Agent) {
	return m.result, m.agent
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForToast())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.form.Close()
			return m, tea.Quit
		case tea.KeyEsc:
			if m.form.Cancel() {
				m.result = ResultCancelled
				m.form.Close()
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyCtrlS:
			if !m.form.CanSubmit() {
				return m, nil
			}
			return m, tea.Batch(m.submit(), m.spinner.Tick)
		case tea.KeyTab, tea.KeyShiftTab:
			m.toggleFocus()
			return m, nil
		}
		return m.updateFields(msg)

	case submittedMsg:
		switch msg.outcome.Status {
		case agentform.StatusSucceeded:
			m.result = ResultSaved
			m.agent = msg.outcome.Agent
			m.form.Close()
			return m, tea.Quit
		case agentform.StatusInvalid:
			m.focusFirstError(msg.outcome)
		}
		return m, nil

	case toastMsg:
		m.toastSeq++
		n := msg.n
		m.toast = &n
		seq := m.toastSeq
		expire := tea.Tick(toastDuration, func(time.Time) tea.Msg { return clearToastMsg{seq: seq} })
		return m, tea.Batch(expire, m.waitForToast())

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case spinner.TickMsg:
		if !m.form.IsPending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFields(msg)
}

func (m Model) updateFields(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.name, cmd = m.name.Update(msg)
	cmds = append(cmds, cmd)
	m.instructions, cmd = m.instructions.Update(msg)
	cmds = append(cmds, cmd)

	draft := m.form.Draft()
	if v := m.name.Value(); v != draft.Name {
		m.form.SetName(v)
	}
	if v := m.instructions.Value(); v != draft.Instructions {
		m.form.SetInstructions(v)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) submit() tea.Cmd {
	ctx, form := m.ctx, m.form
	return func() tea.Msg {
		return submittedMsg{outcome: form.Submit(ctx)}
	}
}

func (m Model) waitForToast() tea.Cmd {
	if m.toasts == nil {
		return nil
	}
	ctx, ch := m.ctx, m.toasts.C()
	return func() tea.Msg {
		select {
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			return toastMsg{n: n}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m *Model) toggleFocus() {
	if m.focus == fieldName {
		m.setFocus(fieldInstructions)
	} else {
		m.setFocus(fieldName)
	}
}

func (m *Model) setFocus(f field) {
	m.focus = f
	if f == fieldName {
		m.instructions.Blur()
		m.name.Focus()
		return
	}
	m.name.Blur()
	m.instructions.Focus()
}

func (m *Model) focusFirstError(out agentform.Outcome) {
	if _, ok := out.Errors["name"]; ok {
		m.setFocus(fieldName)
		return
	}
	if _, ok := out.Errors["instructions"]; ok {
		m.setFocus(fieldInstructions)
	}
}

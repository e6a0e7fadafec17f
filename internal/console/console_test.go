package console_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/agent-meet/internal/agentform"
	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/internal/console"
	"github.com/JaimeStill/agent-meet/pkg/logging"
	"github.com/JaimeStill/agent-meet/pkg/querycache"
)

type stubClient struct {
	err     error
	release chan struct{}
	calls   int
}

func (s *stubClient) Create(ctx context.Context, cmd agents.CreateCommand) (*agents.Agent, error) {
	s.calls++
	if s.release != nil {
		<-s.release
	}
	if s.err != nil {
		return nil, s.err
	}
	return &agents.Agent{ID: uuid.New(), Name: cmd.Name, Instructions: cmd.Instructions}, nil
}

func (s *stubClient) Update(ctx context.Context, id uuid.UUID, cmd agents.UpdateCommand) (*agents.Agent, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &agents.Agent{ID: id, Name: cmd.Name, Instructions: cmd.Instructions}, nil
}

func newModel(t *testing.T, client *stubClient, opts agentform.Options) (console.Model, *agentform.Controller) {
	t.Helper()
	toasts := console.NewToaster(4)
	t.Cleanup(toasts.Close)

	form := agentform.New(client, querycache.New(logging.Discard()), toasts, opts)
	return console.NewModel(context.Background(), form, toasts), form
}

// exec runs cmd and every command batched inside it, returning the messages.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func update(m console.Model, msg tea.Msg) (console.Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(console.Model), cmd
}

// feed delivers msgs and reports whether any resulting command quits.
func feed(m console.Model, msgs []tea.Msg) (console.Model, bool) {
	quit := false
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = update(m, msg)
		if cmd == nil {
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); ok {
			quit = true
		}
	}
	return m, quit
}

func typeText(m console.Model, s string) console.Model {
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestModel_TypingUpdatesDraft(t *testing.T) {
	m, form := newModel(t, &stubClient{}, agentform.Options{})

	m = typeText(m, "Tutor")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "Teach algebra")

	assert.Equal(t, agentform.Draft{Name: "Tutor", Instructions: "Teach algebra"}, form.Draft())
	assert.Contains(t, m.View(), "Create")
}

func TestModel_InvalidSubmitShowsFieldErrors(t *testing.T) {
	client := &stubClient{}
	m, _ := newModel(t, client, agentform.Options{})

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, quit := feed(m, exec(cmd))

	assert.False(t, quit)
	assert.Equal(t, 0, client.calls)
	view := m.View()
	assert.Contains(t, view, agents.MsgNameRequired)
	assert.Contains(t, view, agents.MsgInstructionsRequired)
}

func TestModel_SuccessfulSubmitQuits(t *testing.T) {
	client := &stubClient{}
	m, _ := newModel(t, client, agentform.Options{})

	m = typeText(m, "Tutor")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "Teach")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, quit := feed(m, exec(cmd))

	assert.True(t, quit)
	assert.Equal(t, 1, client.calls)
	result, agent := m.Result()
	assert.Equal(t, console.ResultSaved, result)
	require.NotNil(t, agent)
	assert.Equal(t, "Tutor", agent.Name)
}

func TestModel_FailureShowsToast(t *testing.T) {
	client := &stubClient{err: errors.New("duplicate name")}
	m, form := newModel(t, client, agentform.Options{
		Initial: &agents.Agent{ID: uuid.New(), Name: "Tutor", Instructions: "Teach"},
	})

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, quit := feed(m, exec(cmd))
	require.False(t, quit)

	m, _ = feed(m, exec(m.Init()))

	assert.Contains(t, m.View(), "duplicate name")
	assert.Equal(t, agentform.Draft{Name: "Tutor", Instructions: "Teach"}, form.Draft())
	result, _ := m.Result()
	assert.Equal(t, console.ResultNone, result)
}

func TestModel_Cancel(t *testing.T) {
	t.Run("with callback", func(t *testing.T) {
		cancelled := false
		m, _ := newModel(t, &stubClient{}, agentform.Options{OnCancel: func() { cancelled = true }})

		assert.Contains(t, m.View(), "Cancel")

		m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.True(t, cancelled)
		result, _ := m.Result()
		assert.Equal(t, console.ResultCancelled, result)
	})

	t.Run("without callback", func(t *testing.T) {
		m, _ := newModel(t, &stubClient{}, agentform.Options{})

		assert.NotContains(t, m.View(), "Cancel")

		m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Nil(t, cmd)
		result, _ := m.Result()
		assert.Equal(t, console.ResultNone, result)
	})
}

func TestModel_PendingView(t *testing.T) {
	client := &stubClient{release: make(chan struct{})}
	cancelled := false
	m, form := newModel(t, client, agentform.Options{OnCancel: func() { cancelled = true }})

	form.SetName("Tutor")
	form.SetInstructions("Teach")

	done := make(chan agentform.Outcome, 1)
	go func() { done <- form.Submit(context.Background()) }()

	require.Eventually(t, form.IsPending, time.Second, 5*time.Millisecond)

	assert.Contains(t, m.View(), "saving")

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	_, cmd = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, cancelled)

	close(client.release)
	assert.Equal(t, agentform.StatusSucceeded, (<-done).Status)
	assert.False(t, strings.Contains(m.View(), "saving"))
}

func TestModel_UpdateMode(t *testing.T) {
	m, _ := newModel(t, &stubClient{}, agentform.Options{
		Initial: &agents.Agent{ID: uuid.New(), Name: "Tutor", Instructions: "Teach"},
	})

	view := m.View()
	assert.Contains(t, view, "Edit agent")
	assert.Contains(t, view, "Update")
	assert.Contains(t, view, "Tutor")
}

func TestSubmitLabel(t *testing.T) {
	assert.Equal(t, "Create", console.SubmitLabel(agentform.ModeCreate))
	assert.Equal(t, "Update", console.SubmitLabel(agentform.ModeUpdate))
}

func TestToaster(t *testing.T) {
	toasts := console.NewToaster(1)

	toasts.Notify(agentform.Notification{Message: "first"})
	toasts.Notify(agentform.Notification{Message: "dropped"})

	got := <-toasts.C()
	assert.Equal(t, "first", got.Message)

	toasts.Close()
	toasts.Close()
	toasts.Notify(agentform.Notification{Message: "after close"})

	_, ok := <-toasts.C()
	assert.False(t, ok)
}

package console

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JaimeStill/agent-meet/internal/agents"
)

// Run shows the form until it is saved, cancelled or quit.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) (Result, *agents.Agent, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return ResultNone, nil, fmt.Errorf("run agent form: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return ResultNone, nil, fmt.Errorf("run agent form: unexpected model %T", final)
	}

	result, agent := fm.Result()
	return result, agent, nil
}

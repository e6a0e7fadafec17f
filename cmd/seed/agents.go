package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/JaimeStill/agent-meet/internal/agents"
)

func init() {
	registerSeeder(&AgentSeeder{})
}

// AgentSeedData is the YAML structure of agent seed files.
type AgentSeedData struct {
	Agents []struct {
		Name         string `yaml:"name"`
		Instructions string `yaml:"instructions"`
	} `yaml:"agents"`
}

// AgentSeeder saves agents by name so repeated runs update in place.
type AgentSeeder struct {
	file string
}

func (s *AgentSeeder) Name() string {
	return "agents"
}

func (s *AgentSeeder) Description() string {
	return "Seeds agents and their instructions"
}

func (s *AgentSeeder) SetFile(path string) {
	s.file = path
}

func (s *AgentSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	var data AgentSeedData
	if err := loadSeedData(s.file, "agents.yaml", &data); err != nil {
		return err
	}

	const query = `
		INSERT INTO agents (name, instructions)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			instructions = EXCLUDED.instructions,
			updated_at = NOW()`

	for _, a := range data.Agents {
		cmd := agents.CreateCommand{
			Name:         a.Name,
			Instructions: strings.TrimSpace(a.Instructions),
		}
		if err := cmd.Validate(); err != nil {
			return fmt.Errorf("agent %q: %w", a.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, cmd.Name, cmd.Instructions); err != nil {
			return fmt.Errorf("save agent %s: %w", cmd.Name, err)
		}
	}

	return nil
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/internal/meetings"
)

func init() {
	registerSeeder(&MeetingSeeder{})
}

// MeetingSeedData is the YAML structure of meeting seed files. Agents are
// referenced by name.
type MeetingSeedData struct {
	Meetings []struct {
		Name      string     `yaml:"name"`
		Agent     string     `yaml:"agent"`
		Status    string     `yaml:"status"`
		StartedAt *time.Time `yaml:"started_at"`
		EndedAt   *time.Time `yaml:"ended_at"`
	} `yaml:"meetings"`
}

// MeetingSeeder inserts meetings that do not already exist for their agent.
type MeetingSeeder struct {
	file string
}

func (s *MeetingSeeder) Name() string {
	return "meetings"
}

func (s *MeetingSeeder) Description() string {
	return "Seeds meetings for previously seeded agents"
}

func (s *MeetingSeeder) SetFile(path string) {
	s.file = path
}

func (s *MeetingSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	var data MeetingSeedData
	if err := loadSeedData(s.file, "meetings.yaml", &data); err != nil {
		return err
	}

	const query = `
		INSERT INTO meetings (name, agent_id, status, started_at, ended_at)
		SELECT $1, $2, $3, $4, $5
		WHERE NOT EXISTS (
			SELECT 1 FROM meetings WHERE name = $1 AND agent_id = $2
		)`

	for _, m := range data.Meetings {
		status := meetings.StatusUpcoming
		if m.Status != "" {
			status = meetings.Status(m.Status)
		}
		if err := status.Validate(); err != nil {
			return fmt.Errorf("meeting %q: %w", m.Name, err)
		}

		agentID, err := agentIDByName(ctx, tx, m.Agent)
		if err != nil {
			return fmt.Errorf("meeting %q: %w", m.Name, err)
		}

		if _, err := tx.ExecContext(ctx, query, m.Name, agentID, string(status), m.StartedAt, m.EndedAt); err != nil {
			return fmt.Errorf("save meeting %s: %w", m.Name, err)
		}
	}

	return nil
}

func agentIDByName(ctx context.Context, tx *sql.Tx, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRowContext(ctx, "SELECT id FROM agents WHERE name = $1", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("agent %q not seeded", name)
	}
	return id, err
}

package meetings

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/agent-meet/pkg/pagination"
	"github.com/JaimeStill/agent-meet/pkg/query"
	"github.com/JaimeStill/agent-meet/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New returns the PostgreSQL-backed meeting System.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "meeting"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Meeting], error) {
	if filters.Status != nil {
		if err := filters.Status.Validate(); err != nil {
			return nil, err
		}
	}

	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanMeeting)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	m, err := repository.QueryOne(ctx, r.db, q, args, scanMeeting)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Meeting, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO meetings (name, agent_id)
		VALUES ($1, $2)
		RETURNING ` + returning

	m, err := repository.Mutate(ctx, r.db, q, []any{cmd.Name, cmd.AgentID}, scanMeeting)
	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("meeting created", "id", m.ID, "name", m.Name, "agent_id", m.AgentID)
	return &m, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Meeting, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE meetings
		SET name = $1, agent_id = $2, status = $3, started_at = $4, ended_at = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + returning

	args := []any{cmd.Name, cmd.AgentID, string(cmd.Status), cmd.StartedAt, cmd.EndedAt, id}

	m, err := repository.Mutate(ctx, r.db, q, args, scanMeeting)
	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("meeting updated", "id", m.ID, "status", m.Status)
	return &m, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM meetings WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("meeting deleted", "id", id)
	return nil
}

func mapError(err error) error {
	if repository.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", ErrAgentNotFound, err)
	}
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

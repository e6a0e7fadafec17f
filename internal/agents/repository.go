package agents

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

const (
	insertAgent = `
		INSERT INTO agents (name, instructions)
		VALUES ($1, $2)
		RETURNING id, name, instructions, created_at, updated_at`

	updateAgent = `
		UPDATE agents
		SET name = $2, instructions = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, instructions, created_at, updated_at`

	deleteAgent = `DELETE FROM agents WHERE id = $1`
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New returns the PostgreSQL-backed agent System.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "agent"),
		pagination: pagination,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error) {
	page.Normalize(r.pagination)

	qb := filters.Apply(
		query.NewBuilder(projection, defaultSort).
			WhereSearch(page.Search, "Name", "Instructions"),
	)
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	result, err := repository.QueryPage(ctx, r.db, qb, page, scanAgent)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Agent, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAgent)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, err := repository.Mutate(ctx, r.db, insertAgent, []any{cmd.Name, cmd.Instructions}, scanAgent)
	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("agent created", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Agent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	a, err := repository.Mutate(ctx, r.db, updateAgent, []any{id, cmd.Name, cmd.Instructions}, scanAgent)
	if err != nil {
		return nil, mapError(err)
	}

	r.logger.Info("agent updated", "id", a.ID, "name", a.Name)
	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, deleteAgent, id)
	})
	if err != nil {
		return mapError(err)
	}

	r.logger.Info("agent deleted", "id", id)
	return nil
}

func mapError(err error) error {
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

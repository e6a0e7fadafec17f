package api

import (
	"database/sql"
	"log/slog"

	"github.com/JaimeStill/agent-meet/internal/config"
	"github.com/JaimeStill/agent-meet/internal/infrastructure"
	"github.com/JaimeStill/agent-meet/pkg/pagination"
)

// Runtime is the slice of infrastructure the API module's systems consume.
type Runtime struct {
	Logger     *slog.Logger
	DB         *sql.DB
	Pagination pagination.Config
}

// NewRuntime scopes infra to the API module. The pool is usable before
// infra.Start; connections open on first use.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Logger:     infra.Logger.With("module", "api"),
		DB:         infra.Database.Connection(),
		Pagination: cfg.API.Pagination,
	}
}

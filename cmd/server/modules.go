package main

import (
	"net/http"

	"github.com/JaimeStill/agent-meet/internal/api"
	"github.com/JaimeStill/agent-meet/internal/config"
	"github.com/JaimeStill/agent-meet/internal/infrastructure"
	"github.com/JaimeStill/agent-meet/pkg/handlers"
	"github.com/JaimeStill/agent-meet/pkg/lifecycle"
	"github.com/JaimeStill/agent-meet/pkg/module"
)

// Modules holds every module mounted on the root router.
type Modules struct {
	API *module.Module
}

// NewModules creates the service modules.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) *Modules {
	return &Modules{
		API: api.NewModule(cfg, infra),
	}
}

// Mount registers every module on router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(ready lifecycle.ReadinessChecker) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondText(w, http.StatusOK, "OK")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Ready() {
			handlers.RespondText(w, http.StatusServiceUnavailable, "NOT READY")
			return
		}
		handlers.RespondText(w, http.StatusOK, "READY")
	})

	return router
}

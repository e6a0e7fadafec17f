// Package api assembles the RPC surface of the service: the application
// router composed from every feature namespace, mounted under the configured
// base path.
package api

import (
	"net/http"

	"github.com/JaimeStill/agent-meet/internal/config"
	"github.com/JaimeStill/agent-meet/internal/infrastructure"
	"github.com/JaimeStill/agent-meet/pkg/middleware"
	"github.com/JaimeStill/agent-meet/pkg/module"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

// RPCPrefix is where the RPC handler is served inside the API module.
const RPCPrefix = "/rpc"

// NewModule creates the API module serving the application router.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) *module.Module {
	runtime := NewRuntime(cfg, infra)
	router := NewAppRouter(NewDomain(runtime))

	runtime.Logger.Info("rpc router ready", "paths", router.Paths())

	m := module.New(cfg.API.BasePath, NewMux(router, runtime))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.MaxBytes(cfg.API.MaxBodyBytes()))

	return m
}

// NewMux routes RPC requests to router.
func NewMux(router *rpc.Router, runtime *Runtime) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(RPCPrefix+"/", http.StripPrefix(RPCPrefix, rpc.NewHandler(router, runtime.Logger)))
	return mux
}

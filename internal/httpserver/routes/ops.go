package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
	"github.com/MrSnakeDoc/awareness/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/awareness/internal/httpserver/mw"
)

func init() { Register(registerOps) }

// Ops endpoints are restricted by IP; the ones that reveal or change state
// also check the Host header.
func registerOps(r chi.Router, d deps.Deps) {
	byIP := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
	byHost := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(byIP).Get("/healthz", handlers.Healthz(d))
	r.With(byIP).Get("/readyz", handlers.Readyz(d))
	r.With(byIP, byHost).Get("/infra", handlers.Infra(d))
	r.With(byIP, byHost).Post("/reload", handlers.Reload(d))
}

package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
	"github.com/MrSnakeDoc/awareness/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/awareness/internal/httpserver/mw"
)

func init() { Register(registerPages) }

// Every other GET is a site navigation, so unknown paths reach the
// not-found policy instead of chi's 404.
func registerPages(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		PerSecond:  d.RateLimit,
		TrustProxy: d.TrustProxy,
	})

	r.With(limit, middleware.RedirectSlashes).Get("/*", handlers.Pages(d))
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
	"github.com/MrSnakeDoc/awareness/internal/httpserver/handlers"
)

func init() { Register(registerAssets) }

func registerAssets(r chi.Router, d deps.Deps) {
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsMW := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "If-None-Match"},
		ExposedHeaders: []string{"ETag"},
		MaxAge:         300,
	})

	r.With(corsMW).Get("/assets/{name}", handlers.Assets(d))
}

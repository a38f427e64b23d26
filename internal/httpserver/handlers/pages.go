package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/awareness/internal/domain"
	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
	"github.com/MrSnakeDoc/awareness/internal/logger"
	"github.com/MrSnakeDoc/awareness/internal/site"
)

// Pages serves every site route. Unknown paths are handled by the
// configured not-found policy.
func Pages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		req := site.Request{
			Path:  r.URL.Path,
			Menu:  domain.ParseMenuState(q.Get("menu")),
			Video: q.Get("video") == "open",
		}

		res, err := d.Pages.Serve(r.Context(), req)
		if err != nil {
			if errors.Is(err, site.ErrNotLoaded) {
				w.Header().Set("Retry-After", "5")
				http.Error(w, "site content not loaded yet", http.StatusServiceUnavailable)
				return
			}
			d.Logger.Error("failed to render page",
				logger.String("path", req.Path),
				logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("X-Cache", res.Cache)
		w.Header().Set("X-Content-Revision", res.Revision)

		if res.Location != "" {
			w.Header().Set("Cache-Control", "no-store")
			http.Redirect(w, r, res.Location, res.Status)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if res.Status == http.StatusOK {
			w.Header().Set("Cache-Control", "no-cache")
		} else {
			w.Header().Set("Cache-Control", "no-store")
		}
		w.WriteHeader(res.Status)
		if _, err := w.Write(res.Body); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}

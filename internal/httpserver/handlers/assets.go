package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
)

// Assets serves the embedded stylesheet and scripts. A request carrying the
// current ?v= version is cacheable forever.
func Assets(d deps.Deps) http.HandlerFunc {
	assets := d.Pages.Renderer().Assets()

	return func(w http.ResponseWriter, r *http.Request) {
		asset, ok := assets.Get(chi.URLParam(r, "name"))
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", asset.ContentType)
		w.Header().Set("ETag", asset.ETag)
		if r.URL.Query().Get("v") == assets.Version() {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}

		// ServeContent answers If-None-Match against the ETag header.
		http.ServeContent(w, r, asset.Name, time.Time{}, bytes.NewReader(asset.Body))
	}
}

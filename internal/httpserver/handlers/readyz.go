package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready    bool   `json:"ready"`
	Revision string `json:"revision,omitempty"`
}

// Readyz is ready once a content snapshot has been published. Redis is
// optional and does not affect readiness.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		snap := d.Pages.Site().Current()
		if snap == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(readyzResponse{Ready: false})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:    true,
			Revision: snap.Revision(),
		})
	}
}

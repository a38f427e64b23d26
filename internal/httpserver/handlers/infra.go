package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MrSnakeDoc/awareness/internal/httpserver/deps"
	redisstore "github.com/MrSnakeDoc/awareness/internal/store/redis"
)

type componentStatus struct {
	OK          bool    `json:"ok"`
	Revision    string  `json:"revision,omitempty"`
	Source      string  `json:"source,omitempty"`
	Entries     *int    `json:"entries,omitempty"`
	Hits        *uint64 `json:"hits,omitempty"`
	Misses      *uint64 `json:"misses,omitempty"`
	LastReload  string  `json:"last_reload,omitempty"`
	ReloadedAgo string  `json:"reloaded_ago,omitempty"`
	InSync      *bool   `json:"in_sync,omitempty"`
	Mode        string  `json:"mode,omitempty"`
	Impact      string  `json:"impact,omitempty"`
	Error       string  `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

// Infra reports the state of content, the page cache and Redis.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := d.Now()
		components := map[string]componentStatus{
			"content":    contentStatus(d, now),
			"page_cache": cacheStatus(d, now),
			"redis":      checkRedis(r.Context(), d),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			ServingMode: determineServingMode(components),
			Components:  components,
		})
	}
}

func contentStatus(d deps.Deps, now time.Time) componentStatus {
	snap := d.Pages.Site().Current()
	if snap == nil {
		return componentStatus{OK: false, Error: "not loaded", LastReload: "never"}
	}
	return componentStatus{
		OK:          true,
		Revision:    snap.Revision(),
		Source:      snap.Source,
		LastReload:  snap.LoadedAt.Format(time.RFC3339),
		ReloadedAgo: humanize.RelTime(snap.LoadedAt, now, "ago", "from now"),
	}
}

func cacheStatus(d deps.Deps, now time.Time) componentStatus {
	stats := d.PageCache.Stats()
	status := componentStatus{
		OK:         true,
		Revision:   stats.Revision,
		Entries:    &stats.Entries,
		Hits:       &stats.Hits,
		Misses:     &stats.Misses,
		LastReload: "never",
	}
	if !stats.LastReload.IsZero() {
		status.LastReload = stats.LastReload.Format(time.RFC3339)
		status.ReloadedAgo = humanize.RelTime(stats.LastReload, now, "ago", "from now")
	}
	return status
}

func determineServingMode(components map[string]componentStatus) string {
	if c := components["content"]; !c.OK {
		return "critical" // nothing to render
	}
	switch redis := components["redis"]; {
	case redis.Mode == "disabled":
		return "memory-only"
	case !redis.OK:
		return "degraded" // pages are rendered per instance
	}
	return "optimal"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "shared-page-cache-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	store := redisstore.NewStore(d.RedisClient)
	if err := store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "shared-page-cache-unavailable",
			Error:  err.Error(),
		}
	}

	status := componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "shared-page-cache-enabled",
	}

	// The revision last announced by any instance sharing this Redis.
	published, err := store.GetRevision(ctx)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	if published != "" {
		status.Revision = published
		if snap := d.Pages.Site().Current(); snap != nil {
			inSync := snap.Revision() == published
			status.InSync = &inSync
		}
	}
	return status
}

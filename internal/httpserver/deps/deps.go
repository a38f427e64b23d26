package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/awareness/internal/index"
	"github.com/MrSnakeDoc/awareness/internal/logger"
	"github.com/MrSnakeDoc/awareness/internal/site"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time // for testing, defaults to time.Now
	AllowedHosts  []string         // Host headers allowed to reach the ops endpoints
	AllowedCIDRS  []string         // IPs allowed to reach the ops endpoints
	TrustProxy    bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins   []string         // origins allowed to fetch /assets
	RateLimit     int              // page requests per second per client, 0 disables
	Pages         *site.Service    // renders and caches site pages
	PageCache     *index.PageCache // in-memory rendered pages
	RedisClient   *redis.Client    // shared page cache connection (nil when disabled)
	ReloadTrigger chan struct{}    // Channel to trigger manual content reload
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

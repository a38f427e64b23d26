package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Site
	SiteName       string        // overrides the content's site name in titles (empty = keep it)
	SiteURL        string        // canonical base URL (empty = no canonical link)
	ContentFile    string        // YAML content file (empty = embedded default content)
	ReloadInterval time.Duration // interval to reload the content file (default: 1h)
	WatchContent   bool          // reload on file change (ignored for embedded content)
	NotFoundPolicy string        // "home" | "redirect"
	Minify         bool          // minify rendered HTML and assets

	// Page cache
	CacheTTL   time.Duration // lifetime of a rendered page
	GCInterval time.Duration // interval to drop stale pages (default: 10m)

	// HTTP
	RateLimit   int      // requests per second per client (0 = no limit)
	CORSOrigins []string // origins allowed to fetch /assets

	// Redis (optional, empty RedisAddr disables the shared page cache)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs or CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// RedisEnabled reports whether a shared page cache is configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("RA_LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("RA_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("RA_LOG_LEVEL", "info"),
		PrettyLog: mustBool("RA_PRETTY_LOG", true),

		// Site
		SiteName:       getenv("RA_SITE_NAME", ""),
		SiteURL:        getenv("RA_SITE_URL", ""),
		ContentFile:    getenv("RA_CONTENT_FILE", ""),
		ReloadInterval: mustDuration("RA_RELOAD_INTERVAL", time.Hour),
		WatchContent:   mustBool("RA_WATCH_CONTENT", true),
		NotFoundPolicy: requireOneOf("RA_NOT_FOUND_POLICY", "home", "home", "redirect"),
		Minify:         mustBool("RA_MINIFY", true),

		// Page cache
		CacheTTL:   mustDuration("RA_CACHE_TTL", time.Hour),
		GCInterval: mustDuration("RA_GC_INTERVAL", 10*time.Minute),

		// HTTP
		RateLimit:   getenvInt("RA_RATE_LIMIT", 20),
		CORSOrigins: splitAndTrim(getenv("RA_CORS_ORIGINS", "*")),

		// Redis settings
		RedisAddr:             getenv("RA_REDIS_ADDR", ""),
		RedisUser:             getenv("RA_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("RA_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("RA_REDIS_PASSWORD", ""),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("RA_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("RA_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("RA_TRUST_PROXY", false),
	}

	if cfg.RedisEnabled() {
		cfg.RedisDB = requireEnvInt("RA_REDIS_DB")

		// Validate Redis password configuration
		if cfg.RedisPasswordRequired {
			cfg.RedisPassword = requireEnv("RA_REDIS_PASSWORD")
		}
	}

	if cfg.ReloadInterval <= 0 {
		panic(fmt.Sprintf("❌ FATAL: RA_RELOAD_INTERVAL must be positive, got %s", cfg.ReloadInterval))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

// requireOneOf returns the value of key, or def when unset, and panics when
// the value is not one of allowed.
func requireOneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(getenv(key, def))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %s (want one of %s)", key, v, strings.Join(allowed, ", ")))
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

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
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout, SSE excluded

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Persistence: Redis when RedisAddr is set, the JSON file otherwise.
	ConfigFile      string // ex: "./data/page-config.json"
	WatchConfigFile bool   // reload the file backend when it is edited outside the app

	// Seed sources used when nothing is persisted yet (both optional)
	SeedServicesFile  string // gethomepage services.yaml
	SeedBookmarksFile string // gethomepage bookmarks.yaml

	WeatherBaseURL   string        // met.no locationforecast compact endpoint
	WeatherUserAgent string        // met.no requires an identifying User-Agent
	WeatherTimeout   time.Duration // one upstream call, no retry

	ClockInterval time.Duration // SSE clock tick (ex: 200ms)

	// Redis
	RedisAddr             string        // ex: "localhost:6379", empty => file backend
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)

	AllowedHosts []string // optional, restrict mutating routes to specific Host headers
	AllowedCIDRS []string // optional, restrict mutating routes to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst  int // weather API bucket size per client IP
	RateLimitPerMin int // weather API refill per client IP per minute
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STARTPAGE_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STARTPAGE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("STARTPAGE_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("STARTPAGE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STARTPAGE_PRETTY_LOG", true),

		// Document
		ConfigFile:        getenv("STARTPAGE_CONFIG_FILE", "./data/page-config.json"),
		WatchConfigFile:   mustBool("STARTPAGE_WATCH_CONFIG", true),
		SeedServicesFile:  getenv("STARTPAGE_SEED_SERVICES_FILE", ""),
		SeedBookmarksFile: getenv("STARTPAGE_SEED_BOOKMARKS_FILE", ""),

		// Widgets
		WeatherBaseURL:   getenv("STARTPAGE_WEATHER_URL", "https://api.met.no/weatherapi/locationforecast/2.0/compact"),
		WeatherUserAgent: getenv("STARTPAGE_WEATHER_USER_AGENT", ""),
		WeatherTimeout:   mustDuration("STARTPAGE_WEATHER_TIMEOUT", 10*time.Second),
		ClockInterval:    mustDuration("STARTPAGE_CLOCK_INTERVAL", 200*time.Millisecond),

		// Redis settings
		RedisAddr:             getenv("STARTPAGE_REDIS_ADDR", ""),
		RedisUser:             getenv("STARTPAGE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("STARTPAGE_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("STARTPAGE_REDIS_PASSWORD", ""),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("STARTPAGE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("STARTPAGE_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("STARTPAGE_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("STARTPAGE_RATE_LIMIT_BURST", 10),
		RateLimitPerMin: getenvInt("STARTPAGE_RATE_LIMIT_PER_MIN", 30),
	}

	// Redis only needs its DB and password settled when it is the selected backend.
	if cfg.RedisAddr != "" {
		cfg.RedisDB = requireEnvInt("STARTPAGE_REDIS_DB")
		if cfg.RedisPasswordRequired {
			cfg.RedisPassword = requireEnv("STARTPAGE_REDIS_PASSWORD")
		}
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// UseRedis reports whether the document is persisted in Redis.
func (c *Config) UseRedis() bool { return c.RedisAddr != "" }

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	out := *c
	if out.RedisPassword != "" {
		out.RedisPassword = "***REDACTED***"
	}
	if out.RedisUser != "" {
		out.RedisUser = "***REDACTED***"
	}
	return out
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

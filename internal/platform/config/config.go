package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	liststr "civicdesk/pkg/platform/strings"
)

// AnonymousPolicy controls how anonymous submissions are relaxed and filled.
type AnonymousPolicy struct {
	// AllowList names the fields that anonymous mode exempts from the
	// required check.
	AllowList []string
	// Placeholder replaces an absent "name" answer.
	Placeholder string
}

// Exempts reports whether field is on the allow-list.
func (p AnonymousPolicy) Exempts(field string) bool {
	for _, f := range p.AllowList {
		if f == field {
			return true
		}
	}
	return false
}

// ResolutionPolicy controls what resolving a feedback report requires.
type ResolutionPolicy struct {
	RequireText bool
}

// ThrottleConfig limits public submissions per client IP.
type ThrottleConfig struct {
	Limit  int
	Window time.Duration
}

// RedisConfig holds connection settings. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds Postgres settings. An empty URL selects the in-memory stores.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// Server captures process level configuration. It is built once at startup
// and passed down by value.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	LogLevel      slog.Level
	Database      DatabaseConfig
	Redis         RedisConfig
	Anonymous     AnonymousPolicy
	Resolution    ResolutionPolicy
	Throttle      ThrottleConfig
}

// DefaultAnonymousAllowList is the set of identity fields anonymous mode relaxes.
var DefaultAnonymousAllowList = []string{"name", "phone", "email", "address", "national_id"}

// DefaultAnonymousPolicy is used when nothing overrides it.
func DefaultAnonymousPolicy() AnonymousPolicy {
	return AnonymousPolicy{
		AllowList:   append([]string(nil), DefaultAnonymousAllowList...),
		Placeholder: "Anonymous",
	}
}

// FromEnv loads a .env file when present and builds a Server config from
// environment variables so main stays lean.
func FromEnv() Server {
	_ = godotenv.Load()

	addr := getenv("CIVICDESK_ADDR", ":8080")

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default; production deployments set JWT_SIGNING_KEY.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	anon := DefaultAnonymousPolicy()
	if p := strings.TrimSpace(os.Getenv("ANONYMOUS_PLACEHOLDER")); p != "" {
		anon.Placeholder = p
	}
	if list := liststr.SplitList(os.Getenv("ANONYMOUS_ALLOW_LIST")); len(list) > 0 {
		anon.AllowList = list
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     os.Getenv("JWT_ISSUER"),
		LogLevel:      parseLevel(os.Getenv("LOG_LEVEL")),
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Anonymous:  anon,
		Resolution: ResolutionPolicy{RequireText: os.Getenv("REQUIRE_RESOLUTION_TEXT") == "true"},
		Throttle: ThrottleConfig{
			Limit:  getInt("PUBLIC_SUBMIT_LIMIT", 20),
			Window: getDuration("PUBLIC_SUBMIT_WINDOW", time.Minute),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

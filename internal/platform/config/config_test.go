package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"CIVICDESK_ADDR", "JWT_SIGNING_KEY", "LOG_LEVEL", "ANONYMOUS_PLACEHOLDER", "ANONYMOUS_ALLOW_LIST",
		"REQUIRE_RESOLUTION_TEXT", "PUBLIC_SUBMIT_LIMIT", "PUBLIC_SUBMIT_WINDOW", "DATABASE_URL", "REDIS_URL"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.NotEmpty(t, cfg.JWTSigningKey)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "Anonymous", cfg.Anonymous.Placeholder)
	assert.ElementsMatch(t, []string{"name", "phone", "email", "address", "national_id"}, cfg.Anonymous.AllowList)
	assert.False(t, cfg.Resolution.RequireText)
	assert.Equal(t, 20, cfg.Throttle.Limit)
	assert.Equal(t, time.Minute, cfg.Throttle.Window)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CIVICDESK_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ANONYMOUS_PLACEHOLDER", "مجهول")
	t.Setenv("ANONYMOUS_ALLOW_LIST", "Name, email,name")
	t.Setenv("REQUIRE_RESOLUTION_TEXT", "true")
	t.Setenv("PUBLIC_SUBMIT_LIMIT", "5")
	t.Setenv("PUBLIC_SUBMIT_WINDOW", "30s")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "مجهول", cfg.Anonymous.Placeholder)
	assert.Equal(t, []string{"name", "email"}, cfg.Anonymous.AllowList)
	assert.True(t, cfg.Resolution.RequireText)
	assert.Equal(t, 5, cfg.Throttle.Limit)
	assert.Equal(t, 30*time.Second, cfg.Throttle.Window)
}

func TestAnonymousPolicy_Exempts(t *testing.T) {
	p := DefaultAnonymousPolicy()
	assert.True(t, p.Exempts("national_id"))
	assert.False(t, p.Exempts("description"))
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REQUEST_TIMEOUT_SEC", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "web/templates/*.html", cfg.TemplateGlob)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.NATS.Enabled)
	assert.False(t, cfg.Search.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT_SEC", "5")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50, cfg.Database.MaxOpenConns)
}

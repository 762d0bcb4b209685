package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PDF_SELF_CHECK", "")
	t.Setenv("LINKCHECK_INTERVAL", "")

	Load()

	assert.Equal(t, "8080", Cfg.Port)
	assert.True(t, Cfg.PDFSelfCheck)
	assert.Equal(t, 24*time.Hour, Cfg.LinkCheckInterval)
	assert.Equal(t, "content/blog", Cfg.BlogDir)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PDF_SELF_CHECK", "false")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("LINKCHECK_DELAY", "250ms")
	t.Setenv("COUNTER_FILE", "/tmp/plans.json")

	Load()

	assert.Equal(t, "9090", Cfg.Port)
	assert.False(t, Cfg.PDFSelfCheck)
	assert.Equal(t, 5, Cfg.RateLimitBurst)
	assert.Equal(t, 250*time.Millisecond, Cfg.LinkCheckDelay)
	assert.Equal(t, "/tmp/plans.json", Cfg.CounterFile)
}

func TestEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_INT", "ten")
	t.Setenv("X_DUR", "soon")

	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.Equal(t, time.Minute, envDuration("X_DUR", time.Minute))
}

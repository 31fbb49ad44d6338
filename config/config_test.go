package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 600*time.Millisecond, cfg.Upload.StageDelayMin)
	assert.Equal(t, 3, cfg.Notification.MaxVisible)
	assert.Equal(t, 4*time.Second, cfg.Notification.DismissAfter)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.S3.Enabled())
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("AWS_S3_BUCKET", "cert-archive")
	t.Setenv("TOAST_MAX_VISIBLE", "5")
	t.Setenv("UPLOAD_STAGE_DELAY_MIN", "not-a-duration")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, 5, cfg.Notification.MaxVisible)
	assert.Equal(t, 600*time.Millisecond, cfg.Upload.StageDelayMin)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestDatabaseConfig_SQLiteDSN(t *testing.T) {
	cfg := DatabaseConfig{Driver: "sqlite", SQLitePath: "certs.db"}
	assert.Equal(t, "certs.db", cfg.DSN())
}

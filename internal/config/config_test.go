package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := getDefaultConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "@every 1h", cfg.Session.ReaperSchedule)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.MinIO.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
database:
  host: db.internal
  max_open_conns: 7
session:
  ttl: 48h
minio:
  enabled: true
  bucket: donations
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := getDefaultConfig()
	require.NoError(t, loadFromFile(cfg, path))

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 7, cfg.Database.MaxOpenConns)
	assert.Equal(t, 48*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.MinIO.Enabled)
	assert.Equal(t, "donations", cfg.MinIO.Bucket)
	// untouched keys keep their defaults
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
}

func TestOverrideWithEnvVars(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MINIO_USE_SSL", "1")
	t.Setenv("ASSETS_MAX_IMAGE_MB", "abc")

	cfg := getDefaultConfig()
	overrideWithEnvVars(cfg)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 5, cfg.Assets.MaxImageSizeMB, "invalid number keeps default")
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     "3306",
		Username: "app",
		Password: "pw",
		Database: "foodshare",
		Charset:  "utf8mb4",
	}
	assert.Equal(t, "app:pw@tcp(127.0.0.1:3306)/foodshare?charset=utf8mb4&parseTime=True&loc=UTC", d.DSN())
}

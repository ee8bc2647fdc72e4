package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(900), cfg.JWT.AccessExpiry)
	assert.Equal(t, uint32(64*1024), cfg.Argon2.Memory)
	assert.Equal(t, uint8(2), cfg.Argon2.Parallelism)
	assert.Equal(t, 512, cfg.Media.AvatarMaxDim)
	assert.Equal(t, 5, cfg.Lockout.MaxAttempts)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("S3_BUCKET", "skillsnap-avatars")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://skillsnap.app, http://localhost:3000,")
	t.Setenv("LOCKOUT_MAX_ATTEMPTS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.S3.Enabled())
	assert.Equal(t, []string{"https://skillsnap.app", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 0, cfg.Lockout.MaxAttempts)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillsnap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("JWT_ISSUER: from-file\nWEBHOOK_URL: https://hooks.example.com\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWT.Issuer)
	assert.Equal(t, "https://hooks.example.com", cfg.Webhook.URL)
}

func TestLoadRequiresKeyInProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "")
	t.Setenv("JWT_PRIVATE_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadQuality(t *testing.T) {
	t.Setenv("MEDIA_AVATAR_QUALITY", "101")
	_, err := Load()
	assert.Error(t, err)
}

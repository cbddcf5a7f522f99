package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_ReadsFileAndAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"jwt": {"secret": "s3cret"}, "database": {"host": "db", "user": "u", "password": "p", "dbname": "portal"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 0, cfg.JWT.ExpirationHours)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(10<<20), cfg.Uploads.MaxBytes)
	assert.Equal(t, 10*time.Minute, cfg.Uploads.TicketTTL())
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=portal sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"server": {"port": "5000"}, "jwt": {"secret": "from-file"}}`)
	t.Setenv("PORTAL_JWT_SECRET", "from-env")
	t.Setenv("PORTAL_SERVER_PORT", "9090")
	t.Setenv("PORTAL_CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoadConfig_RequiresSecret(t *testing.T) {
	path := writeConfig(t, `{"server": {"port": "5000"}}`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRabbitMQURL(t *testing.T) {
	r := RabbitMQConfig{Host: "mq", Port: "5672", User: "guest", Password: "pw"}
	assert.Equal(t, "amqp://guest:pw@mq:5672/", r.URL())
}

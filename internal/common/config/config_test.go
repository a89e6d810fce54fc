package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storage:\n  driver: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "/", cfg.Rabbit.VHost)
	assert.Equal(t, 3000, cfg.Storefront.NotificationTTLMs)
	assert.False(t, cfg.Storefront.DemoSeed)
}

func TestLoadFullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
storage:
  driver: postgres
database:
  host: db.local
  user: frylyle
  password: secret
  database: frylyle
rabbitmq:
  enabled: true
  host: mq.local
  user: guest
  password: guest
storefront:
  demo_seed: true
  notification_ttl_ms: 500
`))
	require.NoError(t, err)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.True(t, cfg.Rabbit.Enabled)
	assert.True(t, cfg.Storefront.DemoSeed)
	assert.Equal(t, 500, cfg.Storefront.NotificationTTLMs)
}

func TestValidationFailures(t *testing.T) {
	cases := map[string]string{
		"unknown driver":      "storage:\n  driver: redis\n",
		"postgres incomplete": "storage:\n  driver: postgres\n",
		"rabbit incomplete":   "storage:\n  driver: memory\nrabbitmq:\n  enabled: true\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

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

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[App]
Port = 8080
SiteURL = "https://oldruins.example/"
Timezone = "UTC"

[Sanity]
ProjectID = "p9u1car0"
Dataset = "production"
UseCDN = true
Timeout = "5s"

[Database]
Addr = "localhost:5432"
User = "oldruins"
Database = "oldruins"

[Redis]
Addr = "localhost:6379"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "https://oldruins.example", cfg.App.SiteURL)
	assert.Equal(t, DefaultSiteName, cfg.App.SiteName)
	assert.Equal(t, "p9u1car0", cfg.Sanity.ProjectID)
	assert.True(t, cfg.Sanity.UseCDN)
	assert.Equal(t, 5*time.Second, cfg.Sanity.Timeout)
	assert.Equal(t, DefaultAPIVersion, cfg.Sanity.APIVersion)
	assert.Equal(t, "oldruins", cfg.Database.User)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, DefaultCacheTTL, cfg.Redis.TTL)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoad_MissingParameters(t *testing.T) {
	path := writeConfig(t, `
[Database]
Enabled = true
`)

	_, err := Load(path)
	require.Error(t, err)
	for _, name := range []string{"Sanity.ProjectID", "Sanity.Dataset", "Database.Addr", "Database.Database"} {
		assert.Contains(t, err.Error(), name)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[App\nPort = "))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Config{Sanity: Sanity{ProjectID: "p", Dataset: "production"}}
		c.SetDefaults()
		return c
	}

	t.Run("defaults are valid", func(t *testing.T) {
		c := valid()
		assert.NoError(t, c.Validate())
		assert.Equal(t, DefaultPort, c.App.Port)
		assert.Equal(t, "http://localhost:3000", c.App.SiteURL)
	})

	t.Run("bad port", func(t *testing.T) {
		c := valid()
		c.App.Port = 70000
		assert.ErrorContains(t, c.Validate(), "App.Port")
	})

	t.Run("bad timezone", func(t *testing.T) {
		c := valid()
		c.App.Timezone = "Mars/Olympus"
		assert.ErrorContains(t, c.Validate(), "App.Timezone")
	})

	t.Run("reindex schedule", func(t *testing.T) {
		c := valid()
		c.App.ReindexSchedule = "@every 15m"
		assert.NoError(t, c.Validate())

		c.App.ReindexSchedule = "every quarter hour"
		assert.ErrorContains(t, c.Validate(), "App.ReindexSchedule")
	})
}

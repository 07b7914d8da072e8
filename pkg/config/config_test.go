package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridpulse/gridpulse/pkg/logger"
	"github.com/gridpulse/gridpulse/pkg/models"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "core.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfigFile(t, `{
		"db": {"host": "localhost", "port": 5432, "database": "gridpulse", "username": "gp", "password": "secret"},
		"rollup": {"floor_date": "2015-01-01", "schedule": "1h"},
		"series": {"cache_ttl": "60s"},
		"sync": {"poll_interval": "15m", "poll_days": 2}
	}`)

	var cfg models.CoreConfig

	loader := NewConfig(logger.NewTestLogger())
	require.NoError(t, loader.LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "2015-01-01", cfg.Rollup.FloorDate)
	assert.Equal(t, time.Hour, time.Duration(cfg.Rollup.Schedule))
	assert.Equal(t, 60*time.Second, time.Duration(cfg.Series.CacheTTL))
	assert.Equal(t, 15*time.Minute, time.Duration(cfg.Sync.PollInterval))
	assert.Equal(t, 2, cfg.Sync.PollDays)
}

func TestLoadAndValidateRejectsMissingDB(t *testing.T) {
	path := writeConfigFile(t, `{"rollup": {"floor_date": "2015-01-01"}}`)

	var cfg models.CoreConfig

	loader := NewConfig(logger.NewTestLogger())
	assert.ErrorIs(t, loader.LoadAndValidate(context.Background(), path, &cfg), models.ErrConfigDBRequired)
}

func TestLoadAndValidateRejectsBadFloorDate(t *testing.T) {
	path := writeConfigFile(t, `{
		"db": {"host": "localhost", "database": "gridpulse"},
		"rollup": {"floor_date": "01/01/2015"}
	}`)

	var cfg models.CoreConfig

	loader := NewConfig(logger.NewTestLogger())
	assert.ErrorIs(t, loader.LoadAndValidate(context.Background(), path, &cfg), models.ErrConfigFloorDateInvalid)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	var cfg models.CoreConfig

	loader := NewConfig(logger.NewTestLogger())
	assert.Error(t, loader.LoadAndValidate(context.Background(), "/nonexistent/core.json", &cfg))
}

func TestLoadAndValidateMalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{"db": `)

	var cfg models.CoreConfig

	loader := NewConfig(logger.NewTestLogger())
	assert.Error(t, loader.LoadAndValidate(context.Background(), path, &cfg))
}

func TestValidateConfigSkipsNonValidators(t *testing.T) {
	type plain struct {
		Name string `json:"name"`
	}

	assert.NoError(t, ValidateConfig(&plain{Name: "x"}))
}

package config

import (
	"testing"
	"time"

	"attritionlens/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DATASET_SOURCE", "DATASET_PATH", "DATABASE_URL", "EMPLOYEES_TABLE",
		"PORT", "GIN_MODE", "OPS_PORT", "OPS_ENABLED", "SESSION_TTL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Data.Source)
	assert.Equal(t, "EA.csv", cfg.Data.Path)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "6060", cfg.Ops.Port)
	assert.True(t, cfg.Ops.Enabled)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "employees", cfg.Database.Table)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATASET_PATH", "/data/hr.xlsx")
	t.Setenv("OPS_ENABLED", "false")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("PORT", "9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/hr.xlsx", cfg.Data.Path)
	assert.False(t, cfg.Ops.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestPostgresSourceRequiresURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATASET_SOURCE", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	t.Setenv("DATABASE_URL", "postgres://hr@localhost/hr?sslmode=disable")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.Data.Source)
}

func TestUnknownSourceRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATASET_SOURCE", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET_SOURCE")
}

func TestLoadSourceSectionsMatchLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATASET_SOURCE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/hr")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, cfg.Data, *LoadDataConfig())
	assert.Equal(t, cfg.Database, *LoadDatabaseConfig())
	assert.Equal(t, SourcePostgres, LoadDataConfig().Source)
	assert.Equal(t, "employees", LoadDatabaseConfig().Table)
}

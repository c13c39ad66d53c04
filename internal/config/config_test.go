package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PG_DSN", "")
	t.Setenv("PG_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultExtraction(), cfg.Extraction)
	assert.False(t, cfg.PostgreSQL.Enabled)
	assert.Equal(t, 1024, cfg.Cache.Size)
}

func TestLoad_ExtractionOverrides(t *testing.T) {
	t.Setenv("EXTRACT_BUDGET_SLACK", "250")
	t.Setenv("EXTRACT_PRIORITIES", "quiet, safe_area ,")
	t.Setenv("EXTRACT_TRANSPORT_MODE", "biking")
	t.Setenv("EXTRACT_MAX_BEDROOMS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Extraction.BudgetSlack)
	assert.Equal(t, []string{"quiet", "safe_area"}, cfg.Extraction.DefaultPriorities)
	assert.Equal(t, "biking", cfg.Extraction.DefaultTransportMode)
	assert.Equal(t, 10, cfg.Extraction.MaxBedrooms)
}

func TestLoad_InvertedBudgetDefaults(t *testing.T) {
	t.Setenv("EXTRACT_BUDGET_MIN", "4000")
	t.Setenv("EXTRACT_BUDGET_MAX", "3000")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetPostgreSQLDSN(t *testing.T) {
	cfg := &Config{PostgreSQL: PostgreSQLConfig{
		Host:     "db",
		Port:     5432,
		User:     "nest",
		Password: "secret",
		Database: "nestfinder",
		SSLMode:  "disable",
	}}
	assert.Equal(t, "host=db port=5432 user=nest password=secret dbname=nestfinder sslmode=disable", cfg.GetPostgreSQLDSN())

	cfg.PostgreSQL.DSN = "postgres://nest@db/nestfinder"
	assert.Equal(t, "postgres://nest@db/nestfinder", cfg.GetPostgreSQLDSN())
}

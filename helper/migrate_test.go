package helper_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtainraiser/config"
	"curtainraiser/helper"
)

func TestMigrationURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write = config.PostgresEndpoint{
		Host:     "db",
		Port:     "5432",
		Username: "stage",
		Password: "p@ss",
		Name:     "curtainraiser",
	}

	raw, err := helper.MigrationURL(cfg)
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/test_curtainraiser", parsed.Path)
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))

	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss", password)
}

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(&config.Config{}, "sideways")

	require.ErrorIs(t, err, helper.ErrUnknownAction)
}

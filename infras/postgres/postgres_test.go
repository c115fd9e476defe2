package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curtainraiser/config"
	"curtainraiser/infras/postgres"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		endpoint config.PostgresEndpoint
		expected string
	}{
		{
			name: "plain endpoint",
			endpoint: config.PostgresEndpoint{
				Host: "db", Port: "5432", Username: "app", Password: "secret", Name: "curtain", SSLMode: "require",
			},
			expected: "postgres://app:secret@db:5432/curtain?sslmode=require",
		},
		{
			name:   "prefix and timezone",
			prefix: "test_",
			endpoint: config.PostgresEndpoint{
				Host: "db", Port: "5432", Username: "app", Password: "secret", Name: "curtain", Timezone: "UTC",
			},
			expected: "postgres://app:secret@db:5432/test_curtain?sslmode=disable&timezone=UTC",
		},
		{
			name: "password is escaped",
			endpoint: config.PostgresEndpoint{
				Host: "db", Port: "5432", Username: "app", Password: "p@ss/word", Name: "curtain", SSLMode: "disable",
			},
			expected: "postgres://app:p%40ss%2Fword@db:5432/curtain?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.DB.Postgres.Prefix = tt.prefix

			assert.Equal(t, tt.expected, postgres.DSN(cfg, tt.endpoint))
		})
	}
}

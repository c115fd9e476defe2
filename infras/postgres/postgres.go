package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"curtainraiser/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

var errExhaustedRetries = errors.New("exhausted connection retries")

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools; the cleanup closes both.
func New(config *config.Config) (*Connection, func(), error) {
	write, err := CreatePostgresConnection("write", DSN(config, config.DB.Postgres.Write), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
	if err != nil {
		return nil, nil, err
	}

	read, err := CreatePostgresConnection("read", DSN(config, config.DB.Postgres.Read), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime)
	if err != nil {
		_ = write.Close()

		return nil, nil, err
	}

	cleanup := func() {
		if err := read.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing read database")
		}

		if err := write.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing write database")
		}
	}

	return &Connection{Read: read, Write: write}, cleanup, nil
}

// DSN builds the connection url, applying the configured database name prefix.
func DSN(config *config.Config, endpoint config.PostgresEndpoint) string {
	dbName := endpoint.Name
	if config.DB.Postgres.Prefix != "" {
		dbName = config.DB.Postgres.Prefix + dbName
	}

	sslMode := endpoint.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(endpoint.Username, endpoint.Password),
		Host:   net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:   "/" + dbName,
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	dsn.RawQuery = query.Encode()

	return dsn.String()
}

// CreatePostgresConnection connects with retries.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) (*sqlx.DB, error) {
	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w (%s): %w", errExhaustedRetries, name, lastErr)
}

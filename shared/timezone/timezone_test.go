package timezone_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtainraiser/config"
	"curtainraiser/shared/timezone"
)

func initWith(t *testing.T, name string) {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Timezone = name
	timezone.Init(cfg)

	t.Cleanup(func() {
		reset := &config.Config{}
		reset.App.Timezone = "UTC"
		timezone.Init(reset)
	})
}

func TestInit(t *testing.T) {
	t.Run("known location", func(t *testing.T) {
		initWith(t, "Asia/Jakarta")

		assert.Equal(t, "Asia/Jakarta", timezone.GetLocation().String())
		assert.Equal(t, "Asia/Jakarta", timezone.Now().Location().String())
	})

	t.Run("unknown location falls back to utc", func(t *testing.T) {
		initWith(t, "Mars/Olympus")

		assert.Equal(t, time.UTC, timezone.GetLocation())
	})

	t.Run("empty location is utc", func(t *testing.T) {
		initWith(t, "")

		assert.Equal(t, "UTC", timezone.GetLocation().String())
	})
}

func TestParseAndFormat(t *testing.T) {
	initWith(t, "Asia/Jakarta")

	parsed, err := timezone.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", parsed.Location().String())

	utcNoon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01 19:00", timezone.Format(utcNoon, "2006-01-02 15:04"))
}

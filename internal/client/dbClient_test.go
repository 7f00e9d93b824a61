package client

import (
	"lpg-marketplace/internal/config"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteDSN(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain file", "lpg.db", "lpg.db?_busy_timeout=5000&_txlock=immediate"},
		{"existing query", "file:lpg.db?cache=shared", "file:lpg.db?cache=shared&_busy_timeout=5000&_txlock=immediate"},
		{"caller timeout kept", "lpg.db?_busy_timeout=100", "lpg.db?_busy_timeout=100&_txlock=immediate"},
		{"fully configured", "lpg.db?_timeout=100&_txlock=exclusive", "lpg.db?_timeout=100&_txlock=exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.url))
		})
	}
}

func TestInitDBClientSqliteFile(t *testing.T) {
	db, err := InitDBClient(config.Database{
		Driver:          "sqlite",
		URL:             filepath.Join(t.TempDir(), "lpg.db"),
		MaxIdleConns:    2,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))

	var timeout int
	require.NoError(t, db.Raw("PRAGMA busy_timeout").Scan(&timeout).Error)
	assert.Equal(t, 5000, timeout)
}

func TestInitDBClientRejectsUnknownDriver(t *testing.T) {
	_, err := InitDBClient(config.Database{Driver: "oracle"})
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

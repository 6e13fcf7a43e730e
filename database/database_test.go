package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outtech105.com/busroute_server/config"
)

func TestDriverName(t *testing.T) {
	assert.Equal(t, "pgx", DriverName("postgres"))
	assert.Equal(t, "pgx", DriverName("pgx"))
	assert.Equal(t, "mysql", DriverName("mysql"))
	assert.Equal(t, "sqlite", DriverName("sqlite"))
}

func TestDataSourceName(t *testing.T) {
	t.Run("explicit dsn wins", func(t *testing.T) {
		dsn := DataSourceName(config.DatabaseConfig{Driver: "mysql", DSN: "u:p@tcp(x:1)/db", Host: "ignored"})
		assert.Equal(t, "u:p@tcp(x:1)/db", dsn)
	})

	t.Run("mysql", func(t *testing.T) {
		dsn := DataSourceName(config.DatabaseConfig{
			Driver: "mysql", Host: "db", User: "transit", Password: "secret", Name: "busroute",
		})
		assert.Contains(t, dsn, "transit:secret@tcp(db:3306)/busroute")
		assert.Contains(t, dsn, "parseTime=true")
	})

	t.Run("postgres", func(t *testing.T) {
		dsn := DataSourceName(config.DatabaseConfig{
			Driver: "postgres", Host: "localhost", User: "u", Password: "p", Name: "transit",
		})
		assert.Equal(t, "postgres://u:p@localhost:5432/transit", dsn)
	})

	t.Run("postgres custom port", func(t *testing.T) {
		dsn := DataSourceName(config.DatabaseConfig{
			Driver: "pgx", Host: "pg", Port: 6543, User: "u", Password: "p", Name: "transit",
		})
		assert.Equal(t, "postgres://u:p@pg:6543/transit", dsn)
	})

	t.Run("sqlite", func(t *testing.T) {
		dsn := DataSourceName(config.DatabaseConfig{Driver: "sqlite", Name: "/data/transit.db"})
		assert.Equal(t, "/data/transit.db", dsn)
	})
}

func TestConnectDBSQLite(t *testing.T) {
	db, err := ConnectDB(config.DatabaseConfig{
		Driver:   "sqlite",
		Name:     filepath.Join(t.TempDir(), "transit.db"),
		MaxRetry: 1,
	})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	_, err = db.Exec(`CREATE TABLE stops (stop_id TEXT PRIMARY KEY, stop_name TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(db.Rebind(`INSERT INTO stops VALUES (?, ?)`), "S1", "Long Bien")
	require.NoError(t, err)

	var name string
	require.NoError(t, db.Get(&name, db.Rebind(`SELECT stop_name FROM stops WHERE stop_id = ?`), "S1"))
	assert.Equal(t, "Long Bien", name)
}

func TestConnectDBGivesUpAfterRetries(t *testing.T) {
	start := time.Now()
	_, err := ConnectDB(config.DatabaseConfig{
		Driver:        "sqlite",
		Name:          filepath.Join(t.TempDir(), "missing", "dir", "transit.db"),
		MaxRetry:      2,
		RetryInterval: 10 * time.Millisecond,
	})

	assert.ErrorContains(t, err, "2 times")
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestConnectDBUnknownDriver(t *testing.T) {
	_, err := ConnectDB(config.DatabaseConfig{Driver: "oracle", Name: "x", MaxRetry: 3})
	assert.ErrorContains(t, err, "dbConnection")
}

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := Config{Username: "root", Password: "secret", Hostname: "localhost", Port: "3306", Database: "zau"}

	dsn, err := cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "root:secret@tcp(localhost:3306)/zau?charset=utf8mb4&parseTime=True", dsn)

	cfg.Driver = "postgres"
	cfg.Port = "5432"
	dsn, err = cfg.DSN()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost user=root password=secret dbname=zau port=5432 sslmode=disable", dsn)

	cfg.Driver = "oracle"
	_, err = cfg.DSN()
	assert.Error(t, err)
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect(context.Background(), Config{Driver: "sqlite"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSaveNothing(t *testing.T) {
	// No rows never touches the connection.
	s := NewStore(nil)
	assert.NoError(t, s.SaveCrossings(context.Background(), nil))
}

func TestCrossingTableName(t *testing.T) {
	assert.Equal(t, "fir_crossings", Crossing{}.TableName())
}

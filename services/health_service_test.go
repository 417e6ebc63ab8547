package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) Health(context.Context) error { return f.err }
func (f fakePinger) Ping(context.Context) error   { return f.err }
func (f fakePinger) GetStats() sql.DBStats        { return sql.DBStats{OpenConnections: 2} }
func (f fakePinger) GetConnectionStats() map[string]any {
	return map[string]any{"total_conns": uint32(1)}
}

func TestHealthService(t *testing.T) {
	healthy := NewHealthService(testLogger(), fakePinger{}, fakePinger{})

	server := healthy.GetServerHealthStatus()
	require.True(t, server.ServiceAlive)
	require.NotNil(t, server.RamStats)

	db, err := healthy.GetDatabaseHealthStatus(context.Background())
	require.NoError(t, err)
	require.True(t, db.Connected)
	require.Equal(t, 2, db.Pool["open_connections"])

	cache, err := healthy.GetCacheHealthStatus(context.Background())
	require.NoError(t, err)
	require.True(t, cache.Connected)
	require.Equal(t, uint32(1), cache.Pool["total_conns"])

	down := errors.New("down")
	broken := NewHealthService(testLogger(), fakePinger{err: down}, fakePinger{err: down})

	db, err = broken.GetDatabaseHealthStatus(context.Background())
	require.ErrorIs(t, err, down)
	require.False(t, db.Connected)

	cache, err = broken.GetCacheHealthStatus(context.Background())
	require.ErrorIs(t, err, down)
	require.False(t, cache.Connected)
}

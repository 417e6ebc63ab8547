package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"no rows", sql.ErrNoRows, false},
		{"cancelled", context.Canceled, false},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, false},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"cannot connect now", &pgconn.PgError{Code: "57P03"}, true},
		{"read only transaction", &pgconn.PgError{Code: "25006"}, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"unexpected eof", errors.New("unexpected EOF"), true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestSQLState(t *testing.T) {
	require.Equal(t, "23505", SQLState(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	require.Equal(t, "", SQLState(errors.New("plain")))
}

func TestRetryWithBackoff(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 2, EnableRetry: true}

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			if calls < 3 {
				return &pgconn.PgError{Code: "40001"}
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("stops on permanent errors", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return &pgconn.PgError{Code: "23505"}
		})
		require.Error(t, err)
		require.Equal(t, 1, calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoff(context.Background(), cfg, func() error {
			calls++
			return &pgconn.PgError{Code: "40P01"}
		})
		require.Equal(t, "40P01", SQLState(err))
		require.Equal(t, 3, calls)
	})
}

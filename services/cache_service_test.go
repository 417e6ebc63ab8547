package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestBackoffWithJitter(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		ceiling := min(100*(1<<attempt), 2000)
		for range 20 {
			d := backoffWithJitter(attempt)
			require.GreaterOrEqual(t, d, time.Duration(ceiling/2)*time.Millisecond)
			require.LessOrEqual(t, d, time.Duration(ceiling)*time.Millisecond)
		}
	}
}

func TestIsRetryableCacheError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"missing key", redis.Nil, false},
		{"cancelled", context.Canceled, false},
		{"refused", errors.New("dial tcp 127.0.0.1:6379: connect: connection refused"), true},
		{"timeout", errors.New("i/o timeout"), true},
		{"wrong type", errors.New("WRONGTYPE Operation against a key"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, isRetryableCacheError(tt.err))
		})
	}
}

func TestBlacklistKey(t *testing.T) {
	jti := uuid.MustParse("0b0e6b7c-3d2a-4d1f-9c55-1f6f1e8f2a10")
	require.Equal(t, "blacklist:0b0e6b7c-3d2a-4d1f-9c55-1f6f1e8f2a10", blacklistKey(jti))
}

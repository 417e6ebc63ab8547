package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestMapDBError(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"products_sku_key\""}
	foreign := &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"}
	other := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}

	tests := []struct {
		name         string
		err          error
		wantConflict bool
		wantNotFound bool
	}{
		{"nil", nil, false, false},
		{"no rows", sql.ErrNoRows, false, true},
		{"wrapped no rows", fmt.Errorf("load: %w", sql.ErrNoRows), false, true},
		{"unique violation", unique, true, false},
		{"foreign key violation", fmt.Errorf("insert: %w", foreign), true, false},
		{"other sql state", other, false, false},
		{"plain error", errors.New("boom"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapDBError(tt.err)
			require.Equal(t, tt.wantConflict, IsConflict(mapped))
			require.Equal(t, tt.wantNotFound, IsNotFound(mapped))
			if tt.err != nil {
				require.ErrorIs(t, mapped, tt.err)
			}
		})
	}
}

func TestMapDBErrorKeepsDriverText(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: "23505", Message: "duplicate key value"})
	require.Contains(t, err.Error(), "duplicate key value")
}

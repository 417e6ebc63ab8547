package lib

import (
	"database/sql"
	"errors"
	"fmt"
	"shop_admin_server/database"
)

// Database errors
var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// Auth errors
var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")
	ErrRevokedToken       = errors.New("revoked token")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAdministrator   = errors.New("user is not an administrator")
)

// MapDBError classifies a database error. The driver error stays in the chain
// so its text can still be reported.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	switch database.SQLState(err) { // SQLSTATE
	case "23505", // unique_violation
		"23503": // foreign_key_violation
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case "P0002": // no_data_found
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

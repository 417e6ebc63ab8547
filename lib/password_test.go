package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret-password", DefaultArgonParams)
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("secret-password", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	first, err := HashPassword("secret-password", DefaultArgonParams)
	require.NoError(t, err)
	second, err := HashPassword("secret-password", DefaultArgonParams)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyPasswordBcrypt(t *testing.T) {
	raw, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	// rows written by PHP carry the $2y$ prefix
	phpHash := "$2y$" + string(raw[4:])

	for _, hash := range []string{string(raw), phpHash} {
		ok, err := VerifyPassword("password", hash)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = VerifyPassword("other", hash)
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	_, err := VerifyPassword("password", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidHash)
}

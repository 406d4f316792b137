package password_test

import (
	"strings"
	"testing"

	"furk/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestConstants(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, password.DefaultCost)
}

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{name: "typical password", password: "validPassword123"},
		{name: "short password", password: "abc"},
		{name: "special characters", password: "P@ssw0rd!#$%^&*()"},
		{name: "unicode password", password: "пароль123"},
		{name: "empty password", password: "", expectedErr: password.ErrEmptyPassword},
		{name: "over bcrypt 72-byte limit", password: strings.Repeat("a", 100), expectedErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, hash)

			assert.True(t,
				strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$"),
				"expected bcrypt hash format, got %s", hash)

			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	const plaintext = "testPassword123"

	validHash, err := password.Hash(plaintext)
	require.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		hash        string
		expectedErr error
	}{
		{name: "matching password", password: plaintext, hash: validHash},
		{name: "wrong password", password: "wrongPassword", hash: validHash, expectedErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: validHash, expectedErr: password.ErrInvalidPassword},
		{name: "empty hash", password: plaintext, hash: "", expectedErr: password.ErrInvalidPassword},
		{name: "garbage hash", password: plaintext, hash: "invalid_hash", expectedErr: password.ErrVerifyingPassword},
		{name: "truncated hash", password: plaintext, hash: validHash[:10], expectedErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	passwords := []string{
		"simplePassword",
		"Complex!P@ssw0rd#123",
		"спец.символы_русский",
		strings.Repeat("a", 72),
	}

	for _, pwd := range passwords {
		t.Run("password_"+pwd[:min(len(pwd), 20)], func(t *testing.T) {
			hash, err := password.Hash(pwd)
			require.NoError(t, err)

			assert.NoError(t, password.Verify(pwd, hash))

			for _, wrong := range []string{"wrong_password", "WRONG", ""} {
				assert.Error(t, password.Verify(wrong, hash), "wrong password %q accepted", wrong)
			}
		})
	}
}

// bcrypt salts every hash, so repeated hashing of the same input must give
// distinct hashes that all verify.
func TestHashConsistency(t *testing.T) {
	const pwd = "testPassword"

	hashes := make([]string, 5)
	for i := range hashes {
		hash, err := password.Hash(pwd)
		require.NoError(t, err)

		hashes[i] = hash
	}

	for i, hash1 := range hashes {
		for j, hash2 := range hashes {
			if i != j {
				assert.NotEqual(t, hash1, hash2)
			}
		}

		assert.NoError(t, password.Verify(pwd, hashes[i]))
	}
}

package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fellipeca007/GuardaFlix/internal/identity/domain"
)

func TestArgon2_HashAndCompare(t *testing.T) {
	hasher := NewArgon2Hasher()

	encoded, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$"))

	assert.NoError(t, hasher.Compare(encoded, "correct horse battery staple"))
	assert.ErrorIs(t, hasher.Compare(encoded, "wrong password"), domain.ErrInvalidCredentials)
}

func TestArgon2_SaltsDiffer(t *testing.T) {
	hasher := NewArgon2Hasher()

	a, err := hasher.Hash("same password")
	require.NoError(t, err)
	b, err := hasher.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "each hash must carry a fresh salt")
}

func TestArgon2_MalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher()

	assert.Error(t, hasher.Compare("not-a-phc-string", "whatever"))
	assert.Error(t, hasher.Compare("$argon2id$v=19$m=bad$x$y", "whatever"))
}

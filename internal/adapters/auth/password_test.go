package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_Hash_and_Compare(t *testing.T) {
	h := NewBcryptHasher(4)
	password := "my-secret-password"

	hash, err := h.Hash(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)

	err = h.Compare(hash, password)
	require.NoError(t, err)
}

func TestBcryptHasher_Compare_wrong_password(t *testing.T) {
	h := NewBcryptHasher(4)
	hash, err := h.Hash("correct")
	require.NoError(t, err)

	err = h.Compare(hash, "wrong")
	assert.Error(t, err)
}

func TestBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	h := NewBcryptHasher(99)
	hash, err := h.Hash("password")
	require.NoError(t, err)
	require.NoError(t, h.Compare(hash, "password"))
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	require := require.New(t)
	hasher := NewBcryptHasher()

	stored, err := hasher.Hash("pass1234")
	require.NoError(err)
	require.NotEqual("pass1234", stored)

	require.NoError(hasher.Compare(stored, "pass1234"))
	require.ErrorIs(hasher.Compare(stored, "pass5678"), ErrInvalidPassword)
}

func TestBcryptHasherRejectsEmptyPassword(t *testing.T) {
	require := require.New(t)
	hasher := NewBcryptHasher()

	_, err := hasher.Hash("")
	require.ErrorIs(err, ErrInvalidPassword)
}

func TestPlainHasherStoresVerbatim(t *testing.T) {
	require := require.New(t)
	hasher := NewPlainHasher()

	stored, err := hasher.Hash("pass1234")
	require.NoError(err)
	require.Equal("pass1234", stored)

	require.NoError(hasher.Compare(stored, "pass1234"))
	require.ErrorIs(hasher.Compare(stored, "pass5678"), ErrInvalidPassword)
}

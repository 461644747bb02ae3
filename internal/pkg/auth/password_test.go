package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret!", hash)

	assert.NoError(t, CheckPassword(hash, "Sup3rSecret!"))
	assert.Error(t, CheckPassword(hash, "wrong-password"))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)
	second, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

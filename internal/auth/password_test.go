package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, ComparePassword(hash, "secret123"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}

func TestPasswordOutOfRangeCostFallsBack(t *testing.T) {
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("secret123", cost)
		require.NoError(t, err, "cost %d", cost)
		assert.NoError(t, ComparePassword(hash, "secret123"))
	}
}
